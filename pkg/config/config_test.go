package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5, cfg.Analysis.ReportWindow)
	assert.Equal(t, 10*time.Minute, cfg.Analysis.CacheTTL)
	assert.Equal(t, "teampulse", cfg.Metrics.Namespace)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/pulse.db")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("ANALYSIS_REPORT_WINDOW", "8")
	t.Setenv("ANALYSIS_CACHE_TTL", "90s")
	t.Setenv("METRICS_ADDR", ":9102")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Server.Environment)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/pulse.db", cfg.Database.SQLitePath)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
	assert.Equal(t, 8, cfg.Analysis.ReportWindow)
	assert.Equal(t, 90*time.Second, cfg.Analysis.CacheTTL)
	assert.Equal(t, ":9102", cfg.Metrics.Addr)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "DB_DRIVER", "oracle"},
		{"zero report window", "ANALYSIS_REPORT_WINDOW", "0"},
		{"unknown log level", "LOG_LEVEL", "chatty"},
		{"not a number", "DB_MAX_CONNS", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestAutoMigrateForbiddenInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "DB_AUTO_MIGRATE")
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5433", User: "pulse", Password: "secret", Name: "pulse", SSLMode: "require",
	}}
	assert.Equal(t, "host=db port=5433 user=pulse password=secret dbname=pulse sslmode=require", cfg.GetDatabaseDSN())
}
