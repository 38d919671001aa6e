package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	pkgvalidator "github.com/johnquangdev/team-pulse/pkg/validator"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Analysis AnalysisConfig
	Metrics  MetricsConfig
}

// ServerConfig holds process-wide settings
type ServerConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development" validate:"oneof=development test staging production"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver        string `envconfig:"DB_DRIVER" default:"postgres" validate:"oneof=postgres sqlite memory"`
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" default:"postgres"`
	Password      string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name          string `envconfig:"DB_NAME" default:"team_pulse"`
	SSLMode       string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath    string `envconfig:"DB_SQLITE_PATH" default:"team_pulse.db"`
	MaxConns      int    `envconfig:"DB_MAX_CONNS" default:"25" validate:"min=1"`
	MinConns      int    `envconfig:"DB_MIN_CONNS" default:"5" validate:"min=0"`
	AutoMigrate   bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0" validate:"min=0"`
}

// AnalysisConfig tunes the analysis service
type AnalysisConfig struct {
	ReportWindow         int           `envconfig:"ANALYSIS_REPORT_WINDOW" default:"5" validate:"min=1"`
	CacheTTL             time.Duration `envconfig:"ANALYSIS_CACHE_TTL" default:"10m"`
	RetryInitialInterval time.Duration `envconfig:"ANALYSIS_RETRY_INITIAL_INTERVAL" default:"100ms"`
	RetryMaxElapsed      time.Duration `envconfig:"ANALYSIS_RETRY_MAX_ELAPSED" default:"5s"`
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Addr      string `envconfig:"METRICS_ADDR"`
	Namespace string `envconfig:"METRICS_NAMESPACE" default:"teampulse" validate:"required"`
}

// Load loads configuration from the environment, reading .env first when present
func Load() (*Config, error) {
	// Missing .env is fine; real environment variables take precedence
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds and validates a Config from the current environment only
func FromEnv() (*Config, error) {
	config := &Config{}

	// Keys are spelled out in full so a missing DB_HOST never falls back to HOST
	sections := []interface{}{
		&config.Server,
		&config.Database,
		&config.Redis,
		&config.Analysis,
		&config.Metrics,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := pkgvalidator.New().Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Server.Environment == "production" && c.Database.AutoMigrate {
		return fmt.Errorf("DB_AUTO_MIGRATE must be disabled in production; run the migrate command instead")
	}
	return nil
}

// IsProduction reports whether the process runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
