package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories/repotest"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entities.Speaker{},
		&entities.Meeting{},
		&entities.Message{},
		&entities.SpeakerMetric{},
	))
	return db
}

func TestGormStore(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repositories.Store {
		return NewStore(newTestDB(t))
	})
}
