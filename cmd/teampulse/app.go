package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/johnquangdev/team-pulse/errors"
	"github.com/johnquangdev/team-pulse/internal/adapter/repository"
	"github.com/johnquangdev/team-pulse/internal/adapter/repository/memory"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
	"github.com/johnquangdev/team-pulse/internal/infrastructure/cache"
	"github.com/johnquangdev/team-pulse/internal/infrastructure/database"
	"github.com/johnquangdev/team-pulse/internal/infrastructure/metrics"
	"github.com/johnquangdev/team-pulse/internal/usecase/meeting"
	"github.com/johnquangdev/team-pulse/pkg/config"
	"github.com/johnquangdev/team-pulse/pkg/logger"
	"github.com/johnquangdev/team-pulse/pkg/sentiment"
)

// app holds the dependencies shared by every command. Fields left nil are
// built lazily from configuration, so tests can inject their own.
type app struct {
	format  string
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.AnalysisMetrics
	service meeting.Service
	db      *gorm.DB

	closers []func() error
}

func newApp() *app {
	return &app{}
}

// init loads configuration and the logger once per process
func (a *app) init() error {
	if a.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		a.cfg = cfg
	}
	if a.logger == nil {
		log, err := logger.New(a.cfg.Server.Environment, a.cfg.Server.LogLevel)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		a.logger = log
		a.closers = append(a.closers, func() error {
			_ = log.Sync()
			return nil
		})
	}
	return nil
}

// openDatabase opens the SQL database once; the memory driver has none
func (a *app) openDatabase() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.Open(a.cfg, a.logger)
	if err != nil {
		return nil, apperrors.ErrDBConnectionFailed(err)
	}
	a.db = db
	a.closers = append(a.closers, func() error { return database.CloseDB(db) })
	return db, nil
}

func (a *app) store() (repositories.Store, error) {
	if a.cfg.Database.Driver == "memory" {
		a.logger.Warn("⚠️ Using in-memory store; analyses are lost on exit")
		return memory.NewStore(), nil
	}

	db, err := a.openDatabase()
	if err != nil {
		return nil, err
	}

	if a.cfg.Database.AutoMigrate {
		if _, err := database.AutoMigrate(db, a.cfg, a.logger); err != nil {
			return nil, apperrors.ErrDBMigrationFailed(err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := a.analysisMetrics().RegisterDB(sqlDB, a.cfg.Database.Driver); err != nil {
			a.logger.Warn("⚠️ Failed to register database metrics", zap.Error(err))
		}
	}

	return repository.NewStore(db), nil
}

func (a *app) analysisMetrics() *metrics.AnalysisMetrics {
	if a.metrics == nil {
		a.metrics = metrics.NewAnalysisMetrics(a.cfg.Metrics.Namespace)
	}
	return a.metrics
}

// meetings returns the analysis service, building the store, cache and
// metrics on first use
func (a *app) meetings(ctx context.Context) (meeting.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	store, err := a.store()
	if err != nil {
		return nil, err
	}

	reportCache := cache.New(ctx, a.cfg, a.logger)
	a.closers = append(a.closers, reportCache.Close)

	m := a.analysisMetrics()
	if addr := a.cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := m.Serve(ctx, addr, a.logger); err != nil {
				a.logger.Error("❌ Metrics server stopped", zap.Error(err))
			}
		}()
	}

	a.service = meeting.NewService(store, sentiment.NewVaderProvider(), reportCache, m, a.logger, meeting.Options{
		ReportWindow:         a.cfg.Analysis.ReportWindow,
		CacheTTL:             a.cfg.Analysis.CacheTTL,
		RetryInitialInterval: a.cfg.Analysis.RetryInitialInterval,
		RetryMaxElapsed:      a.cfg.Analysis.RetryMaxElapsed,
	})
	return a.service, nil
}

// close releases resources in reverse order of acquisition
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("⚠️ Error during shutdown", zap.Error(err))
		}
	}
	a.closers = nil
}
