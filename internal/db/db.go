// Package db opens the coopcycle database and keeps its schema current.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-coopcycle/internal/config"
	"github.com/diewo77/go-coopcycle/internal/models"
)

// Connection attempts give a freshly started PostgreSQL container time to
// accept clients.
var (
	attempts   = 10
	retryDelay = 2 * time.Second
)

func dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Open connects to the configured database, retrying while it is not
// reachable, and checks the connection with SELECT 1.
func Open(ctx context.Context, cfg config.DatabaseConfig, log logrus.FieldLogger) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	level := logger.Silent
	if cfg.Debug {
		level = logger.Info
	}
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var db *gorm.DB
	for i := 1; i <= attempts; i++ {
		db, err = gorm.Open(dial, gcfg)
		if err == nil {
			break
		}
		log.WithError(err).WithField("attempt", i).Warn("database not reachable, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect database after %d attempts: %w", attempts, err)
	}
	if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	log.WithField("database", cfg.Masked()).Info("database connected")
	return db, nil
}

// Migrate creates or updates every entity table with AutoMigrate.
func Migrate(db *gorm.DB) error {
	for _, m := range models.All() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}
