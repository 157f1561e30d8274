package db

import (
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	// Registers the postgres database driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateLogger routes golang-migrate output to logrus.
type migrateLogger struct {
	log logrus.FieldLogger
}

func (l migrateLogger) Printf(format string, v ...any) { l.log.Infof(format, v...) }
func (l migrateLogger) Verbose() bool                  { return false }

// RunSQLMigrations applies the embedded SQL migrations to the PostgreSQL
// database at url (postgres://...). It is a no-op when the schema is current.
func RunSQLMigrations(url string, log logrus.FieldLogger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()
	m.Log = migrateLogger{log: log}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("sql migrations applied")
	return nil
}
