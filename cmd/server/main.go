package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/diewo77/go-coopcycle/internal/config"
	"github.com/diewo77/go-coopcycle/internal/db"
	"github.com/diewo77/go-coopcycle/internal/handlers"
	"github.com/diewo77/go-coopcycle/internal/logging"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logging.Setup(cfg.App.LogLevel, cfg.App.LogFormat, os.Stderr)
	if err != nil {
		logrus.Fatalf("logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *migrateOnlyFlag {
		if err := migrate(cfg, dbConn, log); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Info("Migrations completed successfully")
		return
	}

	if *seedOnlyFlag {
		if err := db.Seed(ctx, dbConn); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Info("Seeding completed successfully")
		return
	}

	if err := migrate(cfg, dbConn, log); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if cfg.App.Seed {
		if err := db.Seed(ctx, dbConn); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	app := NewApp(dbConn, handlers.NewRouterConfig(dbConn, log), log)

	read, write, idle := cfg.Server.Timeouts()
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app,
		ReadTimeout:  read,
		WriteTimeout: write,
		IdleTimeout:  idle,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "dev": cfg.App.Dev}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error during shutdown")
	}
	log.Info("Server stopped gracefully")
}

// migrate runs the SQL migrations when MIGRATIONS is set on PostgreSQL,
// AutoMigrate otherwise.
func migrate(cfg *config.Config, dbConn *gorm.DB, log logrus.FieldLogger) error {
	if cfg.App.Migrations && cfg.Database.Driver == config.DriverPostgres {
		return db.RunSQLMigrations(cfg.Database.URL(), log)
	}
	return db.Migrate(dbConn)
}
