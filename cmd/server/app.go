package main

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/diewo77/go-coopcycle/httpx"
	"github.com/diewo77/go-coopcycle/internal/handlers"
	"github.com/diewo77/go-coopcycle/internal/middleware"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	db        *gorm.DB
	routerCfg *handlers.RouterConfig
	metrics   *middleware.Metrics
	log       logrus.FieldLogger
	handler   http.Handler
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB, routerCfg *handlers.RouterConfig, log logrus.FieldLogger) *App {
	app := &App{
		mux:       http.NewServeMux(),
		db:        db,
		routerCfg: routerCfg,
		metrics:   middleware.NewMetrics(),
		log:       log,
	}
	app.setupRoutes()
	// Metrics wraps the mux directly so the matched pattern is visible.
	app.handler = middleware.Chain(app.metrics.Middleware(app.mux),
		middleware.RequestID,
		middleware.Logging(log),
		middleware.Recover(log),
	)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	a.routerCfg.Register(a.mux)

	a.mux.HandleFunc("GET /health", a.health)
	a.mux.HandleFunc("GET /healthz", a.healthz)
	a.mux.Handle("GET /metrics", a.metrics.Handler())
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// healthz also checks the database.
func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := a.db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
		a.log.WithError(err).Warn("health check: database unreachable")
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
