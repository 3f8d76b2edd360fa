package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/ledgersync/internal/adapter/http/handler"
	"github.com/iho/ledgersync/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SyncHandler   *handler.SyncHandler
	HealthHandler *handler.HealthHandler
	Logger        zerolog.Logger

	// HTTPMetrics and MetricsHandler are optional; /metrics is only mounted when MetricsHandler is set.
	HTTPMetrics    *middleware.HTTPMetrics
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sync", cfg.SyncHandler.Trigger)
		r.Get("/runs", cfg.SyncHandler.ListRuns)
		r.Get("/plan", cfg.SyncHandler.Plan)

		r.Route("/restricted-view", func(r chi.Router) {
			r.Get("/", cfg.SyncHandler.GetRestrictedView)
			r.Put("/", cfg.SyncHandler.SetRestrictedView)
		})
	})

	return r
}
