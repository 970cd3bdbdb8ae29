package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/ledgerd/internal/adapter/http/handler"
	"github.com/iho/ledgerd/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	JournalHandler *handler.JournalHandler
	QueryHandler   *handler.QueryHandler
	ReportHandler  *handler.ReportHandler
	HealthHandler  *handler.HealthHandler
	Logger         zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/journal", func(r chi.Router) {
			r.Get("/", cfg.JournalHandler.List)
			r.Post("/", cfg.JournalHandler.Submit)
			r.Post("/revert", cfg.JournalHandler.Revert)
		})

		r.Get("/accounts", cfg.QueryHandler.Accounts)
		r.Get("/payees", cfg.QueryHandler.Payees)
		r.Get("/commodities", cfg.QueryHandler.Commodities)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/balance", cfg.ReportHandler.Balance)
			r.Get("/register", cfg.ReportHandler.Register)
		})
	})

	return r
}
