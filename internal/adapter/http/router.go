package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/manav-coupa/store-management/internal/adapter/http/handler"
	"github.com/manav-coupa/store-management/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CustomerHandler    *handler.CustomerHandler
	TransactionHandler *handler.TransactionHandler
	BackupHandler      *handler.BackupHandler
	HealthHandler      *handler.HealthHandler
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Customers
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", cfg.CustomerHandler.Create)
			r.Get("/", cfg.CustomerHandler.List)
			r.Get("/search", cfg.CustomerHandler.Search)
			r.Get("/outstanding", cfg.CustomerHandler.Outstanding)
			r.Get("/dashboard-stats", cfg.CustomerHandler.DashboardStats)
			r.Get("/mobile/{mobile}", cfg.CustomerHandler.GetByMobile)
			r.Delete("/clear-all", cfg.CustomerHandler.ClearAll)
			r.Get("/{id}", cfg.CustomerHandler.Get)
			r.Put("/{id}", cfg.CustomerHandler.Update)
			r.Delete("/{id}", cfg.CustomerHandler.Delete)
			r.Get("/{customerId}/transactions", cfg.TransactionHandler.ListByCustomer)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/search", cfg.TransactionHandler.Search)
			r.Get("/date-range", cfg.TransactionHandler.ListByDateRange)
			r.Get("/type/{type}", cfg.TransactionHandler.ListByType)
			r.Delete("/clear-all", cfg.TransactionHandler.ClearAll)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Backup
		r.Route("/backup", func(r chi.Router) {
			r.Post("/trigger", cfg.BackupHandler.Trigger)
			r.Get("/export", cfg.BackupHandler.Export)
			r.Get("/status", cfg.BackupHandler.Status)
		})
	})

	return r
}
