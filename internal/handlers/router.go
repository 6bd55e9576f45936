package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterConfig holds the HTTP surface settings.
type RouterConfig struct {
	Timeout        time.Duration
	StreamInterval time.Duration
	CORSOrigins    []string
}

// Dependencies are the services the routes call.
type Dependencies struct {
	Analytics AnalyticsService
	Snapshots SnapshotSource
	Refresher Regenerator
}

// NewRouter builds the HTTP API.
func NewRouter(deps Dependencies, cfg RouterConfig, logger *slog.Logger) (http.Handler, error) {
	mcpHandler, err := NewMCPInvokeHandler(deps.Analytics, cfg.Timeout, logger)
	if err != nil {
		return nil, err
	}
	analytics := NewAnalyticsHandler(deps.Analytics, logger)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(LoggingMiddleware(logger))
	r.Use(c.Handler)

	r.Get("/healthz", HealthCheckHandler())

	r.Route("/api", func(r chi.Router) {
		// Long-lived or uninterruptible work stays outside the timeout.
		r.Get("/analytics/stream", NewStreamHandler(deps.Snapshots, cfg.StreamInterval, logger).ServeHTTP)
		r.Post("/analytics/refresh", NewRefreshHandler(deps.Refresher, logger).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(cfg.Timeout))
			r.Get("/analytics/summary", analytics.Summary)
			r.Get("/analytics/drilldown", analytics.Drilldown)
			r.Get("/command/insights", analytics.Insights)
		})
	})

	r.Post("/mcp", mcpHandler.ServeHTTP)

	return r, nil
}
