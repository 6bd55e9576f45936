package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"supplydash/internal/aggregator"
	"supplydash/internal/config"
	"supplydash/internal/generator"
	"supplydash/internal/handlers"
	"supplydash/internal/instrumentation"
	"supplydash/internal/metrics"
	"supplydash/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("supplydash_starting",
		"port", cfg.Port,
		"seed_path", cfg.SeedPath,
		"cache_enabled", cfg.CacheEnabled(),
		"timeout_ms", cfg.TimeoutMS,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := instrumentation.NewMetrics(reg)

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics_server_starting", "port", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics_server_failed", "error", err)
		}
	}()

	gen := generator.New(generator.Options{
		SupplierCount:  cfg.SupplierCount,
		InventoryCount: cfg.InventoryCount,
		OrderCount:     cfg.OrderCount,
		Seed:           cfg.Seed,
	})
	st := store.New(gen, store.Options{SeedPath: cfg.SeedPath, Persist: cfg.SeedPersist}, logger, m)

	// Warm the snapshot so the first request does not pay for generation.
	snap, err := st.Snapshot()
	if err != nil {
		logger.Error("failed to load snapshot", "error", err)
		os.Exit(1)
	}
	logger.Info("snapshot_ready",
		"version", snap.Version(),
		"orders", len(snap.Orders()),
		"suppliers", len(snap.Suppliers()),
	)

	var cache aggregator.SummaryCache
	if cfg.CacheEnabled() {
		redisCache, err := aggregator.NewRedisCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL, logger)
		if err != nil {
			logger.Error("failed to create redis cache", "error", err)
			os.Exit(1)
		}
		defer redisCache.Close()
		cache = redisCache
		logger.Info("redis_cache_initialized", "ttl", cfg.CacheTTL)
	}

	agg := aggregator.New(st, cache, logger, m, aggregator.Config{
		Anomaly: metrics.AnomalyConfig{
			ZThreshold: cfg.AnomalyZThreshold,
			MaxResults: cfg.AnomalyMaxResults,
		},
		DrilldownLimit: cfg.DrilldownLimit,
	})

	router, err := handlers.NewRouter(handlers.Dependencies{
		Analytics: agg,
		Snapshots: st,
		Refresher: st,
	}, handlers.RouterConfig{
		Timeout:        cfg.Timeout(),
		StreamInterval: cfg.StreamInterval,
		CORSOrigins:    cfg.CORSOrigins,
	}, logger)
	if err != nil {
		logger.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	// No WriteTimeout: the SSE stream stays open until the client leaves.
	// Request contexts derive from ctx so open streams end on shutdown.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("http_server_starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	logger.Info("supplydash_running", "status", "healthy")

	select {
	case <-ctx.Done():
		logger.Info("shutdown_signal_received")
	case err := <-errChan:
		logger.Error("http_server_failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_failed", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics_server_shutdown_failed", "error", err)
	}

	logger.Info("supplydash_stopped")
}
