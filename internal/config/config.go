package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the analytics service configuration.
type Config struct {
	// Server
	Port        int      `env:"PORT" envDefault:"4000"`
	TimeoutMS   int      `env:"TIMEOUT_MS" envDefault:"2000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Dataset
	SeedPath       string `env:"SEED_PATH" envDefault:"data/seed.json"`
	SeedPersist    bool   `env:"SEED_PERSIST" envDefault:"false"`
	Seed           uint64 `env:"SEED" envDefault:"0"`
	SupplierCount  int    `env:"SUPPLIER_COUNT" envDefault:"120"`
	InventoryCount int    `env:"INVENTORY_COUNT" envDefault:"500"`
	OrderCount     int    `env:"ORDER_COUNT" envDefault:"50000"`

	// Redis summary cache; empty URL disables it
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Intervals (parsed as seconds)
	CacheTTLSec       int `env:"CACHE_TTL_SEC" envDefault:"60"`
	StreamIntervalSec int `env:"STREAM_INTERVAL_SEC" envDefault:"5"`

	// Computed durations (not from env)
	CacheTTL       time.Duration `env:"-"`
	StreamInterval time.Duration `env:"-"`

	// Analytics
	DrilldownLimit    int     `env:"DRILLDOWN_LIMIT" envDefault:"200"`
	AnomalyZThreshold float64 `env:"ANOMALY_Z_THRESHOLD" envDefault:"2.0"`
	AnomalyMaxResults int     `env:"ANOMALY_MAX_RESULTS" envDefault:"3"`

	// Observability
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
}

// Timeout returns the request timeout as a time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// CacheEnabled reports whether a Redis URL is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	opts := env.Options{
		Prefix: "",
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	for i := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(cfg.CORSOrigins[i])
	}

	cfg.CacheTTL = time.Duration(cfg.CacheTTLSec) * time.Second
	cfg.StreamInterval = time.Duration(cfg.StreamIntervalSec) * time.Second

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.MetricsPort)
	}

	if c.MetricsPort == c.Port {
		return fmt.Errorf("metrics port must differ from port %d", c.Port)
	}

	if c.TimeoutMS < 1 {
		return fmt.Errorf("timeout must be at least 1ms, got %dms", c.TimeoutMS)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.SupplierCount < 1 || c.InventoryCount < 1 || c.OrderCount < 1 {
		return fmt.Errorf("dataset counts must be positive")
	}

	if c.SeedPersist && c.SeedPath == "" {
		return fmt.Errorf("SEED_PERSIST requires SEED_PATH")
	}

	if c.CacheEnabled() && c.CacheTTL < time.Second {
		return fmt.Errorf("cache TTL must be at least 1 second")
	}

	if c.StreamInterval < time.Second {
		return fmt.Errorf("stream interval must be at least 1 second")
	}

	if c.DrilldownLimit < 1 {
		return fmt.Errorf("drilldown limit must be positive, got %d", c.DrilldownLimit)
	}

	if c.AnomalyZThreshold <= 0 {
		return fmt.Errorf("anomaly z threshold must be positive")
	}

	if c.AnomalyMaxResults < 0 {
		return fmt.Errorf("anomaly max results must not be negative")
	}

	return nil
}
