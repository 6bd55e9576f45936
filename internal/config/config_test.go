package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.Timeout())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "data/seed.json", cfg.SeedPath)
	assert.False(t, cfg.SeedPersist)
	assert.Equal(t, 120, cfg.SupplierCount)
	assert.Equal(t, 500, cfg.InventoryCount)
	assert.Equal(t, 50000, cfg.OrderCount)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.StreamInterval)
	assert.Equal(t, 200, cfg.DrilldownLimit)
	assert.Equal(t, 2.0, cfg.AnomalyZThreshold)
	assert.Equal(t, 3, cfg.AnomalyMaxResults)
	assert.Equal(t, 9091, cfg.MetricsPort)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("CACHE_TTL_SEC", "120")
	t.Setenv("SEED", "42")
	t.Setenv("SEED_PERSIST", "true")
	t.Setenv("ANOMALY_Z_THRESHOLD", "2.5")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.SeedPersist)
	assert.Equal(t, 2.5, cfg.AnomalyZThreshold)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_BadValue(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port", func(c *Config) { c.Port = 0 }},
		{"metrics port clash", func(c *Config) { c.MetricsPort = c.Port }},
		{"timeout", func(c *Config) { c.TimeoutMS = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"order count", func(c *Config) { c.OrderCount = 0 }},
		{"persist without path", func(c *Config) { c.SeedPersist = true; c.SeedPath = "" }},
		{"cache ttl", func(c *Config) { c.RedisURL = "redis://x:6379"; c.CacheTTL = 0 }},
		{"stream interval", func(c *Config) { c.StreamInterval = 0 }},
		{"drilldown limit", func(c *Config) { c.DrilldownLimit = 0 }},
		{"z threshold", func(c *Config) { c.AnomalyZThreshold = 0 }},
		{"max results", func(c *Config) { c.AnomalyMaxResults = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
