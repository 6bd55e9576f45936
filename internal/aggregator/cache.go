package aggregator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"supplydash/internal/models"
)

// RedisCache keeps computed summaries in Redis under their summary key.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache connects to redisURL and verifies the connection.
func NewRedisCache(redisURL string, redisPassword string, ttl time.Duration, logger *slog.Logger) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if redisPassword != "" {
		opt.Password = redisPassword
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "summary_cache"),
	}, nil
}

// Load fetches a summary. A missing key returns nil with no error.
func (c *RedisCache) Load(ctx context.Context, key string) (*models.AnalyticsSummary, error) {
	startTime := time.Now()

	jsonBytes, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.logger.Debug("summary_not_in_cache", "cache_key", key)
			return nil, nil
		}
		return nil, fmt.Errorf("redis GET failed: %w", err)
	}

	var summary models.AnalyticsSummary
	if err := json.Unmarshal(jsonBytes, &summary); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	c.logger.Debug("summary_retrieved",
		"cache_key", key,
		"latency_ms", time.Since(startTime).Milliseconds(),
	)

	return &summary, nil
}

// Store writes a summary with the configured TTL.
func (c *RedisCache) Store(ctx context.Context, key string, summary *models.AnalyticsSummary) error {
	startTime := time.Now()

	jsonBytes, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("json marshal failed: %w", err)
	}

	if err := c.client.Set(ctx, key, jsonBytes, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}

	c.logger.Debug("summary_cached",
		"cache_key", key,
		"ttl_sec", c.ttl.Seconds(),
		"size_bytes", len(jsonBytes),
		"latency_ms", time.Since(startTime).Milliseconds(),
	)

	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
