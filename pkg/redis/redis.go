package redis

import (
	"context"
	"fmt"
	"time"

	"pulse-backend/config"

	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// InitRedis connects the client. Redis only backs best-effort counters, so
// callers may treat a failure here as non-fatal.
func InitRedis(cfg config.RedisConfig) error {
	client = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client = nil
		return fmt.Errorf("redis connection failed: %w", err)
	}

	return nil
}

// Close closes the client connection.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck pings redis; used by the health endpoint.
func HealthCheck() error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}
