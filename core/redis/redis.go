package redis

import (
	"context"
	"fmt"
	"time"

	"event-registry/core/config"
	"event-registry/core/logger"

	"github.com/redis/go-redis/v9"
)

var instance *redis.Client

func GetClient() *redis.Client {
	return instance
}

// InitRedis connects the shared client used for the change-feed pub/sub and
// the background worker.
func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	logger.Info("Initializing redis...")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	instance = client
	logger.Info("Redis initialized successfully", "addr", cfg.Addr, "db", cfg.DB)
	return client, nil
}
