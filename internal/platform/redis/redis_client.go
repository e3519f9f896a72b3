package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"task_backend/internal/config"
)

// NewRedisClient opens a Redis connection and verifies it with a ping.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	addr := cfg.Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
