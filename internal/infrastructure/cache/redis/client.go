package redis

import (
	"context"
	"fmt"
	"isp-billing/internal/config"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

func NewClient(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*goredis.Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("redis URL is empty in configuration")
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	logger.Info("Initializing Redis client...")
	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	logger.Info("Redis client connected successfully.", "addr", opts.Addr, "db", opts.DB)
	return rdb, nil
}

func Close(rdb *goredis.Client, logger *slog.Logger) {
	if rdb == nil {
		logger.Info("Redis client was not initialized, skipping close.")
		return
	}
	logger.Info("Closing Redis client connection...")
	if err := rdb.Close(); err != nil {
		logger.Error("Failed to close Redis client connection gracefully", "error", err)
		return
	}
	logger.Info("Redis client connection closed.")
}
