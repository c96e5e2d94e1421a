package database

import (
	"context"
	"fmt"
	"time"

	"scriptgen-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient owns the connection pool backing the script library.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis builds the client from cfg; zero pool settings are left to
// go-redis defaults, the config loader normally fills them.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	opts := &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = config.GetDuration(cfg.DialTimeout)
	}
	return &RedisClient{Client: redis.NewClient(opts)}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// PingWithRetry pings up to attempts times, doubling the wait from 500ms.
func (c *RedisClient) PingWithRetry(ctx context.Context, attempts int) error {
	wait := 500 * time.Millisecond
	var err error
	for i := 0; i < attempts; i++ {
		if err = c.Ping(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-time.After(wait):
			wait *= 2
		case <-ctx.Done():
			return fmt.Errorf("redis not ready: %w", ctx.Err())
		}
	}
	return err
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}
