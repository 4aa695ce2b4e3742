package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the connection settings for Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// Client wraps a go-redis client.
type Client struct {
	Client *redis.Client
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(cfg Config) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	return c.Client.Close()
}
