package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"therapeutic-assistant/backend/pkg/config"
)

var ctx = context.Background()

// Client wraps the go-redis client used for read-through caching
type Client struct {
	client *redis.Client
}

// NewClient creates a redis client from application configuration
func NewClient() *Client {
	cfg := config.Get()
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return &Client{client: client}
}

func (c *Client) Set(key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Get(key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *Client) Del(key string) error {
	return c.client.Del(ctx, key).Err()
}

// Ping checks connectivity, used by the health checker
func (c *Client) Ping() error {
	return c.client.Ping(ctx).Err()
}
