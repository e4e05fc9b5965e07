package redis

import (
	"blastsms/internal/config"
	"blastsms/internal/observability"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrNotInitialized = errors.New("redis client not initialized")
)

// Client wraps the Redis client with observability
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient creates a new Redis client. A disabled configuration yields a nil
// client; every method tolerates a nil receiver.
func NewClient(cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.Enabled {
		logger.Info(context.Background(), "Redis is disabled, skipping client initialization")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "host", Value: cfg.Host},
		observability.Field{Key: "port", Value: cfg.Port},
		observability.Field{Key: "db", Value: cfg.DB},
	), "successfully connected to Redis")

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

// Get returns the value stored at key, or ErrKeyNotFound
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.IsEnabled() {
		return nil, ErrNotInitialized
	}
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		c.logger.Error(ctx, "failed to get key from redis", err)
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value at key; zero expiration keeps it forever
func (c *Client) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if !c.IsEnabled() {
		return ErrNotInitialized
	}
	if err := c.client.Set(ctx, key, value, expiration).Err(); err != nil {
		c.logger.Error(ctx, "failed to set key in redis", err)
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Del deletes keys
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if !c.IsEnabled() {
		return ErrNotInitialized
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if !c.IsEnabled() {
		return nil
	}
	return c.client.Close()
}

// IsEnabled returns whether Redis is enabled
func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}
