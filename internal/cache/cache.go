// Package cache wraps Redis for the server-side session store.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"c2panel/internal/logging"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A Redis outage looks like an empty store, which logs everybody out instead of failing requests.
type Client struct {
	client *redis.Client
	log    logging.Logger
}

// New creates a new Redis client.
func New(addr, password string, db int, log logging.Logger) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts), log: log}
}

// Ping checks connectivity. Unlike the data operations it reports failures.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("redis client not configured")
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		c.warn(ctx, "redis get failed", key, err)
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.warn(ctx, "redis set failed", key, err)
	}
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.warn(ctx, "redis delete failed", key, err)
	}
	return nil
}

func (c *Client) warn(ctx context.Context, msg, key string, err error) {
	if c.log != nil {
		c.log.Warn(ctx, msg, "key", key, "error", err)
	}
}
