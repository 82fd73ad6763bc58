// Package storage holds the optional Redis cache for generated marker
// PNGs.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MarkerCache keeps finished marker PNGs in Redis, keyed by the full
// parameter tuple. Marker generation is deterministic, so serving cached
// bytes is indistinguishable from rendering again.
type MarkerCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMarkerCache(addr, password string, db int, ttl time.Duration) *MarkerCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &MarkerCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *MarkerCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (c *MarkerCache) Set(ctx context.Context, key string, data []byte) error {
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Ping verifies the Redis connection at startup.
func (c *MarkerCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
