// Package cache provides a Redis-based cache-aside layer for content
// listings.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache provides caching operations using Redis.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  Stats
}

// Stats tracks cache counters. Fields are updated atomically.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Sets    uint64
	Deletes uint64
	Errors  uint64
}

// StatsSnapshot is a point-in-time copy of the cache counters.
type StatsSnapshot struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Sets    uint64  `json:"sets"`
	Deletes uint64  `json:"deletes"`
	Errors  uint64  `json:"errors"`
	HitRate float64 `json:"hit_rate"`
}

// New creates a new cache instance.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get retrieves a value from the cache into dest.
// Returns false on a cache miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			atomic.AddUint64(&c.stats.Misses, 1)
			return false, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return true, nil
}

// Set stores a value in the cache with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

// Delete removes a value from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache delete error: %w", err)
	}

	atomic.AddUint64(&c.stats.Deletes, 1)
	return nil
}

// DeletePattern removes all keys matching a glob pattern under the prefix.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	fullPattern := c.prefix + pattern

	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, fullPattern, 100).Result()
		if err != nil {
			atomic.AddUint64(&c.stats.Errors, 1)
			return fmt.Errorf("cache scan error: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				atomic.AddUint64(&c.stats.Errors, 1)
				return fmt.Errorf("cache delete error: %w", err)
			}
			atomic.AddUint64(&c.stats.Deletes, uint64(len(keys)))
		}

		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}

// Snapshot returns a point-in-time copy of the cache counters.
func (c *Cache) Snapshot() StatsSnapshot {
	s := StatsSnapshot{
		Hits:    atomic.LoadUint64(&c.stats.Hits),
		Misses:  atomic.LoadUint64(&c.stats.Misses),
		Sets:    atomic.LoadUint64(&c.stats.Sets),
		Deletes: atomic.LoadUint64(&c.stats.Deletes),
		Errors:  atomic.LoadUint64(&c.stats.Errors),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}
