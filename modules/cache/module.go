package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Module provides the Redis cache as a mono module.
type Module struct {
	cache     *Cache
	client    *redis.Client
	redisAddr string
	prefix    string
	ttl       time.Duration
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new cache module.
func NewModule(redisAddr, prefix string, ttl time.Duration) *Module {
	return &Module{
		redisAddr: redisAddr,
		prefix:    prefix,
		ttl:       ttl,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cache"
}

// Start connects to Redis and creates the cache. A missing Redis is not
// fatal: content listings degrade to the database.
func (m *Module) Start(_ context.Context) error {
	m.client = redis.NewClient(&redis.Options{
		Addr:         m.redisAddr,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.client.Ping(ctx).Err(); err != nil {
		log.Printf("[cache] Redis unavailable at %s (%v); running without cache", m.redisAddr, err)
		m.client.Close()
		m.client = nil
		return nil
	}

	m.cache = New(m.client, m.prefix, m.ttl)
	log.Printf("[cache] Module started (redis: %s, ttl: %s)", m.redisAddr, m.ttl)
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		m.client.Close()
	}
	log.Println("[cache] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.client == nil {
		return mono.HealthStatus{
			Healthy: true,
			Message: "running without cache",
		}
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis": m.redisAddr,
		},
	}
}

// GetCache returns the cache, or nil when Redis is unavailable.
func (m *Module) GetCache() *Cache {
	return m.cache
}
