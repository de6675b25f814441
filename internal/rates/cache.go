// Package rates supplies validated market-rate figures (property tax,
// insurance, interest) to the purchase-price inversion. It is a collaborator
// around the engine; the engine itself never imports it.
package rates

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Cache abstracts the quote cache so the service can run against Redis in
// production and an in-memory map in tests.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// RedisCache caches serialized quotes in Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects a cache to the Redis instance at addr.
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: rdb}
}

// Get returns the cached value for key, if present.
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a value under key with no expiry; freshness policy is owned by
// whatever populates the cache.
func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// MemoryCache is a process-local Cache for tests and single-node use.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]string)}
}

// Get returns the cached value for key, if present.
func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.items[key]
	return val, ok
}

// Set stores a value under key.
func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}
