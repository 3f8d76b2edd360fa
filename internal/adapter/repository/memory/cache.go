package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/iho/ledgersync/internal/usecase"
)

// Cache implements usecase.Cache in process. Entries die with the process.
type Cache struct {
	store *cache.Cache
}

// NewCache creates a new Cache. Expired entries are purged every cleanupInterval.
func NewCache(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{store: cache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a value by key.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	v, found := c.store.Get(key)
	if !found {
		return nil, usecase.ErrCacheMiss
	}
	return v.([]byte), nil
}

// Set stores a value with TTL. A non-positive ttl uses the default expiration.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	c.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Delete removes a key.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}
