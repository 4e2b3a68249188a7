package postal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores prefix payloads (the JSON object inside a data file) keyed by
// the three-digit prefix.
type Cache interface {
	Get(ctx context.Context, prefix string) ([]byte, bool, error)
	Set(ctx context.Context, prefix string, data []byte, ttl time.Duration) error
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, prefix string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[prefix]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !entry.expires.IsZero() && c.now().After(entry.expires) {
		c.mu.Lock()
		delete(c.entries, prefix)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.data, true, nil
}

func (c *MemoryCache) Set(_ context.Context, prefix string, data []byte, ttl time.Duration) error {
	entry := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		entry.expires = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[prefix] = entry
	c.mu.Unlock()
	return nil
}

// Len reports the number of cached prefixes.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

const DefaultRedisKeyPrefix = "formvalidator:postal:"

// RedisCache stores prefix payloads in redis so several processes share one
// copy.
type RedisCache struct {
	db        redis.UniversalClient
	keyPrefix string
}

// NewRedisCache wraps a go-redis client. An empty keyPrefix uses
// DefaultRedisKeyPrefix.
func NewRedisCache(client redis.UniversalClient, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisKeyPrefix
	}
	return &RedisCache{db: client, keyPrefix: keyPrefix}
}

// Get returns a miss for absent keys (redis.Nil).
func (c *RedisCache) Get(ctx context.Context, prefix string) ([]byte, bool, error) {
	data, err := c.db.Get(ctx, c.keyPrefix+prefix).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores data with expiration. Zero ttl means no expiration.
func (c *RedisCache) Set(ctx context.Context, prefix string, data []byte, ttl time.Duration) error {
	return c.db.Set(ctx, c.keyPrefix+prefix, data, ttl).Err()
}
