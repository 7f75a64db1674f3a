// Package quotecache caches price breakdowns in Redis, keyed by a digest
// of the normalized configuration and the catalog version. The engine is
// fast enough to run uncached; the cache exists so a storefront fanning
// the same popular configurations out to many shoppers does not recompute
// and re-serialize identical quotes.
package quotecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client. A nil *Cache is valid and disables caching,
// so callers never branch on configuration.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// New builds a cache around an existing client. A nil client yields a nil
// cache.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl, prefix: "quote"}
}

// NewClientFromEnv builds a Redis client from REDIS_ADDR, REDIS_PASSWORD
// and REDIS_DB. Returns nil when REDIS_ADDR is unset or the server is
// unreachable; callers degrade by pricing every request.
func NewClientFromEnv(ctx context.Context) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	dbNum := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

// Key derives the cache key for a catalog version and a serialized
// normalized configuration.
func (c *Cache) Key(catalogVersion string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return c.keyPrefix() + ":" + catalogVersion + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached breakdown bytes for a key, if present.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores breakdown bytes under a key. Errors are swallowed; a failed
// cache write must never fail a quote.
func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, value, c.ttl).Err()
}

func (c *Cache) keyPrefix() string {
	if c == nil || c.prefix == "" {
		return "quote"
	}
	return c.prefix
}
