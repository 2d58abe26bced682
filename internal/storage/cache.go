package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bolovan/nba-stat-attack/internal/logging"
	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Season aggregations only change when new game logs are
// imported; the pool is effectively static between imports.
const (
	StatsCacheTTL = 6 * time.Hour
	PoolCacheTTL  = 24 * time.Hour

	// PoolCacheKey is the single redis key for the card-pool listing.
	PoolCacheKey = "pool:cards"

	cacheOpTimeout = 500 * time.Millisecond
)

// cache is a nil-safe read-through JSON cache over redis. A nil receiver
// (redis disabled by config or unreachable at boot) turns every
// operation into a no-op miss so the repository falls straight through
// to sqlite.
type cache struct {
	client *redis.Client
}

// NewCache connects to the redis address and verifies it with a ping.
// An empty address returns a disabled cache; a failed ping logs and
// disables rather than aborting startup.
func NewCache(addr string) *cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logging.Error("redis unreachable; caching disabled", err, logging.Fields{"addr": addr})
		return nil
	}
	return &cache{client: client}
}

// get unmarshals the cached JSON blob into dest, reporting whether the
// key was present and usable.
func (c *cache) get(key string, dest any) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		logging.Error("corrupt cache entry; dropping", err, logging.Fields{"key": key})
		dctx, dcancel := context.WithTimeout(context.Background(), cacheOpTimeout)
		defer dcancel()
		c.client.Del(dctx, key)
		return false
	}
	return true
}

// set stores v as a JSON blob under key. Failures are logged and
// swallowed; the cache is an accelerator, never a dependency.
func (c *cache) set(key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := c.client.Set(ctx, key, b, ttl).Err(); err != nil {
		logging.Error("cache write failed", err, logging.Fields{"key": key})
	}
}
