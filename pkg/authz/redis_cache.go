package authz

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

// negativeEntry marks a cached "no grant exists" result.
const negativeEntry = "miss"

// RedisSnapshotCache is a SnapshotCache over Redis, for deployments where
// multiple instances must observe grant invalidation. Cache faults degrade
// to store lookups: a Redis error is reported as a miss, never as a
// resolution failure.
type RedisSnapshotCache struct {
	client redis.UniversalClient
}

// NewRedisSnapshotCache creates a snapshot cache backed by the given client.
func NewRedisSnapshotCache(client redis.UniversalClient) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client}
}

func (c *RedisSnapshotCache) Get(ctx context.Context, key string) (CacheEntry, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return CacheEntry{}, false
	}
	if val == negativeEntry {
		return CacheEntry{Found: false}, true
	}

	flags, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return CacheEntry{}, false
	}
	return CacheEntry{Flags: permissions.Flag(flags), Found: true}, true
}

func (c *RedisSnapshotCache) Set(ctx context.Context, key string, entry CacheEntry, ttl time.Duration) {
	val := negativeEntry
	if entry.Found {
		val = strconv.FormatUint(uint64(entry.Flags), 10)
	}
	_ = c.client.Set(ctx, key, val, ttl).Err()
}

func (c *RedisSnapshotCache) Delete(ctx context.Context, key string) {
	_ = c.client.Del(ctx, key).Err()
}

var _ SnapshotCache = (*RedisSnapshotCache)(nil)
