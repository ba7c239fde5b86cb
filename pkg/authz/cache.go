package authz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gameguild-gg/guildkit/pkg/cache"
	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

// CacheEntry is a cached layer lookup result. Found=false caches the
// absence of a grant, so repeated checks for users without grants do not
// hit the store on every request.
type CacheEntry struct {
	Flags permissions.Flag
	Found bool
}

// SnapshotCache caches tenant and content-type grant lookups per
// (user, tenant) to avoid a store round-trip on every guarded request.
// Entries are TTL-bounded; writes to the underlying stores invalidate the
// affected keys immediately, the TTL only caps staleness across processes.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (CacheEntry, bool)
	Set(ctx context.Context, key string, entry CacheEntry, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

func tenantCacheKey(userID, tenantID uuid.UUID) string {
	return "authz:tenant:" + userID.String() + ":" + tenantID.String()
}

func contentTypeCacheKey(userID, tenantID uuid.UUID, contentType string) string {
	return "authz:ctype:" + userID.String() + ":" + tenantID.String() + ":" + contentType
}

type lruEntry struct {
	entry     CacheEntry
	expiresAt time.Time
}

// LRUSnapshotCache is an in-process SnapshotCache over a bounded LRU.
// Suitable for single-instance deployments; multi-instance deployments
// should prefer the Redis cache so invalidation reaches every process.
type LRUSnapshotCache struct {
	lru *cache.LRUCache[string, lruEntry]
}

// NewLRUSnapshotCache creates an in-process snapshot cache holding at most
// capacity entries.
func NewLRUSnapshotCache(capacity int) *LRUSnapshotCache {
	return &LRUSnapshotCache{lru: cache.NewLRUCache[string, lruEntry](capacity)}
}

func (c *LRUSnapshotCache) Get(_ context.Context, key string) (CacheEntry, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return CacheEntry{}, false
	}
	if time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return CacheEntry{}, false
	}
	return e.entry, true
}

func (c *LRUSnapshotCache) Set(_ context.Context, key string, entry CacheEntry, ttl time.Duration) {
	c.lru.Put(key, lruEntry{entry: entry, expiresAt: time.Now().Add(ttl)})
}

func (c *LRUSnapshotCache) Delete(_ context.Context, key string) {
	c.lru.Remove(key)
}

var _ SnapshotCache = (*LRUSnapshotCache)(nil)
