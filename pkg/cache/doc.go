// Package cache provides a generic, thread-safe LRU cache with a fixed
// capacity. It backs the in-process permission snapshot cache, but has no
// dependencies of its own and works with any comparable key type.
//
// Usage:
//
//	c := cache.NewLRUCache[string, int](128)
//	c.Put("k", 42)
//	if v, ok := c.Get("k"); ok {
//		// v == 42
//	}
//
// Get, Put and Remove are O(1). When the cache is full, Put evicts the
// least recently used entry; both Get and Put count as use.
package cache
