package cache

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRUCache is a fixed-capacity cache that evicts the least recently used
// entry once the capacity is exceeded. Safe for concurrent use.
type LRUCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	elements map[K]*list.Element
	order    *list.List // front = most recently used
}

// NewLRUCache creates a cache bounded to capacity entries.
// Panics on a non-positive capacity so misconfiguration fails at startup.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("cache: capacity must be positive")
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		elements: make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the value stored under key and marks it as recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.elements[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*entry[K, V]).value, true
}

// Put stores value under key, replacing any previous value.
// The oldest entry is dropped when the cache is full.
func (c *LRUCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.elements[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*entry[K, V]).value = value
		return
	}

	c.elements[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.elements, oldest.Value.(*entry[K, V]).key)
	}
}

// Remove drops the entry stored under key.
// Reports whether an entry existed.
func (c *LRUCache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.elements[key]
	if !ok {
		return false
	}
	c.order.Remove(elem)
	delete(c.elements, key)
	return true
}

// Len returns the number of entries currently cached.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops every entry.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements = make(map[K]*list.Element, c.capacity)
	c.order.Init()
}
