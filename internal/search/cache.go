package search

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded map from query to result that evicts entries in the
// order they were first inserted.
//
// Reads go through Peek and writes through ContainsOrAdd, neither of which
// touches recency in the underlying LRU, so the LRU list stays in insertion
// order. Writing a key that is already present keeps the original value.
type Cache[V any] struct {
	entries  *lru.Cache[string, V]
	capacity int
}

// NewCache creates a cache holding at most capacity entries.
// A capacity of zero or less disables caching.
func NewCache[V any](capacity int) *Cache[V] {
	c := &Cache[V]{}
	if capacity <= 0 {
		return c
	}
	entries, err := lru.New[string, V](capacity)
	if err != nil {
		return c
	}
	c.entries = entries
	c.capacity = capacity
	return c
}

// Get returns the value stored for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	if c.entries == nil {
		var zero V
		return zero, false
	}
	return c.entries.Peek(key)
}

// Put stores value under key unless key is already present.
// It reports whether the oldest entry was evicted to make room.
func (c *Cache[V]) Put(key string, value V) bool {
	if c.entries == nil {
		return false
	}
	_, evicted := c.entries.ContainsOrAdd(key, value)
	return evicted
}

// Contains reports whether key is cached.
func (c *Cache[V]) Contains(key string) bool {
	if c.entries == nil {
		return false
	}
	return c.entries.Contains(key)
}

// Remove drops key. A later Put re-inserts it as the newest entry.
func (c *Cache[V]) Remove(key string) {
	if c.entries == nil {
		return
	}
	c.entries.Remove(key)
}

// Clear empties the cache.
func (c *Cache[V]) Clear() {
	if c.entries == nil {
		return
	}
	c.entries.Purge()
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	if c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Capacity returns the configured maximum entry count.
func (c *Cache[V]) Capacity() int {
	return c.capacity
}

// Keys returns the cached keys from oldest to newest.
func (c *Cache[V]) Keys() []string {
	if c.entries == nil {
		return nil
	}
	return c.entries.Keys()
}
