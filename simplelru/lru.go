package simplelru

import (
	"fmt"

	"github.com/venkatsvpr/evictcache/internal/cacheerr"
	"github.com/venkatsvpr/evictcache/internal/recency"
)

// EvictCallback is used to get a callback when a cache entry is evicted
type EvictCallback[K comparable, V any] func(key K, value V)

// LRU implements a non-thread safe fixed size LRU cache
type LRU[K comparable, V any] struct {
	size    int
	items   map[K]V
	recency *recency.Tracker[K]
	onEvict EvictCallback[K, V]
	hit     uint64
	miss    uint64
}

// NewLRU constructs an LRU of the given size
func NewLRU[K comparable, V any](size int, onEvict EvictCallback[K, V]) (*LRU[K, V], error) {
	if size <= 0 {
		return nil, fmt.Errorf("must provide a positive size, got %d: %w", size, cacheerr.ErrConfig)
	}
	c := &LRU[K, V]{
		size:    size,
		items:   make(map[K]V, size),
		recency: recency.New[K](),
		onEvict: onEvict,
	}
	return c, nil
}

// Purge is used to completely clear the cache.
func (c *LRU[K, V]) Purge() {
	clear(c.items)
	c.recency.Clear()
	c.hit, c.miss = 0, 0
}

// Insert adds a value to the cache.  Returns true if an eviction occurred.
func (c *LRU[K, V]) Insert(key K, value V) (evicted bool) {
	c.items[key] = value
	c.recency.Touch(key)

	// a single insert grows the cache by at most one
	if len(c.items) > c.size {
		c.removeOldest()
		return true
	}
	return false
}

// Find looks up a key's value from the cache.
func (c *LRU[K, V]) Find(key K) (value V, ok bool) {
	if value, ok = c.items[key]; ok {
		c.recency.Touch(key)
		c.hit++
		return value, true
	}
	c.miss++
	return value, false
}

// Contains checks if a key is in the cache, without updating the recent-ness
// or counting a lookup.
func (c *LRU[K, V]) Contains(key K) (ok bool) {
	_, ok = c.items[key]
	return ok
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *LRU[K, V]) Peek(key K) (value V, ok bool) {
	value, ok = c.items[key]
	return value, ok
}

// Delete removes the provided key from the cache, returning if the
// key was contained.
func (c *LRU[K, V]) Delete(key K) (present bool) {
	if err := c.recency.Remove(key); err != nil {
		return false
	}
	delete(c.items, key)
	return true
}

// RemoveOldest removes the oldest item from the cache.
func (c *LRU[K, V]) RemoveOldest() (key K, value V, err error) {
	key, err = c.recency.PopLRU()
	if err != nil {
		return key, value, fmt.Errorf("remove oldest: %w", err)
	}
	value = c.items[key]
	delete(c.items, key)
	return key, value, nil
}

// GetOldest returns the oldest entry
func (c *LRU[K, V]) GetOldest() (key K, value V, err error) {
	key, err = c.recency.GetLRU()
	if err != nil {
		return key, value, fmt.Errorf("get oldest: %w", err)
	}
	return key, c.items[key], nil
}

// Keys returns a slice of the keys in the cache, from oldest to newest.
func (c *LRU[K, V]) Keys() []K {
	return c.recency.Keys()
}

// Values returns a slice of the values in the cache, from oldest to newest.
func (c *LRU[K, V]) Values() []V {
	keys := c.recency.Keys()
	values := make([]V, len(keys))
	for i, k := range keys {
		values[i] = c.items[k]
	}
	return values
}

// Len returns the number of items in the cache.
func (c *LRU[K, V]) Len() int {
	return len(c.items)
}

// Cap returns the capacity of the cache.
func (c *LRU[K, V]) Cap() int {
	return c.size
}

// Resize changes the cache size.
func (c *LRU[K, V]) Resize(size int) (evicted int) {
	if size <= 0 {
		return 0
	}
	diff := c.Len() - size
	if diff < 0 {
		diff = 0
	}
	for i := 0; i < diff; i++ {
		c.removeOldest()
	}
	c.size = size
	return diff
}

// Hits returns the number of lookups that found their key.
func (c *LRU[K, V]) Hits() uint64 {
	return c.hit
}

// Misses returns the number of lookups that did not find their key.
func (c *LRU[K, V]) Misses() uint64 {
	return c.miss
}

// HitRate returns hits / (hits + misses).
func (c *LRU[K, V]) HitRate() (float64, error) {
	total := c.hit + c.miss
	if total == 0 {
		return 0, fmt.Errorf("hit rate: %w", cacheerr.ErrZeroActivity)
	}
	return float64(c.hit) / float64(total), nil
}

// removeOldest evicts the least recently used item, firing onEvict.
func (c *LRU[K, V]) removeOldest() {
	key, value, err := c.RemoveOldest()
	if err != nil {
		return
	}
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}
