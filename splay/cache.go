package splay

import (
	"cmp"
	"fmt"

	"github.com/venkatsvpr/evictcache/internal/cacheerr"
)

// EvictCallback is used to get a callback when an entry is evicted to make
// room for a new one.
type EvictCallback[K, V any] func(key K, value V)

// Cache is a fixed size cache backed by a splay tree. When it overflows, the
// structurally deepest node is evicted: the key furthest from the root is the
// one that has gone longest without being splayed towards it. This is an
// approximation of LRU that needs no bookkeeping beyond subtree heights.
type Cache[K, V any] struct {
	size    int
	tree    *Tree[K, V]
	onEvict EvictCallback[K, V]
	hit     uint64
	miss    uint64
}

// New constructs a Cache of the given size ordered by the natural order of K.
func New[K cmp.Ordered, V any](size int, onEvict EvictCallback[K, V]) (*Cache[K, V], error) {
	return NewFunc(size, cmp.Compare[K], onEvict)
}

// NewFunc constructs a Cache of the given size ordered by compare.
func NewFunc[K, V any](size int, compare func(a, b K) int, onEvict EvictCallback[K, V]) (*Cache[K, V], error) {
	if size <= 0 {
		return nil, fmt.Errorf("must provide a positive size, got %d: %w", size, cacheerr.ErrConfig)
	}
	return &Cache[K, V]{
		size:    size,
		tree:    NewTreeFunc[K, V](compare),
		onEvict: onEvict,
	}, nil
}

// Insert adds a value to the cache. Returns true if an eviction occurred.
func (c *Cache[K, V]) Insert(key K, value V) (evicted bool) {
	c.tree.Insert(key, value)
	if c.tree.Len() > c.size {
		c.evictDeepest()
		return true
	}
	return false
}

// Find looks up a key's value, splaying it to the root on a hit.
func (c *Cache[K, V]) Find(key K) (value V, ok bool) {
	value, ok = c.tree.Find(key)
	if ok {
		c.hit++
	} else {
		c.miss++
	}
	return value, ok
}

// Peek returns the key's value without restructuring the tree or counting a
// lookup.
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	return c.tree.Peek(key)
}

// Contains checks if a key is in the cache without restructuring the tree.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.tree.Peek(key)
	return ok
}

// Delete removes the provided key from the cache, returning if the
// key was contained.
func (c *Cache[K, V]) Delete(key K) (present bool) {
	return c.tree.Delete(key)
}

// EvictDeepest removes the entry the cache would evict next.
func (c *Cache[K, V]) EvictDeepest() (key K, value V, err error) {
	key, value, ok := c.evictDeepest()
	if !ok {
		return key, value, fmt.Errorf("evict deepest: %w", cacheerr.ErrEmpty)
	}
	return key, value, nil
}

// Root returns the most recently splayed entry.
func (c *Cache[K, V]) Root() (key K, value V, ok bool) {
	return c.tree.Root()
}

// Keys returns the cached keys in ascending order.
func (c *Cache[K, V]) Keys() []K {
	return c.tree.Keys()
}

// Len returns the number of items in the cache.
func (c *Cache[K, V]) Len() int {
	return c.tree.Len()
}

// Cap returns the capacity of the cache.
func (c *Cache[K, V]) Cap() int {
	return c.size
}

// Resize changes the cache size, evicting the deepest entries as needed.
func (c *Cache[K, V]) Resize(size int) (evicted int) {
	if size <= 0 {
		return 0
	}
	for c.tree.Len() > size {
		c.evictDeepest()
		evicted++
	}
	c.size = size
	return evicted
}

// Purge clears every entry and resets the hit and miss counters.
func (c *Cache[K, V]) Purge() {
	c.tree.Clear()
	c.hit, c.miss = 0, 0
}

// Hits returns the number of lookups that found their key.
func (c *Cache[K, V]) Hits() uint64 {
	return c.hit
}

// Misses returns the number of lookups that did not find their key.
func (c *Cache[K, V]) Misses() uint64 {
	return c.miss
}

// HitRate returns hits / (hits + misses).
func (c *Cache[K, V]) HitRate() (float64, error) {
	total := c.hit + c.miss
	if total == 0 {
		return 0, fmt.Errorf("hit rate: %w", cacheerr.ErrZeroActivity)
	}
	return float64(c.hit) / float64(total), nil
}

func (c *Cache[K, V]) evictDeepest() (key K, value V, ok bool) {
	key, value, ok = c.tree.removeDeepest()
	if ok && c.onEvict != nil {
		c.onEvict(key, value)
	}
	return key, value, ok
}

// removeDeepest unlinks a leaf at maximum depth. It walks down through the
// child whose height is one less than its parent's, preferring the left,
// then fixes the heights on the way back up.
func (t *Tree[K, V]) removeDeepest() (key K, value V, ok bool) {
	if t.root == nil {
		return key, value, false
	}

	var path []*node[K, V]
	n := t.root
	for n.height > 0 {
		path = append(path, n)
		if heightOf(n.left) == n.height-1 {
			n = n.left
		} else {
			n = n.right
		}
	}

	if len(path) == 0 {
		t.root = nil
	} else {
		parent := path[len(path)-1]
		if parent.left == n {
			parent.left = nil
		} else {
			parent.right = nil
		}
		for i := len(path) - 1; i >= 0; i-- {
			path[i].updateHeight()
		}
	}
	t.size--
	return n.key, n.value, true
}
