// Package simplelru provides a simple LRU implementation based on a
// tombstoned recency log, and the interface shared by every bounded cache
// engine in this module.
package simplelru

// BoundedCache is the capability surface common to the LRU and splay
// engines. Implementations are not safe for concurrent use.
type BoundedCache[K comparable, V any] interface {
	// Adds a value to the cache, returns true if an eviction occurred and
	// updates the "recently used"-ness of the key.
	Insert(key K, value V) bool

	// Returns key's value from the cache and
	// updates the "recently used"-ness of the key. #value, isFound
	Find(key K) (value V, ok bool)

	// Returns key's value without updating the "recently used"-ness of the key.
	Peek(key K) (value V, ok bool)

	// Checks if a key exists in cache without updating the recent-ness.
	Contains(key K) (ok bool)

	// Removes a key from the cache. Absent keys are ignored.
	Delete(key K) bool

	// Returns a slice of the keys in the cache.
	Keys() []K

	// Returns the number of items in the cache.
	Len() int

	// Returns the capacity of the cache.
	Cap() int

	// Resizes cache, returning number evicted
	Resize(int) int

	// Clears all cache entries and counters.
	Purge()

	// Lookup counters, maintained by Find only.
	Hits() uint64
	Misses() uint64

	// Returns Hits / (Hits + Misses). Fails before the first lookup.
	HitRate() (float64, error)
}
