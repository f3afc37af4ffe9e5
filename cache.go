package evictcache

import (
	"github.com/venkatsvpr/evictcache/simplelru"
	"github.com/venkatsvpr/evictcache/splay"
)

var (
	_ simplelru.BoundedCache[int, int] = (*simplelru.LRU[int, int])(nil)
	_ simplelru.BoundedCache[int, int] = (*splay.Cache[int, int])(nil)
)

const (
	// DefaultEvictedBufferSize defines the default buffer size to store evicted key/val
	DefaultEvictedBufferSize = 16
)

// Cache is a fixed size cache backed by one of the eviction engines.
type Cache[K comparable, V any] struct {
	engine      simplelru.BoundedCache[K, V]
	algorithm   Algorithm
	keys        *keyCheck
	lock        RWLocker
	metrics     *Metrics
	evictedKeys []K
	evictedVals []V
	onEvictedCB func(k K, v V)
}

// New creates a cache holding at most size entries.
func New[K comparable, V any](size int, opts ...Option[K, V]) (*Cache[K, V], error) {
	cfg := config[K, V]{
		algorithm: LRU,
		lock:      NoOpRWLocker{},
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	c := &Cache[K, V]{
		algorithm:   cfg.algorithm,
		lock:        cfg.lock,
		metrics:     cfg.metrics,
		onEvictedCB: cfg.onEvict,
	}
	c.initEvictBuffers()

	var err error
	switch cfg.algorithm {
	case SplayTree:
		compare := cfg.compare
		if compare == nil {
			compare = compareKeys[K]
		}
		c.keys = newKeyCheck[K](cfg.compare == nil)
		c.engine, err = splay.NewFunc[K, V](size, compare, c.onEvicted)
	default:
		c.keys = newKeyCheck[K](false)
		c.engine, err = simplelru.NewLRU[K, V](size, c.onEvicted)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cache[K, V]) initEvictBuffers() {
	c.evictedKeys = make([]K, 0, DefaultEvictedBufferSize)
	c.evictedVals = make([]V, 0, DefaultEvictedBufferSize)
}

// onEvicted save evicted key/val and sent in externally registered callback
// outside critical section
func (c *Cache[K, V]) onEvicted(k K, v V) {
	c.evictedKeys = append(c.evictedKeys, k)
	c.evictedVals = append(c.evictedVals, v)
}

// takeEvicted hands over the buffered evictions. Has to be called with lock!
func (c *Cache[K, V]) takeEvicted() (ks []K, vs []V) {
	if len(c.evictedKeys) == 0 {
		return nil, nil
	}
	ks, vs = c.evictedKeys, c.evictedVals
	c.initEvictBuffers()
	return ks, vs
}

func (c *Cache[K, V]) fireEvicted(ks []K, vs []V) {
	if c.onEvictedCB == nil {
		return
	}
	for i := 0; i < len(ks); i++ {
		c.onEvictedCB(ks[i], vs[i])
	}
}

// checkKey validates key for the engine. Has to be called with lock!
func (c *Cache[K, V]) checkKey(key K, inserting bool) error {
	if c.keys.static {
		return nil
	}
	return c.keys.check(key, c.engine.Len() == 0, inserting)
}

// Algorithm returns the eviction engine in use.
func (c *Cache[K, V]) Algorithm() Algorithm {
	return c.algorithm
}

// Insert adds a value to the cache. Returns true if an eviction occurred.
func (c *Cache[K, V]) Insert(key K, value V) (evicted bool, err error) {
	c.lock.Lock()
	if err := c.checkKey(key, true); err != nil {
		c.lock.Unlock()
		return false, err
	}
	evicted = c.engine.Insert(key, value)
	ks, vs := c.takeEvicted()
	size := c.engine.Len()
	c.lock.Unlock()

	c.metrics.recordInsert(len(ks), size)
	c.fireEvicted(ks, vs)
	return evicted, nil
}

// Find looks up a key's value from the cache. A miss is reported through ok;
// err is only set for keys the engine cannot hash or order.
func (c *Cache[K, V]) Find(key K) (value V, ok bool, err error) {
	// finds reorder the engine, so they take the write lock
	c.lock.Lock()
	if err := c.checkKey(key, false); err != nil {
		c.lock.Unlock()
		return value, false, err
	}
	value, ok = c.engine.Find(key)
	c.lock.Unlock()

	c.metrics.recordFind(ok)
	return value, ok, nil
}

// Delete removes the provided key from the cache. Deleting an absent key is
// not an error.
func (c *Cache[K, V]) Delete(key K) error {
	c.lock.Lock()
	if err := c.checkKey(key, false); err != nil {
		c.lock.Unlock()
		return err
	}
	c.engine.Delete(key)
	size := c.engine.Len()
	c.lock.Unlock()

	c.metrics.recordDelete(size)
	return nil
}

// Resize changes the cache size, returning the number of entries evicted.
func (c *Cache[K, V]) Resize(size int) (evicted int) {
	c.lock.Lock()
	evicted = c.engine.Resize(size)
	ks, vs := c.takeEvicted()
	n := c.engine.Len()
	c.lock.Unlock()

	c.metrics.recordEvictions(len(ks), n)
	c.fireEvicted(ks, vs)
	return evicted
}

// Purge is used to completely clear the cache and its counters.
func (c *Cache[K, V]) Purge() {
	c.lock.Lock()
	c.engine.Purge()
	c.lock.Unlock()

	c.metrics.recordEvictions(0, 0)
}

// Keys returns the cached keys: oldest to newest for LRU, ascending for
// SplayTree.
func (c *Cache[K, V]) Keys() []K {
	c.lock.RLock()
	keys := c.engine.Keys()
	c.lock.RUnlock()
	return keys
}

// Len returns the number of items in the cache.
func (c *Cache[K, V]) Len() int {
	c.lock.RLock()
	length := c.engine.Len()
	c.lock.RUnlock()
	return length
}

// Cap returns the capacity of the cache.
func (c *Cache[K, V]) Cap() int {
	c.lock.RLock()
	capacity := c.engine.Cap()
	c.lock.RUnlock()
	return capacity
}

// Hits returns the number of lookups that found their key.
func (c *Cache[K, V]) Hits() uint64 {
	c.lock.RLock()
	hits := c.engine.Hits()
	c.lock.RUnlock()
	return hits
}

// Misses returns the number of lookups that did not find their key.
func (c *Cache[K, V]) Misses() uint64 {
	c.lock.RLock()
	misses := c.engine.Misses()
	c.lock.RUnlock()
	return misses
}

// HitRate returns hits / (hits + misses), or ErrZeroActivity before the
// first lookup.
func (c *Cache[K, V]) HitRate() (float64, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.engine.HitRate()
}
