// Package evictcache provides a fixed size in-process cache with two
// interchangeable eviction engines.
//
// LRU is a hash index paired with a recency log. Every insert and every hit
// moves the key to the tail of the log, and overflow evicts the key at the
// head. The log is append-only with tombstones and is compacted in amortized
// O(1), see the simplelru package.
//
// SplayTree is a self-adjusting search tree. Every insert and lookup rotates
// the key to the root, and overflow evicts the structurally deepest node,
// which approximates the least recently used key without a separate recency
// structure, see the splay package. Its keys must be ordered.
//
// The engine is picked at construction:
//
//	c, err := evictcache.New[string, int](128,
//		evictcache.WithAlgorithm[string, int](evictcache.SplayTree))
//
// A Cache does not lock unless given a lock with WithLocker. A miss from Find
// is reported through its ok result, never as an error.
package evictcache
