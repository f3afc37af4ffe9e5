package evictcache

import (
	"fmt"
	"strings"
)

// Algorithm selects the eviction engine of a Cache.
type Algorithm int

const (
	// LRU evicts the least recently inserted or found key.
	LRU Algorithm = iota
	// SplayTree evicts the deepest node of a splay tree.
	SplayTree
)

func (a Algorithm) String() string {
	switch a {
	case LRU:
		return "lru"
	case SplayTree:
		return "splay"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps "lru", "splay" or "splaytree", in any case, to an
// Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lru":
		return LRU, nil
	case "splay", "splaytree", "splay_tree":
		return SplayTree, nil
	}
	return 0, fmt.Errorf("unknown eviction algorithm %q: %w", name, ErrConfig)
}

type config[K comparable, V any] struct {
	algorithm Algorithm
	compare   func(a, b K) int
	onEvict   func(key K, value V)
	lock      RWLocker
	metrics   *Metrics
}

// Option configures a Cache at construction.
type Option[K comparable, V any] func(*config[K, V]) error

// WithAlgorithm selects the eviction engine. The default is LRU.
func WithAlgorithm[K comparable, V any](a Algorithm) Option[K, V] {
	return func(c *config[K, V]) error {
		if a != LRU && a != SplayTree {
			return fmt.Errorf("unknown eviction algorithm %v: %w", a, ErrConfig)
		}
		c.algorithm = a
		return nil
	}
}

// WithAlgorithmName selects the eviction engine by name, see ParseAlgorithm.
func WithAlgorithmName[K comparable, V any](name string) Option[K, V] {
	return func(c *config[K, V]) error {
		a, err := ParseAlgorithm(name)
		if err != nil {
			return err
		}
		c.algorithm = a
		return nil
	}
}

// WithCompare orders keys for the SplayTree engine. Without it, keys must be
// integers, floats or strings of a single dynamic type.
func WithCompare[K comparable, V any](compare func(a, b K) int) Option[K, V] {
	return func(c *config[K, V]) error {
		if compare == nil {
			return fmt.Errorf("nil comparator: %w", ErrConfig)
		}
		c.compare = compare
		return nil
	}
}

// WithEvict registers a callback fired, outside the lock, for every entry
// evicted to make room.
func WithEvict[K comparable, V any](onEvict func(key K, value V)) Option[K, V] {
	return func(c *config[K, V]) error {
		c.onEvict = onEvict
		return nil
	}
}

// WithLocker sets the lock guarding the cache, typically a *sync.RWMutex.
func WithLocker[K comparable, V any](lock RWLocker) Option[K, V] {
	return func(c *config[K, V]) error {
		if lock == nil {
			return fmt.Errorf("nil locker: %w", ErrConfig)
		}
		c.lock = lock
		return nil
	}
}

// WithMetrics records cache activity into m.
func WithMetrics[K comparable, V any](m *Metrics) Option[K, V] {
	return func(c *config[K, V]) error {
		c.metrics = m
		return nil
	}
}
