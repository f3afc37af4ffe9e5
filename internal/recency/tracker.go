// Package recency ranks keys by their most recent touch using an append-only
// log with lazy deletion.
//
// Touch appends the key at the tail of the log and tombstones its previous
// slot. The least recently used key is the first live slot at or after the
// scan offset. Tombstones are reclaimed by compaction, which runs after each
// touch once the dead slots outweigh the live ones, so Touch, PopLRU and
// Remove are all amortized O(1).
package recency

import (
	"fmt"

	"github.com/venkatsvpr/evictcache/internal/cacheerr"
)

// slot is either a live key or a tombstone (live == false, zero key).
type slot[K comparable] struct {
	key  K
	live bool
}

// Tracker orders keys by recency, oldest first. It is not safe for
// concurrent use.
type Tracker[K comparable] struct {
	log   []slot[K]
	index map[K]int
	// every slot before offset is a tombstone
	offset int
}

// New returns an empty Tracker.
func New[K comparable]() *Tracker[K] {
	return &Tracker[K]{
		index: make(map[K]int),
	}
}

// Len returns the number of live keys.
func (t *Tracker[K]) Len() int {
	return len(t.index)
}

// LogLen returns the number of slots, live or dead, currently held.
func (t *Tracker[K]) LogLen() int {
	return len(t.log)
}

// Contains reports whether key is tracked.
func (t *Tracker[K]) Contains(key K) bool {
	_, ok := t.index[key]
	return ok
}

// Touch marks key as the most recently used, tracking it if needed.
func (t *Tracker[K]) Touch(key K) {
	if i, ok := t.index[key]; ok {
		t.log[i] = slot[K]{}
	}
	t.log = append(t.log, slot[K]{key: key, live: true})
	t.index[key] = len(t.log) - 1

	t.compact()
}

// GetLRU returns the least recently used key without removing it.
func (t *Tracker[K]) GetLRU() (key K, err error) {
	i := t.oldest()
	if i < 0 {
		return key, fmt.Errorf("get lru: %w", cacheerr.ErrEmpty)
	}
	return t.log[i].key, nil
}

// PopLRU removes and returns the least recently used key.
func (t *Tracker[K]) PopLRU() (key K, err error) {
	i := t.oldest()
	if i < 0 {
		return key, fmt.Errorf("pop lru: %w", cacheerr.ErrEmpty)
	}
	key = t.log[i].key
	t.log[i] = slot[K]{}
	delete(t.index, key)
	t.offset = i + 1
	return key, nil
}

// Remove stops tracking key.
func (t *Tracker[K]) Remove(key K) error {
	i, ok := t.index[key]
	if !ok {
		return fmt.Errorf("remove %v: %w", key, cacheerr.ErrNotFound)
	}
	t.log[i] = slot[K]{}
	delete(t.index, key)
	return nil
}

// Keys returns the live keys from oldest to newest.
func (t *Tracker[K]) Keys() []K {
	keys := make([]K, 0, len(t.index))
	for _, s := range t.log[t.offset:] {
		if s.live {
			keys = append(keys, s.key)
		}
	}
	return keys
}

// Clear drops every key.
func (t *Tracker[K]) Clear() {
	t.log = nil
	t.index = make(map[K]int)
	t.offset = 0
}

// oldest returns the position of the first live slot, advancing offset to
// it, or -1 when no live slot remains.
func (t *Tracker[K]) oldest() int {
	for i := t.offset; i < len(t.log); i++ {
		if t.log[i].live {
			t.offset = i
			return i
		}
	}
	t.offset = len(t.log)
	return -1
}

func (t *Tracker[K]) compact() {
	switch {
	case len(t.log)-t.offset > 2*len(t.index):
		t.squash()
	// shrink once the dead prefix is more than half the log; a
	// len(log) > 2*offset trigger would fire on nearly every touch
	case 2*t.offset > len(t.log):
		t.shrink()
	}
}

// squash rebuilds the log with only the live keys, keeping their order.
func (t *Tracker[K]) squash() {
	live := make([]slot[K], 0, 2*len(t.index))
	index := make(map[K]int, len(t.index))
	for _, s := range t.log[t.offset:] {
		if s.live {
			index[s.key] = len(live)
			live = append(live, s)
		}
	}
	t.log = live
	t.index = index
	t.offset = 0
}

// shrink drops the dead prefix in front of offset.
func (t *Tracker[K]) shrink() {
	n := copy(t.log, t.log[t.offset:])
	clear(t.log[n:])
	t.log = t.log[:n]
	for key, i := range t.index {
		t.index[key] = i - t.offset
	}
	t.offset = 0
}
