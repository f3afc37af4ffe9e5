// Package testutils holds conformance checks that every bounded cache engine
// must pass.
package testutils

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/venkatsvpr/evictcache/internal/cacheerr"
	"github.com/venkatsvpr/evictcache/simplelru"
)

// CapacityTest drives random inserts, finds and deletes and checks that the
// cache never exceeds its capacity and never returns a stale value.
func CapacityTest(t *testing.T, l simplelru.BoundedCache[int, int], seed int64) {
	t.Helper()
	capacity := l.Cap()
	r := rand.New(rand.NewSource(seed))
	latest := make(map[int]int)

	for i := 0; i < 50*capacity; i++ {
		key := r.Intn(4 * capacity)
		switch r.Intn(4) {
		case 0, 1:
			l.Insert(key, i)
			latest[key] = i
			// the key just written is never the eviction victim
			if v, ok := l.Peek(key); !ok || v != i {
				t.Fatalf("step %d: read-your-write failed for %d: %v, %v", i, key, v, ok)
			}
		case 2:
			if v, ok := l.Find(key); ok && v != latest[key] {
				t.Fatalf("step %d: stale value for %d: got %v, want %v", i, key, v, latest[key])
			}
		case 3:
			l.Delete(key)
			delete(latest, key)
			if l.Contains(key) {
				t.Fatalf("step %d: %d survived delete", i, key)
			}
		}

		if l.Len() > capacity {
			t.Fatalf("step %d: len %d exceeds capacity %d", i, l.Len(), capacity)
		}
		if len(l.Keys()) != l.Len() {
			t.Fatalf("step %d: %d keys for len %d", i, len(l.Keys()), l.Len())
		}
	}
}

// EvictOldestTest inserts one more ascending key than fits; the first key
// must be the one evicted.
func EvictOldestTest(t *testing.T, l simplelru.BoundedCache[int, int]) {
	t.Helper()
	capacity := l.Cap()
	for i := 0; i < capacity; i++ {
		if l.Insert(i, i) {
			t.Fatalf("should not have an eviction")
		}
	}
	if !l.Insert(capacity, capacity) {
		t.Fatalf("should have an eviction")
	}

	if l.Contains(0) {
		t.Fatalf("0 should be evicted")
	}
	for i := 1; i <= capacity; i++ {
		if v, ok := l.Find(i); !ok || v != i {
			t.Fatalf("bad key %d: %v, %v", i, v, ok)
		}
	}
}

// ScenarioTest replays insert(1..3), find(1), insert(4) on a cache of three.
func ScenarioTest(t *testing.T, l simplelru.BoundedCache[int, int]) {
	t.Helper()
	if l.Cap() != 3 {
		t.Fatalf("scenario needs a capacity of 3, got %d", l.Cap())
	}
	l.Insert(1, 100)
	l.Insert(2, 200)
	l.Insert(3, 300)
	if v, ok := l.Find(1); !ok || v != 100 {
		t.Fatalf("1 should be set to 100: %v, %v", v, ok)
	}
	l.Insert(4, 400)

	if l.Len() != 3 {
		t.Fatalf("bad len: %v", l.Len())
	}
	if _, ok := l.Find(2); ok {
		t.Fatalf("2 should be evicted")
	}
	for k, want := range map[int]int{1: 100, 3: 300, 4: 400} {
		if v, ok := l.Find(k); !ok || v != want {
			t.Fatalf("%d: got %v, %v", k, v, ok)
		}
	}
}

// DeleteTest checks that deleting is idempotent.
func DeleteTest(t *testing.T, l simplelru.BoundedCache[int, int]) {
	t.Helper()
	l.Insert(1, 1)
	if !l.Delete(1) {
		t.Fatalf("1 should be contained")
	}
	if l.Delete(1) {
		t.Fatalf("1 should not be contained")
	}
	if l.Delete(2) {
		t.Fatalf("2 was never inserted")
	}
	if _, ok := l.Find(1); ok {
		t.Fatalf("1 should be deleted")
	}
	if l.Len() != 0 {
		t.Fatalf("bad len: %v", l.Len())
	}
}

// HitRateTest checks the lookup counters.
func HitRateTest(t *testing.T, l simplelru.BoundedCache[int, int]) {
	t.Helper()
	if _, err := l.HitRate(); !errors.Is(err, cacheerr.ErrZeroActivity) {
		t.Fatalf("expected ErrZeroActivity, got %v", err)
	}

	l.Insert(1, 1)
	l.Peek(1)
	l.Contains(2)
	if l.Hits() != 0 || l.Misses() != 0 {
		t.Fatalf("Peek and Contains should not count lookups")
	}

	l.Find(1)
	l.Find(2)
	l.Find(3)
	l.Find(1)
	if l.Hits() != 2 || l.Misses() != 2 {
		t.Fatalf("bad counters: %d/%d", l.Hits(), l.Misses())
	}
	if rate, err := l.HitRate(); err != nil || rate != 0.5 {
		t.Fatalf("bad hit rate: %v, %v", rate, err)
	}

	l.Purge()
	if l.Len() != 0 {
		t.Fatalf("bad len: %v", l.Len())
	}
	if _, err := l.HitRate(); !errors.Is(err, cacheerr.ErrZeroActivity) {
		t.Fatalf("Purge should reset counters, got %v", err)
	}
}

// ResizeTest shrinks and grows the cache.
func ResizeTest(t *testing.T, l simplelru.BoundedCache[int, int]) {
	t.Helper()
	capacity := l.Cap()
	for i := 0; i < capacity; i++ {
		l.Insert(i, i)
	}
	half := capacity / 2
	if half == 0 {
		half = 1
	}
	if evicted := l.Resize(half); evicted != capacity-half {
		t.Fatalf("%d elements should have been evicted: %v", capacity-half, evicted)
	}
	if l.Len() != half || l.Cap() != half {
		t.Fatalf("bad size after resize: len %d cap %d", l.Len(), l.Cap())
	}
	if evicted := l.Resize(capacity); evicted != 0 {
		t.Fatalf("0 elements should have been evicted: %v", evicted)
	}
}
