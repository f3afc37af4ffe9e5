package splay

import (
	"errors"
	"math/rand"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"

	"github.com/venkatsvpr/evictcache/internal/cacheerr"
)

func TestCache_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New[int, int](size, nil); !errors.Is(err, cacheerr.ErrConfig) {
			t.Fatalf("size %d: expected ErrConfig, got %v", size, err)
		}
	}
}

func TestCache_Scenario(t *testing.T) {
	c, err := New[string, int](3, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	c.Insert("a", 1)
	c.Insert("b", 2)
	c.Insert("c", 3)
	if _, ok := c.Find("a"); !ok {
		t.Fatalf("a should be found")
	}
	if !c.Insert("d", 4) {
		t.Fatalf("inserting d should evict")
	}

	if c.Len() != 3 {
		t.Fatalf("bad len: %v", c.Len())
	}
	if _, ok := c.Find("b"); ok {
		t.Fatalf("b should be evicted")
	}
	for k, want := range map[string]int{"a": 1, "c": 3, "d": 4} {
		if v, ok := c.Find(k); !ok || v != want {
			t.Fatalf("%s: got %v, %v", k, v, ok)
		}
	}
	verify(t, c.tree)
}

// Ascending inserts build a left spine, so the deepest node is the oldest.
func TestCache_AscendingEvictsOldest(t *testing.T) {
	var evicted []int
	c, err := New(4, func(k int, v int) {
		if k != v {
			t.Fatalf("Evict values not equal (%v!=%v)", k, v)
		}
		evicted = append(evicted, k)
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	for i := 0; i < 8; i++ {
		c.Insert(i, i)
		verify(t, c.tree)
	}
	if diff := gocmp.Diff([]int{0, 1, 2, 3}, evicted); diff != "" {
		t.Fatalf("evicted mismatch (-want +got):\n%s", diff)
	}
	if diff := gocmp.Diff([]int{4, 5, 6, 7}, c.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_FindSplaysToRoot(t *testing.T) {
	c, _ := New[int, int](16, nil)
	for i := 0; i < 16; i++ {
		c.Insert(i, i*i)
	}
	for _, k := range []int{3, 11, 0, 15, 7} {
		if v, ok := c.Find(k); !ok || v != k*k {
			t.Fatalf("bad value for %d: %v, %v", k, v, ok)
		}
		if root, _, _ := c.Root(); root != k {
			t.Fatalf("find %d: root is %d", k, root)
		}
	}
}

func TestCache_PeekContains(t *testing.T) {
	c, _ := New[int, int](2, nil)
	c.Insert(1, 1)
	c.Insert(2, 2)

	if v, ok := c.Peek(1); !ok || v != 1 {
		t.Fatalf("1 should be set to 1: %v, %v", v, ok)
	}
	if !c.Contains(2) || c.Contains(3) {
		t.Fatalf("bad contains")
	}
	if c.Hits() != 0 || c.Misses() != 0 {
		t.Fatalf("Peek and Contains should not count lookups")
	}
	if root, _, _ := c.Root(); root != 2 {
		t.Fatalf("Peek should not splay, root is %d", root)
	}
}

func TestCache_Delete(t *testing.T) {
	c, _ := New[int, int](4, nil)
	c.Insert(1, 1)
	c.Insert(2, 2)

	if !c.Delete(1) {
		t.Fatalf("1 should be contained")
	}
	if c.Delete(1) {
		t.Fatalf("1 should not be contained")
	}
	if c.Len() != 1 {
		t.Fatalf("bad len: %v", c.Len())
	}
	verify(t, c.tree)
}

func TestCache_HitRate(t *testing.T) {
	c, _ := New[int, int](4, nil)
	if _, err := c.HitRate(); !errors.Is(err, cacheerr.ErrZeroActivity) {
		t.Fatalf("expected ErrZeroActivity, got %v", err)
	}

	c.Insert(1, 1)
	c.Find(1)
	c.Find(1)
	c.Find(1)
	c.Find(2)

	if c.Hits() != 3 || c.Misses() != 1 {
		t.Fatalf("bad counters: %d/%d", c.Hits(), c.Misses())
	}
	rate, err := c.HitRate()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rate != 0.75 {
		t.Fatalf("bad hit rate: %v", rate)
	}

	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("bad len: %v", c.Len())
	}
	if _, err := c.HitRate(); !errors.Is(err, cacheerr.ErrZeroActivity) {
		t.Fatalf("Purge should reset counters, got %v", err)
	}
}

func TestCache_EvictDeepest(t *testing.T) {
	c, _ := New[int, int](8, nil)
	if _, _, err := c.EvictDeepest(); !errors.Is(err, cacheerr.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}

	c.Insert(1, 10)
	c.Insert(2, 20)
	c.Insert(3, 30)
	k, v, err := c.EvictDeepest()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if k != 1 || v != 10 {
		t.Fatalf("bad victim: %v=%v", k, v)
	}
	verify(t, c.tree)

	c.EvictDeepest()
	c.EvictDeepest()
	if c.Len() != 0 {
		t.Fatalf("bad len: %v", c.Len())
	}
}

func TestCache_Resize(t *testing.T) {
	onEvictCounter := 0
	c, _ := New(4, func(int, int) { onEvictCounter++ })
	for i := 0; i < 4; i++ {
		c.Insert(i, i)
	}

	if evicted := c.Resize(2); evicted != 2 {
		t.Fatalf("2 elements should have been evicted: %v", evicted)
	}
	if onEvictCounter != 2 {
		t.Fatalf("onEvicted should have been called 2 times: %v", onEvictCounter)
	}
	if c.Cap() != 2 || c.Len() != 2 {
		t.Fatalf("bad size after resize: cap %d len %d", c.Cap(), c.Len())
	}

	if evicted := c.Resize(8); evicted != 0 {
		t.Fatalf("0 elements should have been evicted: %v", evicted)
	}
	for i := 10; i < 16; i++ {
		c.Insert(i, i)
	}
	if c.Len() != 8 {
		t.Fatalf("bad len: %v", c.Len())
	}
}

func TestCache_RandomOps(t *testing.T) {
	const size = 32
	r := rand.New(rand.NewSource(3))
	model := make(map[int]int)
	c, _ := New(size, func(k int, _ int) {
		delete(model, k)
	})

	for i := 0; i < 20000; i++ {
		key := r.Intn(256)
		switch r.Intn(4) {
		case 0, 1:
			c.Insert(key, i)
			model[key] = i
		case 2:
			v, ok := c.Find(key)
			want, present := model[key]
			if ok != present || v != want {
				t.Fatalf("step %d: find %d got (%v, %v), want (%v, %v)", i, key, v, ok, want, present)
			}
		case 3:
			c.Delete(key)
			delete(model, key)
		}
		if c.Len() > size {
			t.Fatalf("step %d: len %d exceeds %d", i, c.Len(), size)
		}
		if c.Len() != len(model) {
			t.Fatalf("step %d: len %d, model %d", i, c.Len(), len(model))
		}
	}
	verify(t, c.tree)
}
