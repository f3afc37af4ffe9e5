// Package splay provides a bottom-up splay tree and a bounded cache built on
// top of it.
//
// Every Insert and Find rotates the touched key, or the last node probed on a
// miss, to the root, so recently used keys sit near the top and the rotation
// history doubles as a recency signal. All operations are amortized
// O(log N). Nothing in this package is safe for concurrent use.
package splay

import "cmp"

// Tree is a self-adjusting binary search tree ordered by a comparator.
type Tree[K, V any] struct {
	root    *node[K, V]
	size    int
	compare func(a, b K) int
}

// NewTree returns an empty tree ordered by the natural order of K.
func NewTree[K cmp.Ordered, V any]() *Tree[K, V] {
	return NewTreeFunc[K, V](cmp.Compare[K])
}

// NewTreeFunc returns an empty tree ordered by compare, which must return a
// negative number, zero or a positive number as a sorts before, equal to or
// after b.
func NewTreeFunc[K, V any](compare func(a, b K) int) *Tree[K, V] {
	return &Tree[K, V]{compare: compare}
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Height returns the height of the root, -1 for an empty tree.
func (t *Tree[K, V]) Height() int {
	return heightOf(t.root)
}

// Root returns the entry currently at the root.
func (t *Tree[K, V]) Root() (key K, value V, ok bool) {
	if t.root == nil {
		return key, value, false
	}
	return t.root.key, t.root.value, true
}

// Insert adds or overwrites key and splays it to the root.
func (t *Tree[K, V]) Insert(key K, value V) {
	if t.root == nil {
		t.root = &node[K, V]{key: key, value: value}
		t.size++
		return
	}

	path, found := t.track(key)
	if found {
		path[len(path)-1].node.value = value
	} else {
		last := path[len(path)-1]
		n := &node[K, V]{key: key, value: value}
		if last.dir == left {
			last.node.left = n
		} else {
			last.node.right = n
		}
		path = append(path, step[K, V]{node: n})
		t.size++
	}
	t.splay(path)
}

// Find looks up key. On a hit the key is splayed to the root; on a miss the
// last node visited is splayed instead.
func (t *Tree[K, V]) Find(key K) (value V, ok bool) {
	path, found := t.track(key)
	t.splay(path)
	if !found {
		return value, false
	}
	return t.root.value, true
}

// Peek looks up key without restructuring the tree.
func (t *Tree[K, V]) Peek(key K) (value V, ok bool) {
	for n := t.root; n != nil; {
		c := t.compare(key, n.key)
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.value, true
		}
	}
	return value, false
}

// Delete removes key, returning whether it was present.
func (t *Tree[K, V]) Delete(key K) bool {
	if t.root == nil {
		return false
	}
	path, found := t.track(key)
	t.splay(path)
	if !found {
		return false
	}

	old := t.root
	if old.left == nil {
		t.root = old.right
	} else {
		// splay the predecessor to the top of the left subtree; it has no
		// right child afterwards
		sub := old.left
		t.splay(maxPath(sub))
		sub.right = old.right
		sub.updateHeight()
		t.root = sub
	}
	old.left, old.right = nil, nil
	t.size--
	return true
}

// Keys returns the keys in ascending order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	var stack []*node[K, V]
	n := t.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		keys = append(keys, n.key)
		n = n.right
	}
	return keys
}

// Clear removes every key.
func (t *Tree[K, V]) Clear() {
	t.root = nil
	t.size = 0
}

// track records the descent towards key. The path ends at the matching node
// or, on a miss, at the last node visited.
func (t *Tree[K, V]) track(key K) (path []step[K, V], found bool) {
	for n := t.root; n != nil; {
		c := t.compare(key, n.key)
		if c == 0 {
			return append(path, step[K, V]{node: n}), true
		}
		dir := left
		if c > 0 {
			dir = right
		}
		path = append(path, step[K, V]{node: n, dir: dir})
		n = n.child(dir)
	}
	return path, false
}

// maxPath records the walk from n to the largest key below it.
func maxPath[K, V any](n *node[K, V]) []step[K, V] {
	var path []step[K, V]
	for ; n != nil; n = n.right {
		path = append(path, step[K, V]{node: n, dir: right})
	}
	return path
}

// splay moves the key held by the last node of path into the first node of
// path, two levels at a time.
func (t *Tree[K, V]) splay(path []step[K, V]) {
	for n := len(path); n > 1; n = len(path) {
		if n == 2 {
			zig(path[0].node, path[0].dir, path[1].node)
			return
		}
		g, p, x := path[n-3], path[n-2], path[n-1]
		if g.dir == p.dir {
			zigZig(g.node, g.dir, p.node, p.dir, x.node)
		} else {
			zigZag(g.node, g.dir, p.node, p.dir, x.node)
		}
		path = path[:n-2]
	}
}
