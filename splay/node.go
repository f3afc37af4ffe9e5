package splay

type branch int8

const (
	left branch = iota
	right
)

// node is owned by its parent, or by the tree for the root. Rotations swap
// key and value between node objects rather than moving them, so a pointer
// recorded during descent stays valid for the whole splay.
type node[K, V any] struct {
	key    K
	value  V
	left   *node[K, V]
	right  *node[K, V]
	height int
}

func (n *node[K, V]) child(b branch) *node[K, V] {
	if b == left {
		return n.left
	}
	return n.right
}

func (n *node[K, V]) swap(o *node[K, V]) {
	n.key, o.key = o.key, n.key
	n.value, o.value = o.value, n.value
}

func (n *node[K, V]) updateHeight() {
	n.height = 1 + max(heightOf(n.left), heightOf(n.right))
}

// heightOf treats a missing child as height -1, so a leaf has height 0.
func heightOf[K, V any](n *node[K, V]) int {
	if n == nil {
		return -1
	}
	return n.height
}

// step is one node of a recorded descent and the branch taken out of it.
// The branch of the last step is unused.
type step[K, V any] struct {
	node *node[K, V]
	dir  branch
}

// zig rotates n2, the child of n1 along b, above n1. Heights of both nodes
// are recomputed, lower one first.
func zig[K, V any](n1 *node[K, V], b branch, n2 *node[K, V]) {
	n1.swap(n2)
	if b == left {
		n1.left = n2.left
		n2.left = n2.right
		n2.right = n1.right
		n1.right = n2
	} else {
		n1.right = n2.right
		n2.right = n2.left
		n2.left = n1.left
		n1.left = n2
	}
	n2.updateHeight()
	n1.updateHeight()
}

// zigZig lifts n3 two levels when n2 and n3 hang off the same side.
func zigZig[K, V any](n1 *node[K, V], b1 branch, n2 *node[K, V], b2 branch, n3 *node[K, V]) {
	zig(n1, b1, n2)
	zig(n1, b2, n3)
}

// zigZag lifts n3 two levels when n2 and n3 hang off opposite sides.
func zigZag[K, V any](n1 *node[K, V], b1 branch, n2 *node[K, V], b2 branch, n3 *node[K, V]) {
	zig(n2, b2, n3)
	zig(n1, b1, n2)
}
