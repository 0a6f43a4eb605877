package skiptree

import "sync/atomic"

// contents is an immutable snapshot of a node's keys and, depending on
// level, its values or its children, plus the right-link to the next
// node at the same level. Once installed it is never mutated in place;
// every visible change is a new contents value published by CAS on the
// owning node. This erases a whole class of torn-read races: a reader
// that observes a new contents sees fully initialized arrays, because
// the arrays are built before the contents value is published.
type contents[K any, V any] struct {
	keys     []entry[K]   // strictly ascending; last may be +∞ (D1)
	values   []V          // leaf only, len(values) == len(keys)
	children []*node[K, V] // router only, len(children) == len(keys)
	link     *node[K, V]  // right sibling at this level, nil if rightmost
}

func (c *contents[K, V]) isLeaf() bool {
	return c.children == nil
}

// node is a mutable wrapper around exactly one atomic slot. A node's
// level (leaf or router) is invariant over its lifetime, because it is
// fixed by whether contents.children is present and every CAS replacement
// keeps that shape.
type node[K any, V any] struct {
	c atomic.Pointer[contents[K, V]]
}

func newNode[K any, V any](c *contents[K, V]) *node[K, V] {
	n := &node[K, V]{}
	n.c.Store(c)
	return n
}

func (n *node[K, V]) load() *contents[K, V] {
	return n.c.Load()
}

// cas atomically replaces the node's contents; it fails (returns false)
// when the current snapshot is not old.
func (n *node[K, V]) cas(old, update *contents[K, V]) bool {
	return n.c.CompareAndSwap(old, update)
}

// headNode identifies the current top of the tree: the topmost node and
// the level ("height") it sits at. Growing the tree replaces the
// headNode with one whose node wraps a new one-key router (+∞, with the
// old root as sole child) at height+1.
type headNode[K any, V any] struct {
	node   *node[K, V]
	height int
}
