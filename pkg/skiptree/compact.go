package skiptree

// Compaction is online and cooperative: there is no background thread.
// Every descent that passes a router may perform one cleaning step on
// its way down. A cleaning step never affects the correctness of D1-D5,
// it only reduces clutter so later descents converge faster. A lost
// CAS during cleaning is not retried; the clutter is simply left for the
// next descent to find.

// cleanNode performs at most one cleaning step on (n, c), where idx is
// the index the caller is about to descend through and barrier is the
// left-bound key inherited from the level above. It returns the refreshed
// contents if it made a change, or nil if nothing needed doing (or its
// single CAS attempt lost). A key-slide step (attemptSlideKeyFor in
// cleanNode1/cleanNode2) also yields nil, whether or not its CASes took
// effect.
func (m *Map[K, V]) cleanNode(n *node[K, V], c *contents[K, V], idx int, barrier entry[K]) *contents[K, V] {
	if nc := m.cleanLink(n, c); nc != nil {
		m.stats.cleans.Add(1)
		return nc
	}
	var nc *contents[K, V]
	switch len(c.keys) {
	case 0:
		return nil
	case 1:
		nc = m.cleanNode1(n, c, barrier)
	case 2:
		nc = m.cleanNode2(n, c, barrier)
	default:
		nc = m.cleanNodeN(n, c, idx, barrier)
	}
	if nc != nil {
		m.stats.cleans.Add(1)
	}
	return nc
}

// cleanLink advances c.link past any run of emptied-out nodes, CASing in
// the shortened chain. It returns nil if the immediate link already
// points to a non-empty node (or there is no link at all).
func (m *Map[K, V]) cleanLink(n *node[K, V], c *contents[K, V]) *contents[K, V] {
	if c.link == nil {
		return nil
	}
	cur := c.link
	cc := cur.load()
	changed := false
	for len(cc.keys) == 0 && cc.link != nil {
		cur = cc.link
		cc = cur.load()
		changed = true
	}
	if !changed {
		return nil
	}
	nc := &contents[K, V]{keys: c.keys, values: c.values, children: c.children, link: cur}
	if n.cas(c, nc) {
		return nc
	}
	return nil
}

// goodSamaritanCleanNeighbor runs attemptSlideKeyFor on the right
// neighbor of c at this level, when c is a router whose neighbor is not
// empty: it tries to slide that neighbor's last key and child into the
// neighbor's own right sibling. No key of c itself is moved into the
// neighbor.
func (m *Map[K, V]) goodSamaritanCleanNeighbor(c *contents[K, V]) {
	if c.link == nil || c.isLeaf() {
		return
	}
	right := c.link
	rc := right.load()
	if len(rc.keys) == 0 {
		return
	}
	if nc := m.attemptSlideKeyFor(right, rc); nc != nil {
		m.stats.cleans.Add(1)
	}
}

// cleanNode1 handles a single-key router: try to slide its one key into
// its right sibling; failing that, refresh its sole child reference.
func (m *Map[K, V]) cleanNode1(n *node[K, V], c *contents[K, V], barrier entry[K]) *contents[K, V] {
	if m.attemptSlideKeyFor(n, c) != nil {
		return nil
	}
	newChild := m.pushRight(c.children[0], barrier)
	if newChild == c.children[0] {
		return nil
	}
	return m.shiftChild(n, c, 0, newChild)
}

// cleanNode2 handles a two-key router: try to slide the last key into
// the right sibling; failing that, refresh both children at once.
func (m *Map[K, V]) cleanNode2(n *node[K, V], c *contents[K, V], barrier entry[K]) *contents[K, V] {
	if m.attemptSlideKeyFor(n, c) != nil {
		return nil
	}
	c0 := m.pushRight(c.children[0], barrier)
	c1 := m.pushRight(c.children[1], c.keys[0])
	if c0 == c.children[0] && c1 == c.children[1] {
		return nil
	}
	return m.shiftChildren2(n, c, 0, c0, c1)
}

// cleanNodeN handles an interior index of a longer router: refresh the
// child at index past its left barrier, and, if index is interior,
// also refresh the next child past the separator at keys[index]. If both
// land on the same node, the separator and one child can be dropped.
func (m *Map[K, V]) cleanNodeN(n *node[K, V], c *contents[K, V], index int, barrier entry[K]) *contents[K, V] {
	lower := barrier
	if index > 0 {
		lower = c.keys[index-1]
	}
	left := m.pushRight(c.children[index], lower)

	if index+1 < len(c.children) {
		sep := c.keys[index]
		right := m.pushRight(c.children[index+1], sep)
		if left == right {
			return m.dropChild(n, c, index, left)
		}
		if left == c.children[index] && right == c.children[index+1] {
			return nil
		}
		return m.shiftChildren2(n, c, index, left, right)
	}

	if left == c.children[index] {
		return nil
	}
	return m.shiftChild(n, c, index, left)
}

// attemptSlideKeyFor pushes (n, c)'s last key and child into its right
// sibling, concentrating routers. It returns a non-nil contents (the
// caller's own, unchanged) to signal "an attempt was made, do not retry
// this cleaning step right now" even when the second, deleting CAS
// loses: the key simply exists duplicated across two levels for a
// moment, tolerated because D3 only requires one correct routing pair
// and D4 only requires the correct tail set. It returns nil when no
// attempt was made at all (preconditions not met).
func (m *Map[K, V]) attemptSlideKeyFor(n *node[K, V], c *contents[K, V]) *contents[K, V] {
	if c.isLeaf() || len(c.keys) == 0 || c.link == nil {
		return nil
	}
	lastIdx := len(c.keys) - 1
	lastKey := c.keys[lastIdx]
	if lastKey.inf {
		return nil
	}
	lastChild := c.children[lastIdx]

	right := m.pushRight(c.link, lastKey)
	rc := right.load()
	if len(rc.keys) == 0 || rc.isLeaf() {
		return nil
	}
	if rc.children[0] != lastChild {
		return nil
	}

	m.slideToNeighbor(right, rc, lastKey, lastChild)
	m.deleteSlidedKey(n, c, lastIdx)
	return c
}

// slideToNeighbor CAS-inserts key+child as the new first element of
// right's contents.
func (m *Map[K, V]) slideToNeighbor(right *node[K, V], rc *contents[K, V], key entry[K], child *node[K, V]) bool {
	if len(rc.keys) == 0 || rc.children[0] != child {
		return false
	}
	newKeys := make([]entry[K], len(rc.keys)+1)
	newKeys[0] = key
	copy(newKeys[1:], rc.keys)
	newChildren := make([]*node[K, V], len(rc.children)+1)
	newChildren[0] = child
	copy(newChildren[1:], rc.children)
	nc := &contents[K, V]{keys: newKeys, children: newChildren, link: rc.link}
	return right.cas(rc, nc)
}

// deleteSlidedKey CAS-removes key+child at idx from n's own contents.
func (m *Map[K, V]) deleteSlidedKey(n *node[K, V], c *contents[K, V], idx int) bool {
	newKeys := removeEntryAt(c.keys, idx)
	newChildren := removeNodeAt(c.children, idx)
	nc := &contents[K, V]{keys: newKeys, children: newChildren, link: c.link}
	return n.cas(c, nc)
}

// dropChild removes keys[index] and children[index+1], replacing
// children[index] with merged.
func (m *Map[K, V]) dropChild(n *node[K, V], c *contents[K, V], index int, merged *node[K, V]) *contents[K, V] {
	newKeys := removeEntryAt(c.keys, index)
	newChildren := make([]*node[K, V], 0, len(c.children)-1)
	newChildren = append(newChildren, c.children[:index]...)
	newChildren = append(newChildren, merged)
	newChildren = append(newChildren, c.children[index+2:]...)
	nc := &contents[K, V]{keys: newKeys, children: newChildren, link: c.link}
	if n.cas(c, nc) {
		return nc
	}
	return nil
}

// shiftChild replaces a single child slot.
func (m *Map[K, V]) shiftChild(n *node[K, V], c *contents[K, V], idx int, newChild *node[K, V]) *contents[K, V] {
	newChildren := append([]*node[K, V](nil), c.children...)
	newChildren[idx] = newChild
	nc := &contents[K, V]{keys: c.keys, children: newChildren, link: c.link}
	if n.cas(c, nc) {
		return nc
	}
	return nil
}

// shiftChildren2 replaces two adjacent child slots in a single CAS.
func (m *Map[K, V]) shiftChildren2(n *node[K, V], c *contents[K, V], idx int, left, right *node[K, V]) *contents[K, V] {
	newChildren := append([]*node[K, V](nil), c.children...)
	newChildren[idx] = left
	if idx+1 < len(newChildren) {
		newChildren[idx+1] = right
	}
	nc := &contents[K, V]{keys: c.keys, children: newChildren, link: c.link}
	if n.cas(c, nc) {
		return nc
	}
	return nil
}

func removeEntryAt[K any](s []entry[K], idx int) []entry[K] {
	out := make([]entry[K], 0, len(s)-1)
	out = append(out, s[:idx]...)
	out = append(out, s[idx+1:]...)
	return out
}

func removeNodeAt[K any, V any](s []*node[K, V], idx int) []*node[K, V] {
	out := make([]*node[K, V], 0, len(s)-1)
	out = append(out, s[:idx]...)
	out = append(out, s[idx+1:]...)
	return out
}
