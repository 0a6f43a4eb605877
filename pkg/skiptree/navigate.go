package skiptree

// frame is one level of a top-down descent kept for predecessor lookups,
// which need to backtrack to an earlier sibling subtree, something the
// forward-only link pointers can't do on their own.
type frame[K any, V any] struct {
	n   *node[K, V]
	c   *contents[K, V]
	idx int
}

// descendStack walks from the root to key's leaf, recording the node,
// contents and chosen index at every level, following the right link
// whenever a router or leaf is momentarily past-end for key.
func (m *Map[K, V]) descendStack(key K) []frame[K, V] {
	n := m.root.Load().node
	c := n.load()
	stack := make([]frame[K, V], 0, 8)
	for {
		idx, pastEnd := locate(c.keys, m.cmp, key)
		if pastEnd {
			if c.link == nil {
				stack = append(stack, frame[K, V]{n, c, len(c.keys)})
				return stack
			}
			n = c.link
			c = n.load()
			continue
		}
		stack = append(stack, frame[K, V]{n, c, idx})
		if c.isLeaf() {
			return stack
		}
		n = c.children[idx]
		c = n.load()
	}
}

func zeroKV[K any, V any]() (K, V, bool) {
	var k K
	var v V
	return k, v, false
}

func lastRealIndex[K any, V any](c *contents[K, V]) int {
	n := len(c.keys)
	if n == 0 {
		return -1
	}
	idx := n - 1
	if c.keys[idx].inf {
		idx--
	}
	return idx
}

// rightmostEntryUnder descends n always following link when present,
// otherwise taking the rightmost child, and returns the greatest entry
// reachable below it.
func (m *Map[K, V]) rightmostEntryUnder(n *node[K, V]) (K, V, bool) {
	c := n.load()
	for c.link != nil {
		n = c.link
		c = n.load()
	}
	for !c.isLeaf() {
		if len(c.children) == 0 {
			return zeroKV[K, V]()
		}
		n = c.children[len(c.children)-1]
		c = n.load()
		for c.link != nil {
			n = c.link
			c = n.load()
		}
	}
	idx := lastRealIndex(c)
	if idx < 0 {
		return zeroKV[K, V]()
	}
	return c.keys[idx].key, m.valueAt(c, idx), true
}

// findPredecessor returns the greatest entry strictly less than key. When
// the leaf reached for key has room to spare (its in-node index is not
// first), the predecessor is the previous slot in the very same leaf;
// otherwise descendStack's recorded ancestors are popped until one has a
// prior sibling subtree. That subtree is descended along its rightmost
// children, and the leaf level is scanned rightward from there, across
// links, up to the first key not below key; the last key passed is the
// answer.
func (m *Map[K, V]) findPredecessor(key K) (K, V, bool) {
	stack := m.descendStack(key)
	leaf := stack[len(stack)-1]
	if leaf.idx > 0 {
		pidx := leaf.idx - 1
		if pidx < len(leaf.c.keys) && !leaf.c.keys[pidx].inf {
			return leaf.c.keys[pidx].key, m.valueAt(leaf.c, pidx), true
		}
	}
	for i := len(stack) - 2; i >= 0; i-- {
		f := stack[i]
		if f.idx > 0 {
			k, v, ok := zeroKV[K, V]()
			n := f.c.children[f.idx-1]
			for c := n.load(); !c.isLeaf() && len(c.children) > 0; c = n.load() {
				n = c.children[len(c.children)-1]
			}
			for ; n != nil && n.load().isLeaf(); n = n.load().link {
				c := n.load()
				for j, e := range c.keys {
					if e.inf || m.cmp(e.key, key) >= 0 {
						return k, v, ok
					}
					k, v, ok = e.key, m.valueAt(c, j), true
				}
			}
			return k, v, ok
		}
	}
	return zeroKV[K, V]()
}

// Relation selects which ordering findNear accepts as a match.
type Relation uint8

const (
	RelLT Relation = 1 << iota
	RelEQ
	RelGT

	RelLE = RelLT | RelEQ
	RelGE = RelGT | RelEQ
)

// findNear implements Lower/Floor/Ceiling/Higher. traverseLeaf lands on
// key itself or on the first key greater than key; when key is present
// and rel excludes RelEQ, the candidate is instead the entry after it
// (following links past the end of the leaf). Only that single
// candidate, plus the predecessor for the LT case, needs inspecting.
func (m *Map[K, V]) findNear(key K, rel Relation) (K, V, bool) {
	_, c, idx := m.traverseLeaf(key)
	if idx < 0 {
		idx = -idx - 1
	} else if rel&RelEQ == 0 {
		idx++
	}
	for idx >= len(c.keys) && c.link != nil {
		c = c.link.load()
		idx = 0
	}
	if idx < len(c.keys) && !c.keys[idx].inf {
		cmpRes := m.cmp(c.keys[idx].key, key)
		if cmpRes == 0 && rel&RelEQ != 0 {
			return c.keys[idx].key, m.valueAt(c, idx), true
		}
		if cmpRes > 0 && rel&RelGT != 0 {
			return c.keys[idx].key, m.valueAt(c, idx), true
		}
	}
	if rel&RelLT != 0 {
		return m.findPredecessor(key)
	}
	return zeroKV[K, V]()
}

// Lower returns the greatest key strictly less than key.
func (m *Map[K, V]) Lower(key K) (K, V, bool, error) {
	if isNilArg(key) {
		return zeroErrKV[K, V](ErrNullKey)
	}
	k, v, ok := m.findNear(key, RelLT)
	return k, v, ok, nil
}

// Floor returns the greatest key less than or equal to key.
func (m *Map[K, V]) Floor(key K) (K, V, bool, error) {
	if isNilArg(key) {
		return zeroErrKV[K, V](ErrNullKey)
	}
	k, v, ok := m.findNear(key, RelLE)
	return k, v, ok, nil
}

// Ceiling returns the least key greater than or equal to key.
func (m *Map[K, V]) Ceiling(key K) (K, V, bool, error) {
	if isNilArg(key) {
		return zeroErrKV[K, V](ErrNullKey)
	}
	k, v, ok := m.findNear(key, RelGE)
	return k, v, ok, nil
}

// Higher returns the least key strictly greater than key.
func (m *Map[K, V]) Higher(key K) (K, V, bool, error) {
	if isNilArg(key) {
		return zeroErrKV[K, V](ErrNullKey)
	}
	k, v, ok := m.findNear(key, RelGT)
	return k, v, ok, nil
}

func zeroErrKV[K any, V any](err error) (K, V, bool, error) {
	var k K
	var v V
	return k, v, false, err
}

// findFirst anchors at leafHead, skipping exhausted leaves by advancing
// leafHead via CAS, a benign, observable-only-as-performance side effect,
// preserved from the source design.
func (m *Map[K, V]) findFirst() (*node[K, V], *contents[K, V], bool) {
	n := m.leafHead.Load()
	c := n.load()
	for {
		if len(c.keys) > 0 && !c.keys[0].inf {
			return n, c, true
		}
		if c.link == nil {
			return n, c, false
		}
		next := c.link
		m.leafHead.CompareAndSwap(n, next)
		n = next
		c = n.load()
	}
}

// findLastByScan walks the leaf level forward from leafHead, the
// fallback of last resort when a top-down rightmost descent lands on a
// transiently empty node.
func (m *Map[K, V]) findLastByScan() (K, V, bool) {
	n, c, ok := m.findFirst()
	if !ok {
		return zeroKV[K, V]()
	}
	idx := 0
	lastKey := c.keys[0].key
	lastVal := m.valueAt(c, 0)
	for {
		idx++
		if idx >= len(c.keys) || c.keys[idx].inf {
			if c.link == nil {
				break
			}
			n = c.link
			c = n.load()
			idx = -1
			continue
		}
		lastKey = c.keys[idx].key
		lastVal = m.valueAt(c, idx)
	}
	_ = n
	return lastKey, lastVal, true
}

// findLast follows link whenever present (always landing on the
// rightmost node of a level) and otherwise the rightmost child; because
// the rightmost leaf always ends in +∞ (D1), "last valid" is the slot
// just before it. If that slot turns out empty (a concurrent remove or
// an in-progress split), it falls back to findLastByScan.
func (m *Map[K, V]) findLast() (K, V, bool) {
	root := m.root.Load().node
	if k, v, ok := m.rightmostEntryUnder(root); ok {
		return k, v, ok
	}
	return m.findLastByScan()
}

// FirstKey returns the least key in the map.
func (m *Map[K, V]) FirstKey() (K, error) {
	k, _, err := m.FirstEntry()
	return k, err
}

// LastKey returns the greatest key in the map.
func (m *Map[K, V]) LastKey() (K, error) {
	k, _, err := m.LastEntry()
	return k, err
}

// FirstEntry returns the least key and its value.
func (m *Map[K, V]) FirstEntry() (K, V, error) {
	_, c, ok := m.findFirst()
	if !ok {
		var zk K
		var zv V
		return zk, zv, ErrNoSuchElement
	}
	return c.keys[0].key, m.valueAt(c, 0), nil
}

// LastEntry returns the greatest key and its value.
func (m *Map[K, V]) LastEntry() (K, V, error) {
	k, v, ok := m.findLast()
	if !ok {
		var zk K
		var zv V
		return zk, zv, ErrNoSuchElement
	}
	return k, v, nil
}

// PollFirstEntry removes and returns the least entry, if any.
func (m *Map[K, V]) PollFirstEntry() (K, V, bool, error) {
	for {
		n, c, ok := m.findFirst()
		if !ok {
			var zk K
			var zv V
			return zk, zv, false, ErrNoSuchElement
		}
		k := c.keys[0].key
		v := m.valueAt(c, 0)
		newKeys := removeEntryAt(c.keys, 0)
		var newValues []V
		if m.proxy == nil {
			newValues = removeValueAt(c.values, 0)
		}
		nc := &contents[K, V]{keys: newKeys, values: newValues, link: c.link}
		if n.cas(c, nc) {
			m.stats.removes.Add(1)
			return k, v, true, nil
		}
	}
}

// PollLastEntry removes and returns the greatest entry, if any.
func (m *Map[K, V]) PollLastEntry() (K, V, bool, error) {
	for {
		k, v, ok := m.findLast()
		if !ok {
			var zk K
			var zv V
			return zk, zv, false, ErrNoSuchElement
		}
		removed, err := m.RemoveIfEqual(k, v)
		if err != nil {
			var zk K
			var zv V
			return zk, zv, false, err
		}
		if removed {
			return k, v, true, nil
		}
		// Someone else removed or replaced it first; retry with the
		// current last entry.
	}
}
