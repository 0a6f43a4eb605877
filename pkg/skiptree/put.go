package skiptree

// Put inserts key with value, or replaces the value of an already-present
// key. It returns the previous value and whether the key was already
// present.
func (m *Map[K, V]) Put(key K, value V) (previous V, existed bool, err error) {
	return m.put(key, value, false)
}

// PutIfAbsent inserts key with value only if key is not already present.
// It returns the existing value (and true) when key was already present,
// leaving the map unchanged.
func (m *Map[K, V]) PutIfAbsent(key K, value V) (previous V, existed bool, err error) {
	return m.put(key, value, true)
}

func (m *Map[K, V]) put(key K, value V, onlyIfAbsent bool) (V, bool, error) {
	var zero V
	if isNilArg(key) {
		return zero, false, ErrNullKey
	}
	if isNilArg(value) {
		return zero, false, ErrNullValue
	}
	m.stats.puts.Add(1)

	level := m.randomLevel()
	if level == 0 {
		n, c, idx := m.traverseLeaf(key)
		_, old, existed := m.insertAtLeaf(n, c, idx, key, value, onlyIfAbsent)
		return old, existed, nil
	}

	results := m.traverseNonLeaf(key, level)
	cur, old, existed := m.insertAtLeaf(results[0].node, results[0].c, search(results[0].c.keys, m.cmp, key), key, value, onlyIfAbsent)
	if existed && onlyIfAbsent {
		return old, existed, nil
	}

	for i := 0; i < level; i++ {
		right := m.splitOneLevel(key, cur)
		if right == nil {
			break
		}
		next, ok := m.insertOneLevel(key, results[i+1].node, right)
		if !ok {
			break
		}
		cur = next
	}
	return old, existed, nil
}

// insertAtLeaf builds and CASes in a new leaf contents with key inserted
// at its sorted position (existing key -> value replacement; absent key
// -> key+value insertion), retrying via moveForward on CAS conflict. It
// returns the leaf node the key now lives in, the previous value, and
// whether the key already existed.
func (m *Map[K, V]) insertAtLeaf(n *node[K, V], c *contents[K, V], idx int, key K, value V, onlyIfAbsent bool) (*node[K, V], V, bool) {
	var zero V
	for {
		if idx >= 0 {
			old := m.valueAt(c, idx)
			if onlyIfAbsent {
				return n, old, true
			}
			nc := m.withReplacedValue(c, idx, value)
			if nc == c || n.cas(c, nc) {
				return n, old, true
			}
		} else {
			pos := -(idx) - 1
			nc := m.withInsertedKV(c, pos, key, value)
			if n.cas(c, nc) {
				return n, zero, false
			}
		}
		n, c = m.moveForward(n, key)
		idx = search(c.keys, m.cmp, key)
	}
}

func (m *Map[K, V]) valueAt(c *contents[K, V], idx int) V {
	if m.proxy != nil {
		return *m.proxy
	}
	return c.values[idx]
}

// withReplacedValue returns the contents update for overwriting the
// value at idx, or c itself (signaling "no CAS needed") when the map is
// in value-proxy mode and every value is the same placeholder anyway.
func (m *Map[K, V]) withReplacedValue(c *contents[K, V], idx int, value V) *contents[K, V] {
	if m.proxy != nil {
		return c
	}
	newValues := append([]V(nil), c.values...)
	newValues[idx] = value
	return &contents[K, V]{keys: c.keys, values: newValues, link: c.link}
}

func (m *Map[K, V]) withInsertedKV(c *contents[K, V], pos int, key K, value V) *contents[K, V] {
	newKeys := insertEntryAt(c.keys, pos, realEntry(key))
	var newValues []V
	if m.proxy == nil {
		newValues = insertValueAt(c.values, pos, value)
	}
	return &contents[K, V]{keys: newKeys, values: newValues, link: c.link}
}

// splitOneLevel tries to split n at key: it requires key to be present in
// n's current contents, n to hold at least two keys, and key not to be
// the last stored key (splitting there would leave nothing for the right
// half). On success it returns the freshly allocated right sibling; on
// failure (preconditions unmet, or the single CAS attempt lost) it
// returns nil, aborting the upward cascade; the caller must not retry
// this level.
func (m *Map[K, V]) splitOneLevel(key K, n *node[K, V]) *node[K, V] {
	c := n.load()
	if _, pastEnd := locate(c.keys, m.cmp, key); pastEnd {
		n, c = m.moveForward(n, key)
	}
	idx := search(c.keys, m.cmp, key)
	if idx < 0 || len(c.keys) < 2 || idx == len(c.keys)-1 {
		return nil
	}

	leftKeys := append([]entry[K](nil), c.keys[:idx+1]...)
	rightKeys := append([]entry[K](nil), c.keys[idx+1:]...)

	var leftValues, rightValues []V
	var leftChildren, rightChildren []*node[K, V]
	if c.isLeaf() {
		if m.proxy == nil {
			leftValues = append([]V(nil), c.values[:idx+1]...)
			rightValues = append([]V(nil), c.values[idx+1:]...)
		}
	} else {
		leftChildren = append([]*node[K, V](nil), c.children[:idx+1]...)
		rightChildren = append([]*node[K, V](nil), c.children[idx+1:]...)
	}

	right := newNode[K, V](&contents[K, V]{keys: rightKeys, values: rightValues, children: rightChildren, link: c.link})
	newLeft := &contents[K, V]{keys: leftKeys, values: leftValues, children: leftChildren, link: right}
	if n.cas(c, newLeft) {
		m.stats.splits.Add(1)
		return right
	}
	return nil
}

// insertOneLevel installs key into the router reachable from n, with
// child (the right half of a split) as the child slot just after key,
// retrying via moveForward on CAS conflict. The child slot before key
// keeps the node that already covered key's range, which now holds keys
// up to key, so this is always a single insertion, never an update. A
// key that is already present is left as it is.
func (m *Map[K, V]) insertOneLevel(key K, n *node[K, V], child *node[K, V]) (*node[K, V], bool) {
	c := n.load()
	for {
		idx, pastEnd := locate(c.keys, m.cmp, key)
		if pastEnd {
			n, c = m.moveForward(n, key)
			continue
		}
		if search(c.keys, m.cmp, key) >= 0 {
			return n, true
		}
		pos := idx
		newKeys := insertEntryAt(c.keys, pos, realEntry(key))
		newChildren := insertNodeAt(c.children, pos+1, child)
		nc := &contents[K, V]{keys: newKeys, children: newChildren, link: c.link}
		if n.cas(c, nc) {
			return n, true
		}
		n, c = m.moveForward(n, key)
	}
}
