package skiptree

// NewFromSorted builds a Map in one shot from entries already in
// strictly ascending key order, skipping the per-insert CAS retries and
// random level draws that Put would otherwise do one entry at a time.
// It returns ErrIllegalState if entries is not strictly ascending by
// opts.Comparator, and ErrNullKey/ErrNullValue if any element is nil.
func NewFromSorted[K any, V any](entries []Entry[K, V], opts Options[K, V]) (*Map[K, V], error) {
	if opts.Comparator == nil {
		panic("skiptree: NewFromSorted requires a Comparator")
	}
	b := opts.Branching
	if b <= 0 {
		b = defaultBranching
	}
	m := &Map[K, V]{cmp: opts.Comparator, branching: b, proxy: opts.ValueProxy}
	m.rngState.Store(seedFor(nextInstanceSalt()))

	for i, e := range entries {
		if isNilArg(e.Key) {
			return nil, ErrNullKey
		}
		if m.proxy == nil && isNilArg(e.Value) {
			return nil, ErrNullValue
		}
		if i > 0 && m.cmp(entries[i-1].Key, e.Key) >= 0 {
			return nil, ErrIllegalState
		}
	}

	leaves := m.buildLeafChunks(entries)
	m.leafHead.Store(leaves[0])

	router := m.buildRouterLevel(leaves)
	height := 1
	for len(router) > 1 {
		router = m.buildRouterLevel(router)
		height++
	}
	m.root.Store(&headNode[K, V]{node: router[0], height: height})
	return m, nil
}

// buildLeafChunks splits entries into runs of at most m.branching,
// materializes one leaf node per run, right-links them in order, and
// terminates the last one with the +∞ sentinel (D1).
func (m *Map[K, V]) buildLeafChunks(entries []Entry[K, V]) []*node[K, V] {
	if len(entries) == 0 {
		leaf := newNode[K, V](&contents[K, V]{keys: []entry[K]{infEntry[K]()}, values: m.leafValuesForInit()})
		return []*node[K, V]{leaf}
	}
	var leaves []*node[K, V]
	for start := 0; start < len(entries); start += m.branching {
		end := start + m.branching
		if end > len(entries) {
			end = len(entries)
		}
		chunk := entries[start:end]
		keys := make([]entry[K], 0, len(chunk)+1)
		var values []V
		if m.proxy == nil {
			values = make([]V, 0, len(chunk)+1)
		}
		for _, e := range chunk {
			keys = append(keys, realEntry(e.Key))
			if m.proxy == nil {
				values = append(values, e.Value)
			}
		}
		last := end == len(entries)
		if last {
			keys = append(keys, infEntry[K]())
			if m.proxy == nil {
				values = append(values, *new(V))
			}
		}
		leaves = append(leaves, newNode[K, V](&contents[K, V]{keys: keys, values: values}))
	}
	for i := len(leaves) - 2; i >= 0; i-- {
		c := leaves[i].load()
		leaves[i] = newNode[K, V](&contents[K, V]{keys: c.keys, values: c.values, link: leaves[i+1]})
	}
	return leaves
}

// buildRouterLevel groups children into runs of at most m.branching,
// building one router node per run whose keys are each child's greatest
// real key (the rightmost child of the whole level instead carries the
// +∞ sentinel, per D1), right-linked in order.
func (m *Map[K, V]) buildRouterLevel(children []*node[K, V]) []*node[K, V] {
	var routers []*node[K, V]
	for start := 0; start < len(children); start += m.branching {
		end := start + m.branching
		if end > len(children) {
			end = len(children)
		}
		chunk := children[start:end]
		keys := make([]entry[K], len(chunk))
		kids := make([]*node[K, V], len(chunk))
		copy(kids, chunk)
		last := end == len(children)
		for i, child := range chunk {
			if last && i == len(chunk)-1 {
				keys[i] = infEntry[K]()
				continue
			}
			keys[i] = realEntry(m.greatestKeyUnder(child))
		}
		routers = append(routers, newNode[K, V](&contents[K, V]{keys: keys, children: kids}))
	}
	for i := len(routers) - 2; i >= 0; i-- {
		c := routers[i].load()
		routers[i] = newNode[K, V](&contents[K, V]{keys: c.keys, children: c.children, link: routers[i+1]})
	}
	return routers
}

// greatestKeyUnder returns the greatest real key in n's own subtree,
// following only rightmost children, never n's link: n is a node freshly
// built for one chunk of this level, and its link (once attached) points
// across into the next chunk's subtree, which is no part of n's own
// range.
func (m *Map[K, V]) greatestKeyUnder(n *node[K, V]) K {
	c := n.load()
	for !c.isLeaf() {
		n = c.children[len(c.children)-1]
		c = n.load()
	}
	idx := lastRealIndex(c)
	if idx < 0 {
		var zero K
		return zero
	}
	return c.keys[idx].key
}
