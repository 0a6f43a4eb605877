package skiptree

// RangeView is a bounded, live adapter over a Map: reads, writes and
// iteration all pass through to the backing map but are rejected or
// clipped at the view's bounds. Constructing a view over a view narrows
// those bounds; it never widens them.
type RangeView[K any, V any] struct {
	m      *Map[K, V]
	lo, hi bound[K]
}

// SubMap returns a view restricted to [lo, hi) or, with the inclusive
// flags set, any combination of open/closed endpoints.
func (m *Map[K, V]) SubMap(lo K, loInclusive bool, hi K, hiInclusive bool) (*RangeView[K, V], error) {
	if isNilArg(lo) || isNilArg(hi) {
		return nil, ErrNullKey
	}
	if m.cmp(lo, hi) > 0 {
		return nil, ErrIllegalBounds
	}
	return &RangeView[K, V]{m: m, lo: bound[K]{&lo, loInclusive}, hi: bound[K]{&hi, hiInclusive}}, nil
}

// HeadMap returns a view of all entries less than (or, if inclusive,
// less than or equal to) hi.
func (m *Map[K, V]) HeadMap(hi K, inclusive bool) (*RangeView[K, V], error) {
	if isNilArg(hi) {
		return nil, ErrNullKey
	}
	return &RangeView[K, V]{m: m, hi: bound[K]{&hi, inclusive}}, nil
}

// TailMap returns a view of all entries greater than (or, if inclusive,
// greater than or equal to) lo.
func (m *Map[K, V]) TailMap(lo K, inclusive bool) (*RangeView[K, V], error) {
	if isNilArg(lo) {
		return nil, ErrNullKey
	}
	return &RangeView[K, V]{m: m, lo: bound[K]{&lo, inclusive}}, nil
}

func (r *RangeView[K, V]) inRange(key K) bool {
	return r.m.inBounds(r.lo, r.hi, key)
}

// SubMap narrows this view further. It returns ErrIllegalBounds if
// either endpoint would widen the view's existing bounds, rather than
// silently clamping them.
func (r *RangeView[K, V]) SubMap(lo K, loInclusive bool, hi K, hiInclusive bool) (*RangeView[K, V], error) {
	if isNilArg(lo) || isNilArg(hi) {
		return nil, ErrNullKey
	}
	if r.m.cmp(lo, hi) > 0 {
		return nil, ErrIllegalBounds
	}
	nl := bound[K]{&lo, loInclusive}
	nh := bound[K]{&hi, hiInclusive}
	if widensLower(r.lo, nl, r.m.cmp) || widensUpper(r.hi, nh, r.m.cmp) {
		return nil, ErrIllegalBounds
	}
	return &RangeView[K, V]{m: r.m, lo: nl, hi: nh}, nil
}

// widensLower reports whether new's lower bound admits a key that cur's
// does not: new has no lower bound while cur does, new's key is less
// than cur's, or they're equal but new includes it while cur excludes
// it.
func widensLower[K any](cur, next bound[K], cmp Comparator[K]) bool {
	if cur.key == nil {
		return false
	}
	if next.key == nil {
		return true
	}
	c := cmp(*next.key, *cur.key)
	if c < 0 {
		return true
	}
	return c == 0 && next.inclusive && !cur.inclusive
}

// widensUpper is widensLower's mirror image for the upper bound.
func widensUpper[K any](cur, next bound[K], cmp Comparator[K]) bool {
	if cur.key == nil {
		return false
	}
	if next.key == nil {
		return true
	}
	c := cmp(*next.key, *cur.key)
	if c > 0 {
		return true
	}
	return c == 0 && next.inclusive && !cur.inclusive
}

// Get reads through to the backing map, reporting ErrOutOfRange if key
// falls outside the view's bounds.
func (r *RangeView[K, V]) Get(key K) (V, bool, error) {
	var zero V
	if isNilArg(key) {
		return zero, false, ErrNullKey
	}
	if !r.inRange(key) {
		return zero, false, ErrOutOfRange
	}
	return r.m.Get(key)
}

// Put writes through to the backing map, rejecting keys outside the
// view's bounds.
func (r *RangeView[K, V]) Put(key K, value V) (V, bool, error) {
	var zero V
	if isNilArg(key) {
		return zero, false, ErrNullKey
	}
	if !r.inRange(key) {
		return zero, false, ErrOutOfRange
	}
	return r.m.Put(key, value)
}

// Remove deletes through to the backing map, rejecting keys outside the
// view's bounds.
func (r *RangeView[K, V]) Remove(key K) (V, bool, error) {
	var zero V
	if isNilArg(key) {
		return zero, false, ErrNullKey
	}
	if !r.inRange(key) {
		return zero, false, ErrOutOfRange
	}
	return r.m.Remove(key)
}

// ContainsKey reports whether key is both present and within bounds.
func (r *RangeView[K, V]) ContainsKey(key K) (bool, error) {
	if !r.inRange(key) {
		return false, nil
	}
	return r.m.ContainsKey(key)
}

// FirstEntry returns the least entry within the view's bounds.
func (r *RangeView[K, V]) FirstEntry() (K, V, error) {
	it := r.m.ascendingFrom(r.lo, r.hi)
	if !it.Next() {
		var zk K
		var zv V
		return zk, zv, ErrNoSuchElement
	}
	return it.Key(), it.Value(), nil
}

// LastEntry returns the greatest entry within the view's bounds.
func (r *RangeView[K, V]) LastEntry() (K, V, error) {
	it := r.m.descendingFrom(r.lo, r.hi)
	if !it.Next() {
		var zk K
		var zv V
		return zk, zv, ErrNoSuchElement
	}
	return it.Key(), it.Value(), nil
}

// Size counts entries within the view's bounds by linear scan, the same
// eventually-correct contract as Map.Size.
func (r *RangeView[K, V]) Size() int {
	n := 0
	it := r.m.ascendingFrom(r.lo, r.hi)
	for it.Next() {
		n++
	}
	return n
}

// IsEmpty reports whether the view currently holds no entries.
func (r *RangeView[K, V]) IsEmpty() bool {
	_, _, err := r.FirstEntry()
	return err == ErrNoSuchElement
}

// Iterator returns a weakly-consistent ascending iterator bounded to
// this view.
func (r *RangeView[K, V]) Iterator() *Iterator[K, V] {
	return r.m.ascendingFrom(r.lo, r.hi)
}

// DescendingIterator returns a snapshot-based descending iterator
// bounded to this view.
func (r *RangeView[K, V]) DescendingIterator() *Iterator[K, V] {
	return r.m.descendingFrom(r.lo, r.hi)
}
