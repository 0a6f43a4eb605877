package skiptree

// Entry is a single key/value pair produced by iteration.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// bound describes one side of a range restriction: an exclusive +∞/-∞
// bound is represented by unset (nil key pointer).
type bound[K any] struct {
	key       *K
	inclusive bool
}

// Iterator walks a Map in ascending or descending key order. It is
// weakly consistent: it reflects the state of the map at the point each
// underlying leaf was read, never throws on concurrent modification, and
// may or may not reflect puts/removes that race with the traversal.
type Iterator[K any, V any] struct {
	m          *Map[K, V]
	descending bool
	lo, hi     bound[K]

	n      *node[K, V]
	c      *contents[K, V]
	idx    int
	cur    Entry[K, V]
	curOK  bool
	buf    []Entry[K, V]
	bufPos int
}

func (m *Map[K, V]) inBounds(lo, hi bound[K], key K) bool {
	if lo.key != nil {
		c := m.cmp(key, *lo.key)
		if c < 0 || (c == 0 && !lo.inclusive) {
			return false
		}
	}
	if hi.key != nil {
		c := m.cmp(key, *hi.key)
		if c > 0 || (c == 0 && !hi.inclusive) {
			return false
		}
	}
	return true
}

// Iterator returns a weakly-consistent ascending iterator over the
// entire map.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	return m.ascendingFrom(bound[K]{}, bound[K]{})
}

func (m *Map[K, V]) ascendingFrom(lo, hi bound[K]) *Iterator[K, V] {
	it := &Iterator[K, V]{m: m, lo: lo, hi: hi}
	if lo.key != nil {
		it.n, it.c, _ = m.traverseLeaf(*lo.key)
	} else {
		it.n, it.c, _ = m.findFirst()
	}
	it.idx = 0
	return it
}

// DescendingIterator returns a snapshot-based descending iterator: since
// nodes only carry forward right-links, reverse traversal first walks
// ascending order once to materialize the sequence, then replays it
// backward.
func (m *Map[K, V]) DescendingIterator() *Iterator[K, V] {
	return m.descendingFrom(bound[K]{}, bound[K]{})
}

func (m *Map[K, V]) descendingFrom(lo, hi bound[K]) *Iterator[K, V] {
	it := &Iterator[K, V]{m: m, descending: true, lo: lo, hi: hi}
	fwd := m.ascendingFrom(lo, hi)
	for fwd.Next() {
		it.buf = append(it.buf, fwd.cur)
	}
	it.bufPos = len(it.buf)
	return it
}

// Next advances the iterator, returning false once exhausted.
func (it *Iterator[K, V]) Next() bool {
	if it.descending {
		if it.bufPos == 0 {
			it.curOK = false
			return false
		}
		it.bufPos--
		it.cur = it.buf[it.bufPos]
		it.curOK = true
		return true
	}
	for {
		if it.c == nil {
			it.curOK = false
			return false
		}
		if it.idx >= len(it.c.keys) || it.c.keys[it.idx].inf {
			if it.c.link == nil {
				it.curOK = false
				return false
			}
			it.n = it.c.link
			it.c = it.n.load()
			it.idx = 0
			continue
		}
		key := it.c.keys[it.idx].key
		if it.hi.key != nil {
			cmpHi := it.m.cmp(key, *it.hi.key)
			if cmpHi > 0 || (cmpHi == 0 && !it.hi.inclusive) {
				it.curOK = false
				return false
			}
		}
		if it.lo.key != nil {
			cmpLo := it.m.cmp(key, *it.lo.key)
			if cmpLo < 0 || (cmpLo == 0 && !it.lo.inclusive) {
				it.idx++
				continue
			}
		}
		it.cur = Entry[K, V]{Key: key, Value: it.m.valueAt(it.c, it.idx)}
		it.idx++
		it.curOK = true
		return true
	}
}

// Key returns the key of the entry most recently returned by Next.
func (it *Iterator[K, V]) Key() K {
	return it.cur.Key
}

// Value returns the value of the entry most recently returned by Next.
func (it *Iterator[K, V]) Value() V {
	return it.cur.Value
}

// Remove deletes the entry most recently returned by Next, if it is
// still present with the same value; it has no effect otherwise.
func (it *Iterator[K, V]) Remove() error {
	if !it.curOK {
		return ErrIllegalState
	}
	_, err := it.m.RemoveIfEqual(it.cur.Key, it.cur.Value)
	return err
}
