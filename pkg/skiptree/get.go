package skiptree

// Get returns the value stored for key, if present.
func (m *Map[K, V]) Get(key K) (value V, found bool, err error) {
	var zero V
	if isNilArg(key) {
		return zero, false, ErrNullKey
	}
	m.stats.gets.Add(1)
	_, c, idx := m.traverseLeaf(key)
	if idx < 0 {
		return zero, false, nil
	}
	return m.valueAt(c, idx), true, nil
}

// ContainsKey reports whether key is present.
func (m *Map[K, V]) ContainsKey(key K) (bool, error) {
	_, found, err := m.Get(key)
	return found, err
}

// ContainsValue reports whether value appears anywhere in the map. Like
// Size, this is a linear, eventually-correct scan, not an atomic check.
func (m *Map[K, V]) ContainsValue(value V) bool {
	it := m.Iterator()
	for it.Next() {
		if valuesEqual(it.Value(), value) {
			return true
		}
	}
	return false
}

// Size walks the entire leaf level and counts live entries. It is O(n),
// not O(1): this design has no atomic or linearizable size.
func (m *Map[K, V]) Size() int {
	n := 0
	it := m.Iterator()
	for it.Next() {
		n++
	}
	return n
}

// IsEmpty reports whether the map currently has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	_, _, err := m.FirstEntry()
	return err == ErrNoSuchElement
}

// Clear empties the map by repeatedly polling the first entry. It is not
// atomic: a concurrent reader may observe a partially-cleared map.
func (m *Map[K, V]) Clear() {
	for {
		_, _, _, err := m.PollFirstEntry()
		if err == ErrNoSuchElement {
			return
		}
	}
}
