package skiptree

// Remove deletes key unconditionally, returning its prior value.
func (m *Map[K, V]) Remove(key K) (previous V, removed bool, err error) {
	return m.doRemove(key, nil)
}

// RemoveIfEqual deletes key only if its current value equals value,
// leaving the map unchanged otherwise.
func (m *Map[K, V]) RemoveIfEqual(key K, value V) (removed bool, err error) {
	_, removed, err = m.doRemove(key, &value)
	return removed, err
}

// doRemove walks to key's leaf, and if present (and, when expected is
// non-nil, equal to *expected) CASes in a new contents with that key
// (and, at router levels, its child) removed. It retries via moveForward
// on CAS conflict.
func (m *Map[K, V]) doRemove(key K, expected *V) (V, bool, error) {
	var zero V
	if isNilArg(key) {
		return zero, false, ErrNullKey
	}
	n, c, idx := m.traverseLeaf(key)
	for {
		if idx < 0 {
			return zero, false, nil
		}
		old := m.valueAt(c, idx)
		if expected != nil && !valuesEqual(old, *expected) {
			return old, false, nil
		}
		newKeys := removeEntryAt(c.keys, idx)
		var newValues []V
		if m.proxy == nil {
			newValues = removeValueAt(c.values, idx)
		}
		nc := &contents[K, V]{keys: newKeys, values: newValues, link: c.link}
		if n.cas(c, nc) {
			m.stats.removes.Add(1)
			return old, true, nil
		}
		n, c = m.moveForward(n, key)
		idx = search(c.keys, m.cmp, key)
	}
}

// Replace overwrites key's value unconditionally, if key is present.
func (m *Map[K, V]) Replace(key K, newValue V) (previous V, replaced bool, err error) {
	return m.doReplace(key, nil, newValue)
}

// ReplaceIfEqual overwrites key's value with newValue only if its current
// value equals oldValue.
func (m *Map[K, V]) ReplaceIfEqual(key K, oldValue, newValue V) (replaced bool, err error) {
	_, replaced, err = m.doReplace(key, &oldValue, newValue)
	return replaced, err
}

func (m *Map[K, V]) doReplace(key K, expected *V, newValue V) (V, bool, error) {
	var zero V
	if isNilArg(key) {
		return zero, false, ErrNullKey
	}
	if isNilArg(newValue) {
		return zero, false, ErrNullValue
	}
	n, c, idx := m.traverseLeaf(key)
	for {
		if idx < 0 {
			return zero, false, nil
		}
		old := m.valueAt(c, idx)
		if expected != nil && !valuesEqual(old, *expected) {
			return old, false, nil
		}
		nc := m.withReplacedValue(c, idx, newValue)
		if nc == c || n.cas(c, nc) {
			return old, true, nil
		}
		n, c = m.moveForward(n, key)
		idx = search(c.keys, m.cmp, key)
	}
}
