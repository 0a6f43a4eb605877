package skiptree

// search performs an in-node binary search for key among items, returning
// the index of a matching element, or -(insertionPoint+1) if key is
// absent. The rightmost +∞ sentinel, when present, is excluded from the
// search range: a real key is never equal to it, and it never needs to
// be the insertion point's target.
func search[K any](items []entry[K], cmp Comparator[K], key K) int {
	hi := len(items) - 1
	if hi >= 0 && items[hi].inf {
		hi--
	}
	lo := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		c := cmp(key, items[mid].key)
		switch {
		case c == 0:
			return mid
		case c < 0:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return -(lo + 1)
}

// locate resolves key against a router's or leaf's key array into a
// routing/chase index: a non-negative idx to use (descend into
// children[idx], or treat as the leaf match/insertion index), and
// pastEnd true when key lies strictly to the right of everything
// currently stored here, meaning the caller must follow the link to
// keep searching, rather than index into this node at all.
func locate[K any](keys []entry[K], cmp Comparator[K], key K) (idx int, pastEnd bool) {
	i := search(keys, cmp, key)
	if i >= 0 {
		return i, false
	}
	pos := -(i) - 1
	if pos >= len(keys) {
		return pos, true
	}
	return pos, false
}
