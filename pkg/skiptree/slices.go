package skiptree

func insertEntryAt[K any](s []entry[K], pos int, v entry[K]) []entry[K] {
	out := make([]entry[K], 0, len(s)+1)
	out = append(out, s[:pos]...)
	out = append(out, v)
	out = append(out, s[pos:]...)
	return out
}

func insertValueAt[V any](s []V, pos int, v V) []V {
	out := make([]V, 0, len(s)+1)
	out = append(out, s[:pos]...)
	out = append(out, v)
	out = append(out, s[pos:]...)
	return out
}

func insertNodeAt[K any, V any](s []*node[K, V], pos int, v *node[K, V]) []*node[K, V] {
	out := make([]*node[K, V], 0, len(s)+1)
	out = append(out, s[:pos]...)
	out = append(out, v)
	out = append(out, s[pos:]...)
	return out
}

func removeValueAt[V any](s []V, idx int) []V {
	if s == nil {
		return nil
	}
	out := make([]V, 0, len(s)-1)
	out = append(out, s[:idx]...)
	out = append(out, s[idx+1:]...)
	return out
}
