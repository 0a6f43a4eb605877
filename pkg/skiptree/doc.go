// Package skiptree implements a lock-free concurrent ordered map.
//
// The structure is a cache-conscious variant of a skip list (a "skip
// tree"), in which each probabilistic tower is a multiway node holding a
// small ordered array of keys (and, at the leaf level, values), similar to
// a B+-tree. Updates publish whole-node replacements by compare-and-swap
// on a single atomic slot per node. Right-link pointers let readers step
// past in-progress structural changes without ever taking a lock.
//
// Reads never block and never see a torn node: every Contents value is
// immutable once installed, and readers always observe a complete,
// consistently-published snapshot. Writers retry their CAS on conflict;
// a lost race is simply evidence that some other operation made progress.
//
// Map does not support a nil key or a nil value (their absence is how
// "not present" is signaled throughout this package), and it provides no
// atomic clear, no atomic bulk put, and no linearizable size. Size and
// ContainsValue are eventually-correct scans, not snapshots.
package skiptree
