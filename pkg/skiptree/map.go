package skiptree

import "sync/atomic"

// defaultBranching is the target average node length B used throughout
// this package: leaves and routers are built to hold roughly this many
// entries, and the level generator's success probability is 1/B.
const defaultBranching = 32

// Options configures a Map at construction time.
type Options[K any, V any] struct {
	// Comparator orders keys. Required unless the map is built with New,
	// which supplies the natural ordering for an ordered K.
	Comparator Comparator[K]

	// Branching is the target average node length B. Zero means
	// defaultBranching.
	Branching int

	// ValueProxy, when non-nil, turns the map into a set-like structure:
	// every Put/Get returns *ValueProxy in place of a per-entry value,
	// and no leaf stores a values array at all.
	ValueProxy *V
}

// Map is a lock-free concurrent ordered map from K to V. The zero value
// is not usable; construct one with New, NewWithOptions or NewSet.
//
// Every operation that mutates the map does so by CAS on a single node's
// contents slot (or, for root growth, on the map's root slot); none of
// them blocks, none of them takes a lock, and none of them is ever
// observed half-done by a concurrent reader.
type Map[K any, V any] struct {
	cmp       Comparator[K]
	branching int
	proxy     *V

	root     atomic.Pointer[headNode[K, V]]
	leafHead atomic.Pointer[node[K, V]]
	rngState atomic.Uint64

	stats mapStats
}

// New builds an empty Map using K's natural ordering.
func New[K interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}, V any]() *Map[K, V] {
	return NewWithOptions[K, V](Options[K, V]{Comparator: Natural[K]()})
}

// NewWithOptions builds an empty Map with explicit configuration.
// Options.Comparator must be non-nil.
func NewWithOptions[K any, V any](opts Options[K, V]) *Map[K, V] {
	if opts.Comparator == nil {
		panic("skiptree: NewWithOptions requires a Comparator")
	}
	b := opts.Branching
	if b <= 0 {
		b = defaultBranching
	}
	m := &Map[K, V]{
		cmp:       opts.Comparator,
		branching: b,
		proxy:     opts.ValueProxy,
	}
	m.rngState.Store(seedFor(nextInstanceSalt()))

	leaf := newNode[K, V](&contents[K, V]{keys: []entry[K]{infEntry[K]()}, values: m.leafValuesForInit()})
	m.leafHead.Store(leaf)
	router := newNode[K, V](&contents[K, V]{
		keys:     []entry[K]{infEntry[K]()},
		children: []*node[K, V]{leaf},
	})
	m.root.Store(&headNode[K, V]{node: router, height: 1})
	return m
}

// NewSet builds an empty set-like Map: V is the caller's choice of
// placeholder type, and every stored key shares a single proxy value
// with no per-entry value memory.
func NewSet[K interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}, V any](proxy V) *Map[K, V] {
	return NewWithOptions[K, V](Options[K, V]{Comparator: Natural[K](), ValueProxy: &proxy})
}

func (m *Map[K, V]) leafValuesForInit() []V {
	if m.proxy != nil {
		return nil
	}
	return make([]V, 1)
}

// Comparator returns the ordering m was constructed with.
func (m *Map[K, V]) Comparator() Comparator[K] {
	return m.cmp
}

// increaseRootHeight grows the tree until root.height >= target,
// replacing the headNode with one whose node is a fresh single-key
// (+∞) router over the old root, CAS'd into place. A lost race just
// means another goroutine grew the root first; the loop re-reads and,
// if still short, tries again.
func (m *Map[K, V]) increaseRootHeight(target int) *headNode[K, V] {
	for {
		head := m.root.Load()
		if head.height >= target {
			return head
		}
		newRouter := newNode[K, V](&contents[K, V]{
			keys:     []entry[K]{infEntry[K]()},
			children: []*node[K, V]{head.node},
		})
		newHead := &headNode[K, V]{node: newRouter, height: head.height + 1}
		if m.root.CompareAndSwap(head, newHead) {
			m.stats.splits.Add(1)
		}
	}
}
