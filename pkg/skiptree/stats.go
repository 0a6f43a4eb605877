package skiptree

import "sync/atomic"

// mapStats tracks atomic, best-effort counters for introspection. None
// of these fields is linearizable with respect to the map's actual
// contents: like Size, they are an eventually-correct view, useful for
// monitoring and tests, never for correctness decisions.
type mapStats struct {
	puts    atomic.Int64
	gets    atomic.Int64
	removes atomic.Int64
	splits  atomic.Int64
	cleans  atomic.Int64
}

// Stats is a point-in-time snapshot of a Map's operation counters.
type Stats struct {
	Puts    int64
	Gets    int64
	Removes int64
	Splits  int64
	Cleans  int64
}

// Stats returns a snapshot of m's best-effort operation counters.
func (m *Map[K, V]) Stats() Stats {
	return Stats{
		Puts:    m.stats.puts.Load(),
		Gets:    m.stats.gets.Load(),
		Removes: m.stats.removes.Load(),
		Splits:  m.stats.splits.Load(),
		Cleans:  m.stats.cleans.Load(),
	}
}
