package skiptree

import (
	"sync"
	"sync/atomic"
	"testing"
)

// TestConcurrentDisjointInserts covers concurrent scenario 1: N threads
// each insert a disjoint range of keys; after join, size is correct and
// ascending iteration yields the full union.
func TestConcurrentDisjointInserts(t *testing.T) {
	m := New[int, int]()
	const workers = 8
	const perWorker = 10000

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			base := w * perWorker
			for i := 0; i < perWorker; i++ {
				key := base + i
				if _, _, err := m.Put(key, key); err != nil {
					t.Errorf("worker %d: Put(%d) failed: %v", w, key, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got, want := m.Size(), workers*perWorker; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}

	prev := -1
	count := 0
	it := m.Iterator()
	for it.Next() {
		if it.Key() <= prev {
			t.Fatalf("iteration not ascending at key %d after %d", it.Key(), prev)
		}
		if it.Value() != it.Key() {
			t.Fatalf("key %d has value %d, want matching", it.Key(), it.Value())
		}
		prev = it.Key()
		count++
	}
	if count != workers*perWorker {
		t.Fatalf("iterated %d entries, want %d", count, workers*perWorker)
	}
}

// TestConcurrentInsertAndRemoveSameRange covers concurrent scenario 2:
// half the threads insert, half remove, over the same key range; every
// surviving key reflects its last writer, and Get never observes a
// partial or corrupted state.
func TestConcurrentInsertAndRemoveSameRange(t *testing.T) {
	m := New[int, int]()
	const keyRange = 2000
	const workers = 8

	var wg sync.WaitGroup
	var badReads int32
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			if w%2 == 0 {
				for i := 0; i < keyRange; i++ {
					m.Put(i, i)
				}
			} else {
				for i := 0; i < keyRange; i++ {
					m.Remove(i)
				}
			}
		}(w)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			for i := 0; i < keyRange; i++ {
				if v, found, err := m.Get(i); err != nil {
					atomic.AddInt32(&badReads, 1)
				} else if found && v != i {
					atomic.AddInt32(&badReads, 1)
				}
			}
		}
	}()

	wg.Wait()
	close(done)

	if badReads != 0 {
		t.Fatalf("observed %d bad reads during concurrent insert/remove", badReads)
	}
	for i := 0; i < keyRange; i++ {
		if v, found, err := m.Get(i); err != nil || (found && v != i) {
			t.Fatalf("Get(%d) = %d found=%v err=%v after join, want absent or matching value", i, v, found, err)
		}
	}
}

// TestConcurrentReplaceIsSerializable covers concurrent scenario 3: N
// threads racing replace(k, old, new) on a shared small key set; after
// the race every key must still be present.
func TestConcurrentReplaceIsSerializable(t *testing.T) {
	m := New[int, int]()
	const keys = 8
	const workers = 8
	for k := 0; k < keys; k++ {
		m.Put(k, 0)
	}

	var wg sync.WaitGroup
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for attempt := 0; attempt < 100; attempt++ {
				for k := 0; k < keys; k++ {
					cur, _, err := m.Get(k)
					if err != nil {
						continue
					}
					m.ReplaceIfEqual(k, cur, cur+w)
				}
			}
		}(w)
	}
	wg.Wait()

	for k := 0; k < keys; k++ {
		if _, found, err := m.Get(k); err != nil || !found {
			t.Fatalf("Get(%d) found=%v err=%v after concurrent replaces, want present", k, found, err)
		}
	}
}

// TestConcurrentLongLivedIterator covers concurrent scenario 4: one
// iterator runs start-to-finish while other goroutines mutate the map;
// it must never return a duplicate key and must return at least one
// entry.
func TestConcurrentLongLivedIterator(t *testing.T) {
	m := New[int, int]()
	const initial = 5000
	for i := 0; i < initial; i++ {
		m.Put(i, i)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			next := initial + w
			for {
				select {
				case <-stop:
					return
				default:
				}
				m.Put(next, next)
				next += 4
				m.Remove(next - 4*4)
			}
		}(w)
	}

	seen := make(map[int]bool)
	it := m.Iterator()
	for it.Next() {
		if seen[it.Key()] {
			t.Fatalf("iterator returned duplicate key %d", it.Key())
		}
		seen[it.Key()] = true
	}

	close(stop)
	wg.Wait()

	if len(seen) == 0 {
		t.Fatalf("iterator produced no entries at all")
	}
}
