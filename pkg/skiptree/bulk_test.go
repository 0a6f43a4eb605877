package skiptree

import "testing"

func TestNewFromSortedRejectsOutOfOrder(t *testing.T) {
	entries := []Entry[int, string]{{Key: 2, Value: "b"}, {Key: 1, Value: "a"}}
	if _, err := NewFromSorted(entries, Options[int, string]{Comparator: Natural[int]()}); err != ErrIllegalState {
		t.Fatalf("NewFromSorted with out-of-order keys err = %v, want ErrIllegalState", err)
	}
}

func TestNewFromSortedRejectsDuplicateKeys(t *testing.T) {
	entries := []Entry[int, string]{{Key: 1, Value: "a"}, {Key: 1, Value: "b"}}
	if _, err := NewFromSorted(entries, Options[int, string]{Comparator: Natural[int]()}); err != ErrIllegalState {
		t.Fatalf("NewFromSorted with duplicate keys err = %v, want ErrIllegalState", err)
	}
}

func TestNewFromSortedEmpty(t *testing.T) {
	m, err := NewFromSorted([]Entry[int, string](nil), Options[int, string]{Comparator: Natural[int]()})
	if err != nil {
		t.Fatalf("NewFromSorted with no entries failed: %v", err)
	}
	if !m.IsEmpty() {
		t.Fatalf("IsEmpty() = false, want true")
	}
	if _, err := m.FirstKey(); err != ErrNoSuchElement {
		t.Fatalf("FirstKey() err = %v, want ErrNoSuchElement", err)
	}
}

func TestNewFromSortedRoundTrip(t *testing.T) {
	entries := make([]Entry[int, int], 300)
	for i := range entries {
		entries[i] = Entry[int, int]{Key: i, Value: i * 2}
	}
	m, err := NewFromSorted(entries, Options[int, int]{Comparator: Natural[int](), Branching: 8})
	if err != nil {
		t.Fatalf("NewFromSorted failed: %v", err)
	}
	for i := 0; i < 300; i++ {
		if got, found, err := m.Get(i); err != nil || !found || got != i*2 {
			t.Fatalf("Get(%d) = %d found=%v err=%v, want %d true nil", i, got, found, err, i*2)
		}
	}
	if got := m.Size(); got != 300 {
		t.Fatalf("Size() = %d, want 300", got)
	}
}
