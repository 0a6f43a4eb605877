package skiptree

import "errors"

// Sentinel errors returned by Map and its range views. Every operation
// that rejects a call leaves the map unchanged; none of these is a sign
// of corrupted internal state, the data structure has no such state
// short of host memory failure.
var (
	// ErrNullKey is returned when a nil key is passed to an operation
	// that forbids one. There is no designated "null key"; its absence
	// is how "not present" is signaled.
	ErrNullKey = errors.New("skiptree: nil key")

	// ErrNullValue is returned when a nil value is passed to an
	// operation that forbids one, for the same reason as ErrNullKey.
	ErrNullValue = errors.New("skiptree: nil value")

	// ErrOutOfRange is returned by a range view's mutating operations
	// when the key falls outside the view's bounds.
	ErrOutOfRange = errors.New("skiptree: key out of range")

	// ErrIllegalBounds is returned when a range view is constructed with
	// lo > hi, or re-subviewed to widen its existing bounds.
	ErrIllegalBounds = errors.New("skiptree: illegal range bounds")

	// ErrNoSuchElement is returned by FirstKey/LastKey/FirstEntry/
	// LastEntry when the map (or view) is empty.
	ErrNoSuchElement = errors.New("skiptree: no such element")

	// ErrIllegalState is returned by an iterator's Remove when there is
	// no current entry (before the first call to Next, or after Next has
	// returned false), and by NewFromSorted when its entries are not in
	// strictly ascending key order.
	ErrIllegalState = errors.New("skiptree: illegal state")
)
