package arglist

import (
	"errors"

	"github.com/danmuck/lf/internal/wire"
)

// MaxArgc is the strict maximum arity (invariant A1): 16 arguments pack
// into one 64-bit type word at 4 bits per tag.
const MaxArgc = 16

var (
	// ErrOverflow is returned by Append once the list already holds
	// MaxArgc entries; the list is left unmodified.
	ErrOverflow = errors.New("arglist: at MAX_ARGC, append rejected")
	// ErrReleased is returned by Append on a list that has already been
	// consumed by Release.
	ErrReleased = errors.New("arglist: list already released")
)

// Item is one decoded (tag, value) pair. Value holds up to 64 bits;
// narrower tags are zero-extended here and re-narrowed on the wire by
// package frame.
type Item struct {
	Tag   wire.Tag
	Value uint64
}

// List is the ordered, single-consumer argument sequence (spec C2).
// Order here is invariant A2: wire order and native-call parameter order.
type List struct {
	items    []Item
	released bool
}

// New returns an empty argument list.
func New() *List {
	return &List{items: make([]Item, 0, MaxArgc)}
}

// Append adds one (value, tag) pair to the end of the list.
func (l *List) Append(value uint64, tag wire.Tag) error {
	if l.released {
		return ErrReleased
	}
	if !tag.Valid() || tag == wire.Void {
		return wire.ErrIllegalType
	}
	if len(l.items) >= MaxArgc {
		return ErrOverflow
	}
	l.items = append(l.items, Item{Tag: tag, Value: value})
	return nil
}

// Len returns the number of arguments currently held.
func (l *List) Len() int {
	return len(l.items)
}

// Iter returns the argument sequence in wire/call order. The returned
// slice is owned by the caller and safe to use after Release.
func (l *List) Iter() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Release marks the list consumed and drops its backing storage. Further
// Append calls fail with ErrReleased.
func (l *List) Release() {
	l.released = true
	l.items = nil
}
