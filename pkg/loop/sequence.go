// Package loop turns a finite list of items into a sequence that can be paged
// through forever.
//
// A non-empty list L of length n is padded to [L[n-1]] + L + [L[0]]. The page
// at index 0 (the low padding slot) looks like the last item and the page at
// index n+1 (the high padding slot) looks like the first one, so swiping past
// either end shows the expected neighbour. Once the page settles on a padding
// slot the [Remapper] asks for a silent jump to the real item it duplicates.
//
// An empty list produces an empty sequence with looping disabled.
package loop

import "fmt"

// Slot classifies a padded index.
type Slot int

const (
	// SlotReal is a page that shows a real item from the caller's list.
	SlotReal Slot = iota
	// SlotPadLow is index 0, the duplicate of the last real item.
	SlotPadLow
	// SlotPadHigh is index n+1, the duplicate of the first real item.
	SlotPadHigh
	// SlotOutOfRange is any index outside the padded sequence.
	SlotOutOfRange
)

// String returns a human-readable representation of the slot.
func (s Slot) String() string {
	switch s {
	case SlotReal:
		return "real"
	case SlotPadLow:
		return "pad-low"
	case SlotPadHigh:
		return "pad-high"
	case SlotOutOfRange:
		return "out-of-range"
	default:
		return fmt.Sprintf("Slot(%d)", int(s))
	}
}

// IsPadding reports whether the slot is one of the two duplicates.
func (s Slot) IsPadding() bool {
	return s == SlotPadLow || s == SlotPadHigh
}

// Sequence is an immutable padded view over the caller's items.
// Identity is positional: equal items at different indices stay distinct.
type Sequence[T any] struct {
	padded []T
	n      int
}

// Pad builds the padded sequence for items. The input slice is copied.
func Pad[T any](items []T) Sequence[T] {
	n := len(items)
	if n == 0 {
		return Sequence[T]{}
	}
	padded := make([]T, 0, n+2)
	padded = append(padded, items[n-1])
	padded = append(padded, items...)
	padded = append(padded, items[0])
	return Sequence[T]{padded: padded, n: n}
}

// Len returns the padded length: n+2, or 0 for an empty list.
func (s Sequence[T]) Len() int { return len(s.padded) }

// RealLen returns the number of caller items.
func (s Sequence[T]) RealLen() int { return s.n }

// Looping reports whether the sequence wraps around. It is false only when
// the caller supplied no items.
func (s Sequence[T]) Looping() bool { return s.n > 0 }

// At returns the item displayed at padded index i.
func (s Sequence[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(s.padded) {
		var zero T
		return zero, false
	}
	return s.padded[i], true
}

// Items returns a copy of the padded items.
func (s Sequence[T]) Items() []T {
	out := make([]T, len(s.padded))
	copy(out, s.padded)
	return out
}

// First returns the padded index of the first real item (1), or 0 when
// looping is disabled.
func (s Sequence[T]) First() int {
	if !s.Looping() {
		return 0
	}
	return 1
}

// Last returns the padded index of the last real item (n), or 0 when
// looping is disabled.
func (s Sequence[T]) Last() int {
	return s.n
}

// Slot classifies padded index i.
func (s Sequence[T]) Slot(i int) Slot {
	if !s.Looping() {
		if i == 0 {
			return SlotReal
		}
		return SlotOutOfRange
	}
	switch {
	case i < 0 || i > s.n+1:
		return SlotOutOfRange
	case i == 0:
		return SlotPadLow
	case i == s.n+1:
		return SlotPadHigh
	default:
		return SlotReal
	}
}

// IsPadding reports whether i is one of the two duplicate slots.
func (s Sequence[T]) IsPadding(i int) bool {
	return s.Slot(i).IsPadding()
}

// Resolve returns the padded index of the real page that i stands for:
// padding slots resolve to the item they duplicate, real slots to
// themselves. It returns -1 for out-of-range indices.
func (s Sequence[T]) Resolve(i int) int {
	switch s.Slot(i) {
	case SlotPadLow:
		return s.Last()
	case SlotPadHigh:
		return s.First()
	case SlotReal:
		return i
	default:
		return -1
	}
}

// Real maps padded index i to an index into the caller's list, in [0, n-1].
// It returns -1 for out-of-range indices and when looping is disabled.
func (s Sequence[T]) Real(i int) int {
	if !s.Looping() {
		return -1
	}
	r := s.Resolve(i)
	if r < 0 {
		return -1
	}
	return r - 1
}
