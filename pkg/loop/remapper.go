package loop

// Move is a page change the page view must perform.
type Move struct {
	// Index is the padded index to show.
	Index int
	// Animated is true for navigational moves (ticks, guards) and false for
	// silent position corrections.
	Animated bool
}

// Correction is a deferred, silent jump from a padding slot to the real page
// it duplicates. It is keyed by the index it expects to find when it fires.
type Correction struct {
	// Expect is the padding index that was observed when the correction was
	// scheduled.
	Expect int
	// Target is the absolute real index to jump to.
	Target int
}

// Effect is the outcome of a remapper transition.
type Effect struct {
	// Moves are the page changes to perform now, in order.
	Moves []Move
	// Correction, when non-nil, must be applied with [Remapper.Apply] once
	// the page has settled.
	Correction *Correction
	// Guarded is true when the observed index was out of range and was moved
	// back.
	Guarded bool
}

// Empty reports whether the effect asks for nothing.
func (e Effect) Empty() bool {
	return len(e.Moves) == 0 && e.Correction == nil
}

// Remapper tracks the selected padded index and decides how ticks and
// external page changes move it.
//
// Remapper is NOT thread-safe. All calls must come from one execution
// context; the carousel package serializes them on its event loop.
type Remapper[T any] struct {
	seq   Sequence[T]
	index int
}

// NewRemapper creates a remapper over the padded form of items, starting at
// the first real item.
func NewRemapper[T any](items []T) *Remapper[T] {
	seq := Pad(items)
	return &Remapper[T]{seq: seq, index: seq.First()}
}

// Sequence returns the padded sequence.
func (r *Remapper[T]) Sequence() Sequence[T] { return r.seq }

// Index returns the selected padded index. It may transiently be a padding
// slot while a correction is pending.
func (r *Remapper[T]) Index() int { return r.index }

// Slot classifies the selected index.
func (r *Remapper[T]) Slot() Slot { return r.seq.Slot(r.index) }

// Current returns the item displayed at the selected index.
func (r *Remapper[T]) Current() (T, bool) { return r.seq.At(r.index) }

// RealIndex returns the caller-list index of the item being shown, always in
// [0, n-1]. It returns 0 when looping is disabled.
func (r *Remapper[T]) RealIndex() int {
	if real := r.seq.Real(r.index); real >= 0 {
		return real
	}
	return 0
}

// Tick advances the selection by one page, animated.
//
// A tick that arrives while the selection still sits on a padding slot
// (inside the settle window) first applies the correction silently, so the
// advance never runs past the end of the sequence.
func (r *Remapper[T]) Tick() Effect {
	if !r.seq.Looping() {
		// The advance would leave the only valid index; the guard keeps it
		// in place.
		return Effect{}
	}
	var eff Effect
	if r.Slot().IsPadding() {
		target := r.seq.Resolve(r.index)
		r.index = target
		eff.Moves = append(eff.Moves, Move{Index: target, Animated: false})
	}
	r.index++
	eff.Moves = append(eff.Moves, Move{Index: r.index, Animated: true})
	eff.Correction = r.pending()
	return eff
}

// Observe records an external index change reported by the page view, such
// as a swipe. Out-of-range indices are guarded back into range with an
// animated move. Landing on a padding slot returns a correction to apply once
// the page has settled.
func (r *Remapper[T]) Observe(i int) Effect {
	if mv, ok := r.Guard(i); ok {
		r.index = mv.Index
		return Effect{Moves: []Move{mv}, Guarded: true}
	}
	if i == r.index {
		return Effect{}
	}
	r.index = i
	return Effect{Correction: r.pending()}
}

// Guard returns the animated move that brings i back into range, and false
// when i is already valid. In degenerate mode the only valid index is 0;
// otherwise negative indices go to the first real page and indices past the
// high padding slot go to the last one.
func (r *Remapper[T]) Guard(i int) (Move, bool) {
	if r.seq.Slot(i) != SlotOutOfRange {
		return Move{}, false
	}
	target := r.seq.First()
	if r.seq.Looping() && i > 0 {
		target = r.seq.Last()
	}
	return Move{Index: target, Animated: true}, true
}

// Apply performs a pending correction. The correction only fires when the
// selection still equals the index it was scheduled for, so a newer page
// change always wins. It returns false for stale corrections.
func (r *Remapper[T]) Apply(c Correction) (Move, bool) {
	if r.index != c.Expect || !r.seq.Slot(c.Expect).IsPadding() {
		return Move{}, false
	}
	r.index = c.Target
	return Move{Index: c.Target, Animated: false}, true
}

func (r *Remapper[T]) pending() *Correction {
	if !r.Slot().IsPadding() {
		return nil
	}
	return &Correction{Expect: r.index, Target: r.seq.Resolve(r.index)}
}
