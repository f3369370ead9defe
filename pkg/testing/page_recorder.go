package testing

import (
	"sync"

	"github.com/go-drift/carousel/pkg/loop"
)

// PageRecorder is a carousel.PageView that records every index change.
// All methods are safe for concurrent use.
type PageRecorder struct {
	mu    sync.Mutex
	moves []loop.Move
}

// NewPageRecorder returns an empty recorder.
func NewPageRecorder() *PageRecorder {
	return &PageRecorder{}
}

// SetIndex records a move.
func (r *PageRecorder) SetIndex(index int, animated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moves = append(r.moves, loop.Move{Index: index, Animated: animated})
}

// Moves returns a copy of the recorded moves in order.
func (r *PageRecorder) Moves() []loop.Move {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]loop.Move, len(r.moves))
	copy(out, r.moves)
	return out
}

// Last returns the most recent move, or the zero Move if none.
func (r *PageRecorder) Last() loop.Move {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.moves) == 0 {
		return loop.Move{}
	}
	return r.moves[len(r.moves)-1]
}

// Len returns the number of recorded moves.
func (r *PageRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.moves)
}

// Reset discards recorded moves.
func (r *PageRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moves = nil
}
