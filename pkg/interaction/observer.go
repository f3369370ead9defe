// Package interaction turns the live horizontal offset of the focused page
// into pause and resume decisions for the autoplay timer.
package interaction

// Pauser is the part of the autoplay timer the observer drives.
// Both methods must be idempotent.
type Pauser interface {
	Start() bool
	Stop() bool
}

// Observer applies a level-triggered policy: any non-zero offset means the
// page is being dragged (or is mid-animation) and pauses the timer; an
// offset of exactly zero means the page has settled and resumes it.
//
// Repeated samples at zero call Start repeatedly; Pauser idempotency makes
// that harmless.
type Observer struct {
	pauser   Pauser
	dragging bool
}

// NewObserver creates an observer driving p.
func NewObserver(p Pauser) *Observer {
	return &Observer{pauser: p}
}

// Sample feeds one offset reading. It reports whether the call changed the
// timer state.
func (o *Observer) Sample(offset float64) bool {
	if offset != 0 {
		o.dragging = true
		return o.pauser.Stop()
	}
	o.dragging = false
	return o.pauser.Start()
}

// Dragging reports whether the last sample was non-zero.
func (o *Observer) Dragging() bool {
	return o.dragging
}
