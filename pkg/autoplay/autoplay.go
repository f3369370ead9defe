// Package autoplay provides the periodic timer that advances a carousel.
//
// A [Timer] owns at most one live ticker. Start and Stop are idempotent:
// starting a running timer or stopping a stopped one does nothing, which lets
// several independent sources (drag detection, app lifecycle, view
// appearance) drive the same timer without coordinating.
package autoplay

import (
	"time"

	"github.com/zoobzio/clockz"
)

// DefaultInterval is the time each page stays on screen before advancing.
const DefaultInterval = 3 * time.Second

// Timer is a cancellable periodic timer.
//
// Timer is NOT thread-safe. It is owned by the event loop that reads C.
type Timer struct {
	interval time.Duration
	clock    clockz.Clock
	ticker   clockz.Ticker
}

// New creates a stopped timer. Non-positive intervals fall back to
// DefaultInterval; a nil clock uses clockz.RealClock.
func New(interval time.Duration, clock clockz.Clock) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clock == nil {
		clock = clockz.RealClock
	}
	return &Timer{interval: interval, clock: clock}
}

// Start creates the ticker if none is live. It reports whether the timer
// was stopped before the call.
func (t *Timer) Start() bool {
	if t.ticker != nil {
		return false
	}
	t.ticker = t.clock.NewTicker(t.interval)
	return true
}

// Stop cancels the live ticker, if any. It reports whether the timer was
// running before the call. No tick from the cancelled ticker is observed
// through C after Stop returns.
func (t *Timer) Stop() bool {
	if t.ticker == nil {
		return false
	}
	t.ticker.Stop()
	t.ticker = nil
	return true
}

// Running reports whether a ticker is live.
func (t *Timer) Running() bool {
	return t.ticker != nil
}

// C returns the tick channel of the live ticker, or nil while stopped.
// A nil channel blocks forever in a select, so callers re-read C on every
// loop iteration.
func (t *Timer) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C()
}

// Interval returns the tick period.
func (t *Timer) Interval() time.Duration {
	return t.interval
}
