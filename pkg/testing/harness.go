package testing

import (
	"context"
	"testing"
	"time"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

// WaitTimeout bounds every WaitFor helper.
var WaitTimeout = 2 * time.Second

// Harness runs a carousel of T on a fake clock with a recording page view.
// The carousel is stopped when the test ends.
type Harness[T any] struct {
	t        testing.TB
	Clock    *clockz.FakeClock
	View     *PageRecorder
	Carousel *carousel.Carousel[T, T]
}

// NewHarness builds and starts a carousel over items. Extra options are
// applied after the harness's clock and page view, so they may override
// either.
func NewHarness[T any](t testing.TB, items []T, opts ...carousel.Option) *Harness[T] {
	t.Helper()
	clock := clockz.NewFakeClock()
	view := NewPageRecorder()

	all := append([]carousel.Option{
		carousel.WithClock(clock),
		carousel.WithPageView(view),
	}, opts...)
	c, err := carousel.New(items, func(item T) T { return item }, all...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = c.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-c.Done()
	})

	h := &Harness[T]{t: t, Clock: clock, View: view, Carousel: c}
	// Run shows the initial page before serving events.
	h.WaitFor(func(carousel.State) bool { return view.Len() > 0 }, "initial page")
	return h
}

// Appear reports that the view will appear and waits for the timer to run.
func (h *Harness[T]) Appear() {
	h.t.Helper()
	h.Carousel.ViewWillAppear()
	h.WaitRunning(true)
}

// Advance moves the fake clock forward and waits for due timers to fire.
func (h *Harness[T]) Advance(d time.Duration) {
	h.Clock.Advance(d)
	h.Clock.BlockUntilReady()
}

// Tick advances the clock by one autoplay interval.
func (h *Harness[T]) Tick() {
	h.Advance(h.Carousel.Config().Interval)
}

// Settle waits for a pending correction to be scheduled, then advances the
// clock past the settle delay.
func (h *Harness[T]) Settle() {
	h.t.Helper()
	h.WaitFor(func(s carousel.State) bool { return s.Pending }, "pending correction")
	h.Advance(h.Carousel.Config().SettleDelay)
	h.WaitFor(func(s carousel.State) bool { return !s.Pending }, "correction applied")
}

// WaitFor waits until cond holds for the published state.
func (h *Harness[T]) WaitFor(cond func(carousel.State) bool, what string) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		return cond(h.Carousel.Snapshot())
	}, WaitTimeout, time.Millisecond, "waiting for %s", what)
}

// WaitIndex waits until the selected padded index equals want.
func (h *Harness[T]) WaitIndex(want int) {
	h.t.Helper()
	h.WaitFor(func(s carousel.State) bool { return s.Index == want }, "index")
}

// WaitRunning waits until the timer state equals running.
func (h *Harness[T]) WaitRunning(running bool) {
	h.t.Helper()
	h.WaitFor(func(s carousel.State) bool { return s.Running == running }, "timer state")
}
