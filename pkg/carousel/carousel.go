// Package carousel implements an auto-advancing, infinitely looping page
// carousel.
//
// A Carousel owns the selected page index, the autoplay timer and the settle
// timer that corrects padding slots. It does not draw anything: the host
// supplies a [PageView] that performs index changes and reports user input
// through the Carousel's input methods.
//
// # Execution model
//
// All state lives on a single event loop started with [Carousel.Run]. The
// input methods (PageChanged, OffsetChanged, AppStateChanged,
// ViewWillAppear, ViewWillDisappear) are safe to call from any goroutine;
// they queue the event and return. Up to 64 inputs may be queued before Run
// starts; further inputs are dropped and reported as lifecycle errors. Once
// Run is serving, a caller waits for room in the queue. Timer ticks and settle corrections are
// delivered on the same loop, so events are processed strictly in arrival
// order and no further tick is handled once the timer has been stopped.
//
// # Basic Usage
//
//	c, err := carousel.New(banners, renderBanner,
//	    carousel.WithPageView(pager),
//	    carousel.WithInterval(5*time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//	go c.Run(ctx)
//	c.ViewWillAppear()
//
//	// From the host's page container callbacks:
//	pager.OnPageChanged = c.PageChanged
//	pager.OnOffsetChanged = c.OffsetChanged
package carousel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/carousel/pkg/autoplay"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/interaction"
	"github.com/go-drift/carousel/pkg/lifecycle"
	"github.com/go-drift/carousel/pkg/loop"
	pkgerrors "github.com/pkg/errors"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// PageView is the page container the carousel drives. SetIndex is called on
// the carousel's event loop; animated is false for silent corrections that
// must not be visible as a move.
type PageView interface {
	SetIndex(index int, animated bool)
}

// PageViewFunc adapts a function to PageView.
type PageViewFunc func(index int, animated bool)

// SetIndex calls f(index, animated).
func (f PageViewFunc) SetIndex(index int, animated bool) { f(index, animated) }

// Carousel is an auto-advancing looping carousel over items of type T whose
// pages render to R.
type Carousel[T any, R any] struct {
	cfg      Config
	clock    clockz.Clock
	view     PageView
	seq      loop.Sequence[T]
	contents []R

	// Owned by the event loop.
	remap    *loop.Remapper[T]
	timer    *autoplay.Timer
	observer *interaction.Observer
	bridge   *lifecycle.Bridge
	settle   clockz.Timer
	pending  *loop.Correction
	offset   float64
	scale    bool
	ctx      context.Context

	inbox   chan func()
	done    chan struct{}
	started atomic.Bool

	mu        sync.RWMutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// New creates a carousel over items. render is called once per padded page
// to build the page content. The carousel is idle until Run is called.
func New[T any, R any](items []T, render func(T) R, opts ...Option) (*Carousel[T, R], error) {
	if render == nil {
		return nil, ErrNilRender
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Carousel[T, R]{
		cfg:       o.cfg,
		clock:     o.clock,
		view:      o.view,
		remap:     loop.NewRemapper(items),
		ctx:       context.Background(),
		inbox:     make(chan func(), inboxSize),
		done:      make(chan struct{}),
		listeners: make(map[int]func(State)),
	}
	c.seq = c.remap.Sequence()
	c.contents = make([]R, c.seq.Len())
	for i := range c.contents {
		item, _ := c.seq.At(i)
		c.contents[i] = render(item)
	}

	c.timer = autoplay.New(o.cfg.Interval, o.clock)
	p := pauser{start: c.startTimer, stop: c.stopTimer}
	c.observer = interaction.NewObserver(p)
	c.bridge = lifecycle.NewBridge(p)
	c.scale = c.bridge.ScaleEnabled()
	c.bridge.OnScaleChanged(c.scaleChanged)
	c.state = c.snapshot()
	return c, nil
}

// Config returns the configuration the carousel was built with.
func (c *Carousel[T, R]) Config() Config {
	return c.cfg
}

// Sequence returns the padded item sequence.
func (c *Carousel[T, R]) Sequence() loop.Sequence[T] {
	return c.seq
}

// Run processes events until ctx is cancelled. It shows the initial page,
// then serves inputs, timer ticks and settle corrections. The autoplay timer
// is stopped on return. Run returns ctx.Err(), or ErrAlreadyRunning if
// called more than once.
func (c *Carousel[T, R]) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	c.ctx = ctx
	defer close(c.done)
	defer c.shutdown()

	c.view.SetIndex(c.remap.Index(), false)
	c.publish()

	for {
		var settleC <-chan time.Time
		if c.settle != nil {
			settleC = c.settle.C()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case fn := <-c.inbox:
			c.handle(fn)

		case <-c.timer.C():
			c.handle(c.tick)

		case <-settleC:
			c.handle(c.applyCorrection)
		}
	}
}

// PageChanged reports a user-driven page change from the page container.
func (c *Carousel[T, R]) PageChanged(index int) {
	c.post(func() {
		c.apply(index, c.remap.Observe(index))
	})
}

// OffsetChanged reports the live horizontal offset of the focused page.
// Zero means the page is at rest.
func (c *Carousel[T, R]) OffsetChanged(offset float64) {
	c.post(func() {
		c.offset = offset
		c.observer.Sample(offset)
	})
}

// AppStateChanged reports an app lifecycle transition.
func (c *Carousel[T, R]) AppStateChanged(state lifecycle.AppState) {
	c.post(func() {
		c.bridge.AppStateChanged(state)
		capitan.Emit(c.ctx, LifecycleChanged, KeyState.Field(string(state)))
	})
}

// ViewWillAppear reports that the carousel's view is about to be shown.
func (c *Carousel[T, R]) ViewWillAppear() {
	c.viewChanged(lifecycle.WillAppear)
}

// ViewWillDisappear reports that the carousel's view is about to be hidden.
func (c *Carousel[T, R]) ViewWillDisappear() {
	c.viewChanged(lifecycle.WillDisappear)
}

func (c *Carousel[T, R]) viewChanged(ev lifecycle.ViewEvent) {
	c.post(func() {
		c.bridge.ViewChanged(ev)
		capitan.Emit(c.ctx, LifecycleChanged, KeyState.Field(ev.String()))
	})
}

// Done is closed when Run returns.
func (c *Carousel[T, R]) Done() <-chan struct{} {
	return c.done
}

// post queues fn on the event loop. Events posted after Run has returned
// are dropped, as are events that find the inbox full before Run started.
func (c *Carousel[T, R]) post(fn func()) {
	if !c.started.Load() {
		select {
		case c.inbox <- fn:
		default:
			errors.Report(&errors.CarouselError{
				Op:   "carousel.post",
				Kind: errors.KindLifecycle,
				Err:  pkgerrors.Wrapf(ErrInboxFull, "%d inputs queued", cap(c.inbox)),
			})
		}
		return
	}
	select {
	case <-c.done:
	case c.inbox <- fn:
	}
}

func (c *Carousel[T, R]) handle(fn func()) {
	func() {
		defer errors.Recover("carousel.loop", c.position)
		fn()
	}()
	c.publish()
}

// position reports the page being shown, for panic reports.
func (c *Carousel[T, R]) position() errors.Position {
	return errors.Position{Index: c.remap.Index(), Slot: c.remap.Slot().String()}
}

func (c *Carousel[T, R]) tick() {
	from := c.remap.Index()
	eff := c.remap.Tick()
	c.apply(from, eff)
	capitan.Emit(c.ctx, Advanced,
		KeyIndex.Field(c.remap.Index()),
		KeyRealIndex.Field(c.remap.RealIndex()),
	)
}

// apply performs the moves of eff, which was computed while the page
// container was at index from, and schedules its correction. A new
// correction replaces any pending one; a pending correction that is not
// replaced stays scheduled and is re-validated when it fires.
func (c *Carousel[T, R]) apply(from int, eff loop.Effect) {
	for _, mv := range eff.Moves {
		c.view.SetIndex(mv.Index, mv.Animated)
	}
	if eff.Guarded && len(eff.Moves) > 0 {
		to := eff.Moves[len(eff.Moves)-1].Index
		capitan.Emit(c.ctx, Guarded, KeyIndex.Field(from), KeyTarget.Field(to))
		errors.Report(&errors.CarouselError{
			Op:   "carousel.guard",
			Kind: errors.KindIndex,
			Err:  pkgerrors.Wrapf(ErrIndexOutOfRange, "index %d of %d moved to %d", from, c.seq.Len(), to),
		})
	}
	if eff.Correction != nil {
		c.schedule(*eff.Correction)
	}
}

func (c *Carousel[T, R]) schedule(corr loop.Correction) {
	c.cancelSettle()
	c.pending = &corr
	c.settle = c.clock.NewTimer(c.cfg.SettleDelay)
}

func (c *Carousel[T, R]) applyCorrection() {
	corr := c.pending
	c.settle = nil
	c.pending = nil
	if corr == nil {
		return
	}
	mv, ok := c.remap.Apply(*corr)
	if !ok {
		return
	}
	c.view.SetIndex(mv.Index, mv.Animated)
	capitan.Emit(c.ctx, Corrected,
		KeyIndex.Field(corr.Expect),
		KeyTarget.Field(mv.Index),
	)
}

func (c *Carousel[T, R]) cancelSettle() {
	if c.settle != nil {
		c.settle.Stop()
		c.settle = nil
	}
	c.pending = nil
}

func (c *Carousel[T, R]) scaleChanged(enabled bool) {
	c.scale = enabled
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	capitan.Emit(c.ctx, ScaleChanged, KeyState.Field(state))
}

func (c *Carousel[T, R]) startTimer() bool {
	if !c.timer.Start() {
		return false
	}
	capitan.Emit(c.ctx, TimerStarted, KeyInterval.Field(c.timer.Interval()))
	return true
}

func (c *Carousel[T, R]) stopTimer() bool {
	if !c.timer.Stop() {
		return false
	}
	capitan.Emit(c.ctx, TimerStopped, KeyIndex.Field(c.remap.Index()))
	return true
}

func (c *Carousel[T, R]) shutdown() {
	c.timer.Stop()
	c.cancelSettle()
	c.publish()
}

// pauser adapts the carousel's signalling start/stop to the interfaces the
// interaction observer and lifecycle bridge drive.
type pauser struct {
	start func() bool
	stop  func() bool
}

func (p pauser) Start() bool { return p.start() }
func (p pauser) Stop() bool  { return p.stop() }
