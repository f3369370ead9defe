package carousel

import (
	"time"

	"github.com/go-drift/carousel/pkg/transition"
	"github.com/zoobzio/clockz"
)

// inboxSize is how many inputs may queue on the event loop. Inputs posted
// before Run beyond this are dropped; after Run starts callers wait.
const inboxSize = 64

// Option configures a Carousel.
type Option func(*options)

type options struct {
	cfg   Config
	clock clockz.Clock
	view  PageView
}

func defaultOptions() options {
	return options{
		cfg:   DefaultConfig(),
		clock: clockz.RealClock,
		view:  PageViewFunc(func(int, bool) {}),
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithInterval sets the autoplay interval.
func WithInterval(d time.Duration) Option {
	return func(o *options) { o.cfg.Interval = d }
}

// WithSettleDelay sets the delay before a padding slot is corrected.
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) { o.cfg.SettleDelay = d }
}

// WithTransition sets the transition style.
func WithTransition(s transition.Style) Option {
	return func(o *options) { o.cfg.Transition = s }
}

// WithScreenWidth sets the width used to normalise page offsets.
func WithScreenWidth(w float64) Option {
	return func(o *options) { o.cfg.ScreenWidth = w }
}

// WithClock sets the time source for the autoplay and settle timers.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock(clock clockz.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithPageView sets the page container that performs index changes.
func WithPageView(v PageView) Option {
	return func(o *options) {
		if v != nil {
			o.view = v
		}
	}
}
