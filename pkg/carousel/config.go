package carousel

import (
	"time"

	"github.com/go-drift/carousel/pkg/autoplay"
	"github.com/go-drift/carousel/pkg/transition"
	pkgerrors "github.com/pkg/errors"
)

// Defaults for a new carousel.
const (
	DefaultSettleDelay       = 300 * time.Millisecond
	DefaultHeight            = 150.0
	DefaultHorizontalPadding = 30.0
	DefaultCornerRadius      = 10.0
	DefaultScreenWidth       = 390.0
)

// Errors reported through the errors package rather than returned.
var (
	// ErrIndexOutOfRange is reported when the page container settles on an
	// index outside the padded sequence.
	ErrIndexOutOfRange = pkgerrors.New("carousel: index out of range")
	// ErrInboxFull is reported when an input is dropped because it was
	// queued before Run with the inbox already full.
	ErrInboxFull = pkgerrors.New("carousel: input queue full before Run")
)

// Configuration errors returned by Config.Validate and New.
var (
	ErrInvalidInterval = pkgerrors.New("carousel: interval must be positive")
	ErrInvalidSettle   = pkgerrors.New("carousel: settle delay must not be negative")
	ErrInvalidLayout   = pkgerrors.New("carousel: invalid layout")
	ErrNilRender       = pkgerrors.New("carousel: render function is nil")
	ErrAlreadyRunning  = pkgerrors.New("carousel: Run called twice")
)

// Config holds the construction parameters of a carousel.
type Config struct {
	// Interval is how long each page stays on screen before the carousel
	// advances.
	Interval time.Duration
	// SettleDelay is how long a page must rest on a padding slot before the
	// silent jump to the real item.
	SettleDelay time.Duration
	// Height is the fixed height of the page container.
	Height float64
	// HorizontalPadding is the inset applied to each page's content.
	HorizontalPadding float64
	// CornerRadius is applied to each page's content.
	CornerRadius float64
	// Transition selects the offset-driven visual effect.
	Transition transition.Style
	// ScreenWidth is the width used to normalise offsets for the scale and
	// opacity effects and to position neighbouring pages.
	ScreenWidth float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Interval:          autoplay.DefaultInterval,
		SettleDelay:       DefaultSettleDelay,
		Height:            DefaultHeight,
		HorizontalPadding: DefaultHorizontalPadding,
		CornerRadius:      DefaultCornerRadius,
		Transition:        transition.Scale,
		ScreenWidth:       DefaultScreenWidth,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.Interval <= 0:
		return pkgerrors.Wrapf(ErrInvalidInterval, "got %s", c.Interval)
	case c.SettleDelay < 0:
		return pkgerrors.Wrapf(ErrInvalidSettle, "got %s", c.SettleDelay)
	case c.Height <= 0:
		return pkgerrors.Wrapf(ErrInvalidLayout, "height must be positive, got %g", c.Height)
	case c.HorizontalPadding < 0:
		return pkgerrors.Wrapf(ErrInvalidLayout, "horizontal padding must not be negative, got %g", c.HorizontalPadding)
	case c.CornerRadius < 0:
		return pkgerrors.Wrapf(ErrInvalidLayout, "corner radius must not be negative, got %g", c.CornerRadius)
	case c.ScreenWidth <= 0:
		return pkgerrors.Wrapf(ErrInvalidLayout, "screen width must be positive, got %g", c.ScreenWidth)
	}
	return nil
}
