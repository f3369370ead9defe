package lifecycle

// Pauser is the part of the autoplay timer the bridge drives.
type Pauser interface {
	Start() bool
	Stop() bool
}

// Bridge maps app and view visibility transitions onto a Pauser and
// publishes whether the scale transition should be applied.
//
// Both sources may call Start and Stop independently; the Pauser's
// idempotency is the only coordination needed. Bridge is NOT thread-safe and
// is meant to be driven from the carousel's event loop.
type Bridge struct {
	pauser       Pauser
	scaleEnabled bool
	listeners    map[int]func(bool)
	nextID       int
}

// NewBridge creates a bridge driving p. The scale effect starts enabled.
func NewBridge(p Pauser) *Bridge {
	return &Bridge{
		pauser:       p,
		scaleEnabled: true,
		listeners:    make(map[int]func(bool)),
	}
}

// AppStateChanged starts the timer when the app becomes active and stops it
// when the app goes inactive or to the background. Unknown states are
// ignored. It reports whether the timer state changed.
func (b *Bridge) AppStateChanged(state AppState) bool {
	switch state {
	case AppStateActive:
		return b.pauser.Start()
	case AppStateBackground, AppStateInactive:
		return b.pauser.Stop()
	default:
		return false
	}
}

// ViewChanged handles a view appearance transition. WillAppear starts the
// timer and enables the scale effect; WillDisappear stops the timer and
// disables the scale effect so the hidden page is not left mid-scale.
func (b *Bridge) ViewChanged(ev ViewEvent) bool {
	switch ev {
	case WillAppear:
		b.setScaleEnabled(true)
		return b.pauser.Start()
	case WillDisappear:
		b.setScaleEnabled(false)
		return b.pauser.Stop()
	default:
		return false
	}
}

// ScaleEnabled reports whether the scale transition should be rendered.
func (b *Bridge) ScaleEnabled() bool {
	return b.scaleEnabled
}

// OnScaleChanged registers a listener for scale-effect changes.
// Returns an unsubscribe function.
func (b *Bridge) OnScaleChanged(fn func(enabled bool)) func() {
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return func() {
		delete(b.listeners, id)
	}
}

func (b *Bridge) setScaleEnabled(enabled bool) {
	if b.scaleEnabled == enabled {
		return
	}
	b.scaleEnabled = enabled
	for _, fn := range b.listeners {
		fn(enabled)
	}
}
