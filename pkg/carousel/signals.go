package carousel

import "github.com/zoobzio/capitan"

// Timer signals.
var (
	// TimerStarted is emitted when the autoplay timer goes from stopped to
	// running.
	TimerStarted = capitan.NewSignal(
		"carousel.timer.started",
		"Autoplay timer started",
	)

	// TimerStopped is emitted when the autoplay timer goes from running to
	// stopped.
	TimerStopped = capitan.NewSignal(
		"carousel.timer.stopped",
		"Autoplay timer stopped",
	)
)

// Index signals.
var (
	// Advanced is emitted for every tick-driven advance.
	Advanced = capitan.NewSignal(
		"carousel.advanced",
		"Page advanced by the autoplay timer",
	)

	// Corrected is emitted when a padding slot is silently replaced by the
	// real page it duplicates.
	Corrected = capitan.NewSignal(
		"carousel.corrected",
		"Padding slot corrected to real page",
	)

	// Guarded is emitted when an out-of-range index is moved back.
	Guarded = capitan.NewSignal(
		"carousel.guarded",
		"Out-of-range index guarded",
	)
)

// Lifecycle signals.
var (
	// LifecycleChanged is emitted for every app or view lifecycle input.
	LifecycleChanged = capitan.NewSignal(
		"carousel.lifecycle.changed",
		"App or view lifecycle transition",
	)

	// ScaleChanged is emitted when the scale transform is switched on or
	// off by view appearance. KeyState is "enabled" or "disabled".
	ScaleChanged = capitan.NewSignal(
		"carousel.scale.changed",
		"Scale transform toggled",
	)
)

// Field keys for carousel events.
var (
	// KeyIndex is the padded index after the event.
	KeyIndex = capitan.NewIntKey("index")

	// KeyTarget is the padded index a correction or guard moved to.
	KeyTarget = capitan.NewIntKey("target")

	// KeyRealIndex is the caller-list index being shown.
	KeyRealIndex = capitan.NewIntKey("real_index")

	// KeyState is a lifecycle state or view event name.
	KeyState = capitan.NewStringKey("state")

	// KeyInterval is the autoplay interval.
	KeyInterval = capitan.NewDurationKey("interval")
)
