// Package lifecycle tracks app and view visibility and keeps the autoplay
// timer stopped while the carousel cannot be seen.
package lifecycle

import (
	"fmt"
	"strings"

	"github.com/go-drift/carousel/pkg/errors"
)

// AppState represents the app-level lifecycle phase.
type AppState string

const (
	// AppStateActive indicates the app is visible and responding to user input.
	AppStateActive AppState = "active"

	// AppStateInactive indicates the app is visible but not receiving input,
	// e.g. while the app switcher or a system dialog is shown.
	AppStateInactive AppState = "inactive"

	// AppStateBackground indicates the app is not visible.
	AppStateBackground AppState = "background"
)

// ParseAppState converts a platform phase name into an AppState. It accepts
// the carousel names as well as the native engine names (resumed, paused,
// detached).
func ParseAppState(s string) (AppState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "resumed":
		return AppStateActive, nil
	case "inactive":
		return AppStateInactive, nil
	case "background", "paused", "detached":
		return AppStateBackground, nil
	default:
		return "", fmt.Errorf("unknown app state %q", s)
	}
}

// ParseEvent extracts an AppState from a platform event payload of the form
// {"state": "<name>"}. Malformed payloads are reported and return false.
func ParseEvent(source string, data any) (AppState, bool) {
	m, ok := data.(map[string]any)
	if !ok {
		reportParse(source, data)
		return "", false
	}
	raw, ok := m["state"].(string)
	if !ok {
		reportParse(source, data)
		return "", false
	}
	state, err := ParseAppState(raw)
	if err != nil {
		errors.Report(&errors.CarouselError{
			Op:     "lifecycle.parseEvent",
			Kind:   errors.KindLifecycle,
			Source: source,
			Err:    err,
		})
		return "", false
	}
	return state, true
}

func reportParse(source string, data any) {
	errors.Report(&errors.CarouselError{
		Op:     "lifecycle.parseEvent",
		Kind:   errors.KindParsing,
		Source: source,
		Err: &errors.ParseError{
			Source:   source,
			DataType: "AppState",
			Got:      data,
		},
	})
}

// ViewEvent is a view-level appearance transition.
type ViewEvent int

const (
	// WillAppear fires before the carousel's view becomes visible.
	WillAppear ViewEvent = iota
	// WillDisappear fires before the carousel's view is hidden, e.g. when
	// another screen is pushed on top.
	WillDisappear
)

// String returns a human-readable representation of the view event.
func (e ViewEvent) String() string {
	switch e {
	case WillAppear:
		return "will-appear"
	case WillDisappear:
		return "will-disappear"
	default:
		return fmt.Sprintf("ViewEvent(%d)", int(e))
	}
}
