// Package errors provides structured error reporting for the carousel
// packages and the carousel CLI.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid or unreadable configuration.
	KindConfig
	// KindLifecycle indicates a malformed lifecycle notification.
	KindLifecycle
	// KindParsing indicates an event or file parsing failure.
	KindParsing
	// KindIndex indicates a page index that had to be guarded back into range.
	KindIndex
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindLifecycle:
		return "lifecycle"
	case KindParsing:
		return "parsing"
	case KindIndex:
		return "index"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// CarouselError represents a structured error raised by a carousel component.
type CarouselError struct {
	// Op is the operation that failed (e.g., "lifecycle.parseState").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Source names the input that produced the error, if applicable
	// (a config path, a lifecycle channel).
	Source string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *CarouselError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s [%s] source=%s: %v", e.Op, e.Kind, e.Source, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CarouselError) Unwrap() error {
	return e.Err
}

// Position is the page a carousel was showing when something went wrong.
type Position struct {
	// Index is the padded page index.
	Index int
	// Slot names the kind of slot Index is (real, pad-low, ...).
	Slot string
}

// String formats the position as "index=<i> slot=<slot>".
func (p Position) String() string {
	return fmt.Sprintf("index=%d slot=%s", p.Index, p.Slot)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "carousel.loop").
	Op string
	// Value is the value passed to panic().
	Value any
	// At is the carousel position when the panic happened, nil when the
	// panicking code was not bound to a carousel.
	At *Position
	// StackTrace contains the call stack from the panicking frame.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	msg := "panic"
	if e.Op != "" {
		msg += " in " + e.Op
	}
	if e.At != nil {
		msg += " at " + e.At.String()
	}
	return fmt.Sprintf("%s: %v", msg, e.Value)
}

// ParseError represents a failure to parse an incoming value.
type ParseError struct {
	// Source is where the value came from.
	Source string
	// DataType is the expected type name.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from %s: got %T(%v)", e.DataType, e.Source, e.Got, e.Got)
}

// ErrorHandler receives errors reported by carousel components.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *CarouselError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
