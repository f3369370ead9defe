package errors

import (
	"context"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals emitted for every report, whatever handler is installed, so
// observers hooked on capitan see errors without replacing the handler.
var (
	// ErrorReported is emitted by Report.
	ErrorReported = capitan.NewSignal(
		"carousel.error.reported",
		"Carousel error reported",
	)

	// PanicRecovered is emitted by ReportPanic and Recover.
	PanicRecovered = capitan.NewSignal(
		"carousel.panic.recovered",
		"Panic recovered on a carousel goroutine",
	)
)

// Field keys for error signals.
var (
	KeyOp    = capitan.NewStringKey("op")
	KeyKind  = capitan.NewStringKey("kind")
	KeyError = capitan.NewStringKey("error")
)

type handlerBox struct{ h ErrorHandler }

var current atomic.Pointer[handlerBox]

func init() {
	current.Store(&handlerBox{h: &LogHandler{}})
}

// Handler returns the installed error handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// SetHandler installs h and returns the previous handler. Pass nil to
// restore the default LogHandler. Tests can restore the old handler with
//
//	defer errors.SetHandler(errors.SetHandler(h))
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	return current.Swap(&handlerBox{h: h}).h
}

// Report stamps err, emits ErrorReported and passes err to the handler.
// Index errors are emitted at debug severity since the carousel recovers
// from them on its own.
func Report(err *CarouselError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	emit := capitan.Error
	if err.Kind == KindIndex {
		emit = capitan.Debug
	}
	emit(context.Background(), ErrorReported,
		KeyOp.Field(err.Op),
		KeyKind.Field(err.Kind.String()),
		KeyError.Field(errString(err.Err)),
	)
	Handler().HandleError(err)
}

// ReportPanic stamps err, emits PanicRecovered and passes err to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	capitan.Error(context.Background(), PanicRecovered,
		KeyOp.Field(err.Op),
		KeyKind.Field(KindPanic.String()),
		KeyError.Field(err.Error()),
	)
	Handler().HandlePanic(err)
}

// Recover reports a panic in progress. locate, when non-nil, is called after
// the panic to record which page was showing; it must not panic itself.
//
//	defer errors.Recover("carousel.loop", c.position)
func Recover(op string, locate func() Position) {
	r := recover()
	if r == nil {
		return
	}
	pe := &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: panicStack(),
		Timestamp:  time.Now(),
	}
	if locate != nil {
		at := locate()
		pe.At = &at
	}
	ReportPanic(pe)
}

// panicStack returns the stack of the panicking goroutine starting at the
// frame that called panic, leaving out the runtime and this package.
func panicStack() string {
	const maxDepth = 48
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	seenPanic := false
	for {
		frame, more := frames.Next()
		switch {
		case frame.Function == "runtime.gopanic":
			seenPanic = true
		case seenPanic && !strings.HasPrefix(frame.Function, "runtime."):
			sb.WriteString(frame.Function)
			sb.WriteString("\n\t")
			sb.WriteString(frame.File)
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(frame.Line))
			sb.WriteString("\n")
		}
		if !more {
			break
		}
	}
	return sb.String()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
