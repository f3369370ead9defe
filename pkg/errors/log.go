package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that writes errors to stderr, or to Out
// when set.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a CarouselError.
func (h *LogHandler) HandleError(err *CarouselError) {
	if err == nil {
		return
	}
	w := h.out()
	if !h.Verbose {
		fmt.Fprintf(w, "[carousel error] %s: %v\n", err.Op, err.Err)
		return
	}
	fmt.Fprintf(w, "[carousel error] %s [%s]", err.Op, err.Kind)
	if err.Source != "" {
		fmt.Fprintf(w, " source=%s", err.Source)
	}
	fmt.Fprintf(w, ": %v\n", err.Err)
	if err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	fmt.Fprint(w, "[carousel panic]")
	if err.Op != "" {
		fmt.Fprintf(w, " %s", err.Op)
	}
	if err.At != nil {
		fmt.Fprintf(w, " (%s)", err.At)
	}
	fmt.Fprintf(w, ": %v\n", err.Value)
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
