// Package logging configures the CLI's slog logger and routes carousel
// signals and reported errors into it.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/go-drift/carousel/pkg/carousel"
	carouselerrors "github.com/go-drift/carousel/pkg/errors"
	"github.com/pkg/errors"
	"github.com/zoobzio/capitan"
)

// Level names accepted by ParseLevel.
const (
	LevelError = "error"
	LevelWarn  = "warn"
	LevelInfo  = "info"
	LevelDebug = "debug"
)

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelError:
		return slog.LevelError, nil
	case LevelWarn, "warning":
		return slog.LevelWarn, nil
	case LevelInfo, "":
		return slog.LevelInfo, nil
	case LevelDebug:
		return slog.LevelDebug, nil
	default:
		return slog.LevelInfo, errors.Errorf("invalid log level: %s (must be error, warn, info, or debug)", level)
	}
}

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// HookSignals logs every carousel signal through logger. Timer and lifecycle
// changes are logged at info, index movement at debug.
func HookSignals(logger *slog.Logger) {
	capitan.Hook(carousel.TimerStarted, func(ctx context.Context, e *capitan.Event) {
		interval, _ := carousel.KeyInterval.From(e)
		logger.InfoContext(ctx, "autoplay started", "interval", interval)
	})
	capitan.Hook(carousel.TimerStopped, func(ctx context.Context, e *capitan.Event) {
		index, _ := carousel.KeyIndex.From(e)
		logger.InfoContext(ctx, "autoplay stopped", "index", index)
	})
	capitan.Hook(carousel.LifecycleChanged, func(ctx context.Context, e *capitan.Event) {
		state, _ := carousel.KeyState.From(e)
		logger.InfoContext(ctx, "lifecycle changed", "state", state)
	})
	capitan.Hook(carousel.ScaleChanged, func(ctx context.Context, e *capitan.Event) {
		state, _ := carousel.KeyState.From(e)
		logger.DebugContext(ctx, "scale transform", "state", state)
	})
	capitan.Hook(carousel.Advanced, func(ctx context.Context, e *capitan.Event) {
		index, _ := carousel.KeyIndex.From(e)
		realIndex, _ := carousel.KeyRealIndex.From(e)
		logger.DebugContext(ctx, "advanced", "index", index, "real_index", realIndex)
	})
	capitan.Hook(carousel.Corrected, func(ctx context.Context, e *capitan.Event) {
		index, _ := carousel.KeyIndex.From(e)
		target, _ := carousel.KeyTarget.From(e)
		logger.DebugContext(ctx, "padding corrected", "from", index, "to", target)
	})
	capitan.Hook(carousel.Guarded, func(ctx context.Context, e *capitan.Event) {
		index, _ := carousel.KeyIndex.From(e)
		target, _ := carousel.KeyTarget.From(e)
		logger.DebugContext(ctx, "index guarded", "from", index, "to", target)
	})
}

// ErrorHandler reports carousel errors and recovered panics through slog.
type ErrorHandler struct {
	Logger *slog.Logger
}

// HandleError logs err at error level, or debug for index guards which the
// carousel has already corrected.
func (h *ErrorHandler) HandleError(err *carouselerrors.CarouselError) {
	attrs := []any{"op", err.Op, "kind", err.Kind.String(), "error", err.Err}
	if err.Source != "" {
		attrs = append(attrs, "source", err.Source)
	}
	if err.Kind == carouselerrors.KindIndex {
		h.Logger.Debug("carousel error", attrs...)
		return
	}
	h.Logger.Error("carousel error", attrs...)
}

// HandlePanic logs a recovered panic with its stack trace at debug level.
func (h *ErrorHandler) HandlePanic(err *carouselerrors.PanicError) {
	attrs := []any{"op", err.Op, "value", err.Value}
	if err.At != nil {
		attrs = append(attrs, "index", err.At.Index, "slot", err.At.Slot)
	}
	h.Logger.Error("carousel panic", attrs...)
	if err.StackTrace != "" {
		h.Logger.Debug("panic stack", "op", err.Op, "stack", err.StackTrace)
	}
}
