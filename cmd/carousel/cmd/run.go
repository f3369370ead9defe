package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
	"github.com/go-drift/carousel/cmd/carousel/internal/debug"
	"github.com/go-drift/carousel/cmd/carousel/internal/logging"
	"github.com/go-drift/carousel/cmd/carousel/internal/watch"
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/lifecycle"
	"github.com/zoobzio/capitan"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run a carousel in the terminal",
		Long: `Run the carousel described by carousel.yaml, printing each page as it
is shown. Edits to carousel.yaml are picked up while running; an invalid
edit is logged and the running carousel is kept.

Lines typed on stdin drive the carousel like a user would (type "help").

Flags:
  --config DIR        Directory containing carousel.yaml (default: .)
  --log-level LEVEL   error, warn, info or debug (default: from config, info)
  --debug-addr ADDR   Serve a websocket state feed at ws://ADDR/ws`,
		Usage: "carousel run [--config DIR] [--log-level LEVEL] [--debug-addr ADDR]",
		Run:   runRun,
	})
}

func runRun(args []string) error {
	fs := newFlagSet()
	dir := fs.String("config", ".")
	levelFlag := fs.String("log-level", "")
	addrFlag := fs.String("debug-addr", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := config.Resolve(*dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *levelFlag != "" {
		res.LogLevel = *levelFlag
	}
	if *addrFlag != "" {
		res.DebugAddr = *addrFlag
	}

	level, err := logging.ParseLevel(res.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, level)
	errors.SetHandler(&logging.ErrorHandler{Logger: logger})
	defer errors.SetHandler(nil)
	logging.HookSignals(logger)
	defer capitan.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := newRunner(logger, stdout)
	if res.DebugAddr != "" {
		r.feed = debug.NewServer(logger, debug.HubConfig{})
		r.feed.OnLifecycle(r.lifecycleFrame)
		go func() {
			if err := r.feed.ListenAndServe(ctx, res.DebugAddr); err != nil {
				logger.Error("debug feed stopped", "error", err)
			}
		}()
	}

	updates, err := watch.New(res.Path).Watch(ctx)
	if err != nil {
		logger.Warn("config reload disabled", "path", res.Path, "error", err)
		updates = nil
	}

	return r.loop(ctx, res, updates, readLines(ctx, os.Stdin))
}

// runner owns the carousel session of the run command and replaces it when
// the configuration changes.
type runner struct {
	logger *slog.Logger
	out    io.Writer
	feed   *debug.Server
	app    *lifecycle.Service

	current *session
	res     *config.Resolved
}

func newRunner(logger *slog.Logger, out io.Writer) *runner {
	return &runner{
		logger: logger,
		out:    out,
		app:    lifecycle.NewService(lifecycle.AppStateActive),
	}
}

type session struct {
	c      *carousel.Carousel[string, string]
	cancel context.CancelFunc
	unsub  func()
}

func (s *session) stop() {
	s.cancel()
	<-s.c.Done()
	s.unsub()
}

// loop serves the session until ctx is cancelled. updates carries new
// configuration file contents, input carries user control lines; either may
// be nil.
func (r *runner) loop(ctx context.Context, res *config.Resolved, updates <-chan []byte, input <-chan string) error {
	if err := r.start(ctx, res); err != nil {
		return err
	}
	defer func() { r.current.stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil

		case data, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			r.reload(ctx, data)

		case line, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			if !control(r.current.c, r.app, r.out, line) {
				fmt.Fprintf(r.out, "unknown command %q (type \"help\")\n", line)
			}
		}
	}
}

// reload resolves data and restarts the session when the items or carousel
// settings changed. Logging and debug settings only apply at startup. An
// invalid document is reported as a config error and leaves the running
// session untouched.
func (r *runner) reload(ctx context.Context, data []byte) {
	next, err := r.resolve(data)
	if err != nil {
		r.reportConfig(err)
		return
	}
	if slices.Equal(next.Items, r.res.Items) && next.Carousel == r.res.Carousel {
		return
	}

	s, err := r.build(next)
	if err != nil {
		r.reportConfig(err)
		return
	}
	r.current.stop()
	r.launch(ctx, s, next)

	r.logger.Info("config reloaded", "path", next.Path, "items", len(next.Items))
	if r.feed != nil {
		r.feed.Reloaded(next.Path, next.Items)
	}
}

func (r *runner) reportConfig(err error) {
	errors.Report(&errors.CarouselError{
		Op:     "config.reload",
		Kind:   errors.KindConfig,
		Source: r.res.Path,
		Err:    err,
	})
}

// lifecycleFrame applies a lifecycle payload sent by a debug feed client.
// Malformed payloads are reported by ParseEvent and ignored.
func (r *runner) lifecycleFrame(source string, data any) {
	if state, ok := lifecycle.ParseEvent(source, data); ok {
		r.app.Update(state)
	}
}

func (r *runner) resolve(data []byte) (*config.Resolved, error) {
	cfg, err := config.Parse(data)
	if err != nil {
		return nil, err
	}
	next, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	next.Path = r.res.Path
	next.LogLevel = r.res.LogLevel
	next.DebugAddr = r.res.DebugAddr
	return next, nil
}

func (r *runner) start(ctx context.Context, res *config.Resolved) error {
	s, err := r.build(res)
	if err != nil {
		return err
	}
	r.launch(ctx, s, res)
	return nil
}

// build creates an idle session for res.
func (r *runner) build(res *config.Resolved) (*session, error) {
	view := newTerminalView(r.out, res.Items)
	c, err := carousel.New(res.Items, func(s string) string { return s },
		carousel.WithConfig(res.Carousel),
		carousel.WithPageView(view),
	)
	if err != nil {
		return nil, err
	}
	return &session{c: c}, nil
}

// launch runs s and makes it the current session.
func (r *runner) launch(ctx context.Context, s *session, res *config.Resolved) {
	unsubApp := r.app.AddHandler(s.c.AppStateChanged)
	unsubFeed := func() {}
	if r.feed != nil {
		unsubFeed = s.c.Subscribe(r.feed.Publish)
	}
	s.unsub = func() {
		unsubApp()
		unsubFeed()
	}

	sctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.c.Run(sctx)
	s.c.AppStateChanged(r.app.State())
	s.c.ViewWillAppear()

	r.current = s
	r.res = res
	r.logger.Info("carousel started",
		"items", len(res.Items),
		"interval", res.Carousel.Interval,
		"transition", res.Carousel.Transition.String(),
	)
}

// readLines forwards stdin lines until EOF or ctx is cancelled.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
