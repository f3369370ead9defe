package cmd

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer collects output written from the carousel's event loop.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captureStdout(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	prev := stdout
	stdout = buf
	t.Cleanup(func() { stdout = prev })
	return buf
}

func writeConfig(t *testing.T, dir, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(doc), 0o600))
}

func TestExecuteHelpAndVersion(t *testing.T) {
	out := captureStdout(t)

	require.NoError(t, Execute(nil))
	help := out.String()
	for _, name := range []string{"run", "snapshot", "validate", "version"} {
		assert.Contains(t, help, "  "+name+" ")
	}

	require.NoError(t, Execute([]string{"--version"}))
	assert.Contains(t, out.String(), "carousel version "+Version)

	require.NoError(t, Execute([]string{"snapshot", "--help"}))
	assert.Contains(t, out.String(), "carousel snapshot [--config DIR]")
}

func TestExecuteUnknownCommand(t *testing.T) {
	captureStdout(t)
	err := Execute([]string{"spin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command: spin")
}

func TestFlagSet(t *testing.T) {
	fs := newFlagSet()
	dir := fs.String("config", ".")
	out := fs.String("out", "a.png")

	require.NoError(t, fs.Parse([]string{"--config", "app", "--out=b.png"}))
	assert.Equal(t, "app", *dir)
	assert.Equal(t, "b.png", *out)

	assert.ErrorContains(t, newFlagSet().Parse([]string{"--nope", "x"}), "unknown flag --nope")
	assert.ErrorContains(t, fs.Parse([]string{"--config"}), "--config requires a value")
	assert.ErrorContains(t, fs.Parse([]string{"stray"}), "unexpected argument")
}

func TestValidate(t *testing.T) {
	out := captureStdout(t)
	dir := t.TempDir()
	writeConfig(t, dir, "items: [A, B]\ncarousel:\n  interval: 2s\n  transition: opacity\n")

	require.NoError(t, Execute([]string{"validate", "--config", dir}))
	got := out.String()
	assert.Contains(t, got, ": ok (version v1.0.0)")
	assert.Contains(t, got, "items:         2")
	assert.Contains(t, got, "interval:      2s")
	assert.Contains(t, got, "transition:    opacity")
}

func TestValidateReportsErrors(t *testing.T) {
	captureStdout(t)
	dir := t.TempDir()
	writeConfig(t, dir, "version: v3\n")

	err := Execute([]string{"validate", "--config", dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config version")
}

func TestSnapshot(t *testing.T) {
	out := captureStdout(t)
	dir := t.TempDir()
	writeConfig(t, dir, "items: [A, B, C]\n")
	file := filepath.Join(dir, "strip.png")

	require.NoError(t, Execute([]string{"snapshot", "--config", dir, "--out", file, "--frames", "3"}))
	assert.Contains(t, out.String(), "Wrote 3 frames (scale)")

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 390, img.Bounds().Dx())
}

func TestSnapshotRejectsBadFrames(t *testing.T) {
	captureStdout(t)
	err := Execute([]string{"snapshot", "--config", t.TempDir(), "--frames", "0"})
	assert.ErrorContains(t, err, "--frames must be a positive integer")
}

func TestTerminalView(t *testing.T) {
	var buf bytes.Buffer
	v := newTerminalView(&buf, []string{"A", "B"})

	v.SetIndex(1, false)
	v.SetIndex(2, true)
	v.SetIndex(3, true)
	v.SetIndex(9, true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "== 1/2 A  [real 1]", lines[0])
	assert.Equal(t, "-> 2/2 B  [real 2]", lines[1])
	assert.Equal(t, "-> 1/2 A  [pad-high 3]", lines[2])
	assert.Equal(t, "[9] (empty)", lines[3])
}

func newTestRunner(out io.Writer) *runner {
	return newRunner(slog.New(slog.NewTextHandler(io.Discard, nil)), out)
}

func resolved(t *testing.T, doc string) *config.Resolved {
	t.Helper()
	cfg, err := config.Parse([]byte(doc))
	require.NoError(t, err)
	res, err := cfg.Resolve()
	require.NoError(t, err)
	res.Path = config.FileName
	return res
}

// reportLog records reported errors; handlers may run on carousel loops.
type reportLog struct {
	mu   sync.Mutex
	errs []*errors.CarouselError
}

func recordReports(t *testing.T) *reportLog {
	t.Helper()
	l := &reportLog{}
	prev := errors.SetHandler(l)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return l
}

func (l *reportLog) HandleError(err *errors.CarouselError) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

func (l *reportLog) HandlePanic(*errors.PanicError) {}

func (l *reportLog) kinds(op string) []errors.ErrorKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	var kinds []errors.ErrorKind
	for _, err := range l.errs {
		if err.Op == op {
			kinds = append(kinds, err.Kind)
		}
	}
	return kinds
}

func TestRunnerReload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reports := recordReports(t)

	out := &syncBuffer{}
	r := newTestRunner(out)
	require.NoError(t, r.start(ctx, resolved(t, "items: [A, B]\n")))
	first := r.current

	// Identical contents keep the session.
	r.reload(ctx, []byte("items: [A, B]\n"))
	assert.Same(t, first, r.current)

	// Invalid contents keep the session and are reported as config errors.
	assert.Empty(t, reports.kinds("config.reload"))
	r.reload(ctx, []byte("carousel:\n  interval: -1s\n"))
	assert.Same(t, first, r.current)
	r.reload(ctx, []byte("items: [A\n"))
	assert.Same(t, first, r.current)
	assert.Equal(t, []errors.ErrorKind{errors.KindConfig, errors.KindConfig}, reports.kinds("config.reload"))

	r.reload(ctx, []byte("items: [A, B, C]\n"))
	require.NotSame(t, first, r.current)
	assert.Equal(t, []string{"A", "B", "C"}, r.res.Items)
	assert.Equal(t, config.FileName, r.res.Path)
	assert.Equal(t, 3, r.current.c.Sequence().RealLen())

	select {
	case <-first.c.Done():
	default:
		t.Fatal("previous session still running")
	}

	require.Eventually(t, func() bool {
		return r.current.c.Snapshot().Running
	}, 2*time.Second, 10*time.Millisecond)
	r.current.stop()
}

func TestRunnerLifecycleFrame(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reports := recordReports(t)

	r := newTestRunner(&syncBuffer{})
	require.NoError(t, r.start(ctx, resolved(t, "items: [A, B]\n")))
	defer r.current.stop()
	require.Eventually(t, func() bool { return r.current.c.Snapshot().Running }, 2*time.Second, 10*time.Millisecond)

	r.lifecycleFrame("debug/test", map[string]any{"state": "paused"})
	assert.Equal(t, lifecycle.AppStateBackground, r.app.State())
	require.Eventually(t, func() bool { return !r.current.c.Snapshot().Running }, 2*time.Second, 10*time.Millisecond)

	r.lifecycleFrame("debug/test", "resumed")
	assert.Equal(t, lifecycle.AppStateBackground, r.app.State())
	assert.Equal(t, []errors.ErrorKind{errors.KindParsing}, reports.kinds("lifecycle.parseEvent"))

	r.lifecycleFrame("debug/test", map[string]any{"state": "resumed"})
	require.Eventually(t, func() bool { return r.current.c.Snapshot().Running }, 2*time.Second, 10*time.Millisecond)
}

func TestRunnerLoopControls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	r := newTestRunner(out)
	input := make(chan string)

	done := make(chan error, 1)
	go func() {
		done <- r.loop(ctx, resolved(t, "items: [A, B, C]\ncarousel:\n  interval: 1h\n"), nil, input)
	}()

	input <- "drag 12"
	require.Eventually(t, func() bool {
		input <- "state"
		return strings.Contains(out.String(), "dragging=true")
	}, 2*time.Second, 10*time.Millisecond)

	input <- "background"
	require.Eventually(t, func() bool {
		input <- "state"
		return strings.Contains(out.String(), "app=background running=false")
	}, 2*time.Second, 10*time.Millisecond)

	input <- "bogus"
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `unknown command "bogus"`)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not return")
	}
}
