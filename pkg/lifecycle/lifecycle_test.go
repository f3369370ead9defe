package lifecycle

import (
	"testing"

	"github.com/go-drift/carousel/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePauser struct {
	running bool
	starts  int
	stops   int
}

func (p *fakePauser) Start() bool {
	p.starts++
	if p.running {
		return false
	}
	p.running = true
	return true
}

func (p *fakePauser) Stop() bool {
	p.stops++
	if !p.running {
		return false
	}
	p.running = false
	return true
}

func TestParseAppState(t *testing.T) {
	tests := []struct {
		in      string
		want    AppState
		wantErr bool
	}{
		{"active", AppStateActive, false},
		{"resumed", AppStateActive, false},
		{" Inactive ", AppStateInactive, false},
		{"background", AppStateBackground, false},
		{"paused", AppStateBackground, false},
		{"detached", AppStateBackground, false},
		{"hibernating", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAppState(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseAppState(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseAppState(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseEvent(t *testing.T) {
	var reported []*errors.CarouselError
	errors.SetHandler(&captureHandler{onError: func(err *errors.CarouselError) {
		reported = append(reported, err)
	}})
	defer errors.SetHandler(nil)

	state, ok := ParseEvent("app/lifecycle", map[string]any{"state": "paused"})
	require.True(t, ok)
	assert.Equal(t, AppStateBackground, state)
	assert.Empty(t, reported)

	_, ok = ParseEvent("app/lifecycle", "resumed")
	assert.False(t, ok)
	_, ok = ParseEvent("app/lifecycle", map[string]any{"state": 1})
	assert.False(t, ok)
	_, ok = ParseEvent("app/lifecycle", map[string]any{"state": "sleeping"})
	assert.False(t, ok)

	require.Len(t, reported, 3)
	assert.Equal(t, errors.KindParsing, reported[0].Kind)
	assert.Equal(t, errors.KindParsing, reported[1].Kind)
	assert.Equal(t, errors.KindLifecycle, reported[2].Kind)
	assert.Equal(t, "app/lifecycle", reported[2].Source)
}

func TestServiceNotifiesOnChange(t *testing.T) {
	svc := NewService(AppStateActive)
	var got []AppState
	unsub := svc.AddHandler(func(s AppState) { got = append(got, s) })

	svc.Update(AppStateActive)
	svc.Update(AppStateInactive)
	svc.Update(AppStateBackground)
	svc.Update(AppStateBackground)

	assert.Equal(t, []AppState{AppStateInactive, AppStateBackground}, got)
	assert.Equal(t, AppStateBackground, svc.State())
	assert.False(t, svc.IsActive())

	unsub()
	svc.Update(AppStateActive)
	assert.Len(t, got, 2)
	assert.True(t, svc.IsActive())
}

func TestServiceUnsubscribeKeepsOthers(t *testing.T) {
	svc := NewService(AppStateActive)
	var a, b int
	unsubA := svc.AddHandler(func(AppState) { a++ })
	svc.AddHandler(func(AppState) { b++ })

	unsubA()
	svc.Update(AppStateBackground)
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}

func TestBridgeAppStates(t *testing.T) {
	p := &fakePauser{}
	b := NewBridge(p)

	assert.True(t, b.AppStateChanged(AppStateActive))
	assert.True(t, p.running)
	assert.True(t, b.AppStateChanged(AppStateInactive))
	assert.False(t, p.running)
	assert.False(t, b.AppStateChanged(AppStateBackground))
	assert.False(t, b.AppStateChanged(AppState("unknown")))
	assert.Equal(t, 1, p.starts)
	assert.Equal(t, 2, p.stops)
}

func TestBridgeViewEvents(t *testing.T) {
	p := &fakePauser{}
	b := NewBridge(p)
	require.True(t, b.ScaleEnabled())

	var published []bool
	b.OnScaleChanged(func(enabled bool) { published = append(published, enabled) })

	b.ViewChanged(WillDisappear)
	assert.False(t, b.ScaleEnabled())
	assert.False(t, p.running)

	b.ViewChanged(WillAppear)
	assert.True(t, b.ScaleEnabled())
	assert.True(t, p.running)

	b.ViewChanged(WillAppear)
	assert.Equal(t, []bool{false, true}, published)
}

func TestViewEventString(t *testing.T) {
	assert.Equal(t, "will-appear", WillAppear.String())
	assert.Equal(t, "will-disappear", WillDisappear.String())
	assert.Equal(t, "ViewEvent(9)", ViewEvent(9).String())
}

type captureHandler struct {
	onError func(*errors.CarouselError)
}

func (h *captureHandler) HandleError(err *errors.CarouselError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *captureHandler) HandlePanic(*errors.PanicError) {}
