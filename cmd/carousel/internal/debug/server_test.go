package debug

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	s, url, _ := newCancellableServer(t)
	return s, url
}

func newCancellableServer(t *testing.T) (*Server, string, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)), HubConfig{})
	go s.Hub().Run(ctx)

	mux := http.NewServeMux()
	s.Register(mux, "/ws")
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return s, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws", cancel
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	require.NotNil(t, env.Ts)
	return env
}

func TestServerSendsInitThenChanges(t *testing.T) {
	s, url := newTestServer(t)
	s.Publish(carousel.State{Index: 1, RealIndex: 0, SlotName: "real", Count: 4, Looping: true})

	conn := dial(t, url)

	env := readEnvelope(t, conn)
	assert.Equal(t, TypeStateInit, env.Type)
	var st carousel.State
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, 4, st.Count)

	s.Publish(carousel.State{Index: 2, RealIndex: 1, SlotName: "real", Count: 4, Looping: true, Running: true})

	env = readEnvelope(t, conn)
	assert.Equal(t, TypeStateChanged, env.Type)
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 2, st.Index)
	assert.True(t, st.Running)
}

func TestServerWithoutStateSkipsInit(t *testing.T) {
	s, url := newTestServer(t)
	conn := dial(t, url)

	require.Eventually(t, func() bool { return s.Hub().Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	s.Reloaded("carousel.yaml", []string{"a", "b"})

	env := readEnvelope(t, conn)
	assert.Equal(t, TypeConfigReloaded, env.Type)
	var data ReloadData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, ReloadData{Path: "carousel.yaml", Items: []string{"a", "b"}}, data)
}

func TestHubDropsClosedClient(t *testing.T) {
	s, url := newTestServer(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return s.Hub().Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return s.Hub().Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServerAfterHubStopClosesConnection(t *testing.T) {
	s, url, stop := newCancellableServer(t)
	s.Publish(carousel.State{Index: 1, Count: 4})
	stop()
	<-s.Hub().done

	conn := dial(t, url)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, s.Hub().Clients())
}

func TestConnectDuringHubShutdown(t *testing.T) {
	s, url, stop := newCancellableServer(t)
	s.Publish(carousel.State{Index: 1, Count: 4})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				return
			}
			defer conn.Close()
			_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
		if i == 10 {
			stop()
		}
	}
	wg.Wait()
	<-s.Hub().done
	assert.Equal(t, 0, s.Hub().Clients())
}

func TestServerDeliversLifecycleFrames(t *testing.T) {
	s, url := newTestServer(t)

	type received struct {
		source string
		data   any
	}
	got := make(chan received, 4)
	s.OnLifecycle(func(source string, data any) {
		got <- received{source: source, data: data}
	})

	conn := dial(t, url)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"state_changed","data":{}}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"lifecycle","data":{"state":"paused"}}`)))

	select {
	case r := <-got:
		assert.True(t, strings.HasPrefix(r.source, "debug/"), "source %q", r.source)
		assert.Equal(t, map[string]any{"state": "paused"}, r.data)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle frame not delivered")
	}
	assert.Empty(t, got, "only the lifecycle frame is delivered")
}
