package debug

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/gorilla/websocket"
)

// Message types sent to clients.
const (
	TypeStateInit      = "state_init"
	TypeStateChanged   = "state_changed"
	TypeConfigReloaded = "config_reloaded"
)

// TypeLifecycle is the one message type clients may send. Its data is a
// platform lifecycle payload such as {"state": "paused"}.
const TypeLifecycle = "lifecycle"

// LifecycleHandler receives inbound lifecycle payloads. source identifies
// the sending client as "debug/<remote addr>".
type LifecycleHandler func(source string, data any)

// Envelope is the wire format of every frame.
type Envelope struct {
	Type string          `json:"type"`
	Ts   *time.Time      `json:"ts,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ReloadData is the payload of a config_reloaded frame.
type ReloadData struct {
	Path  string   `json:"path"`
	Items []string `json:"items"`
}

// Server exposes a Hub over HTTP and remembers the latest state for new
// clients.
type Server struct {
	logger *slog.Logger
	hub    *Hub
	now    func() time.Time

	mu          sync.Mutex
	latest      *carousel.State
	onLifecycle LifecycleHandler
}

// NewServer constructs the feed. Start Hub().Run(ctx) before serving.
func NewServer(logger *slog.Logger, cfg HubConfig) *Server {
	return &Server{
		logger: logger,
		hub:    NewHub(logger, cfg),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Hub returns the server's hub.
func (s *Server) Hub() *Hub { return s.hub }

// Register installs the websocket handler on mux at path.
func (s *Server) Register(mux *http.ServeMux, path string) {
	if mux == nil {
		return
	}
	mux.HandleFunc(path, s.handleWS)
}

// Publish records st as the latest state and broadcasts it. It is suitable
// as a carousel.Subscribe callback.
func (s *Server) Publish(st carousel.State) {
	s.mu.Lock()
	s.latest = &st
	s.mu.Unlock()
	s.broadcast(TypeStateChanged, st)
}

// OnLifecycle installs fn to receive lifecycle frames sent by clients.
// Frames of that type are ignored until a handler is installed.
func (s *Server) OnLifecycle(fn LifecycleHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLifecycle = fn
}

// Reloaded announces a configuration reload.
func (s *Server) Reloaded(path string, items []string) {
	s.broadcast(TypeConfigReloaded, ReloadData{Path: path, Items: items})
}

func (s *Server) broadcast(typ string, data any) {
	msg, err := s.encode(typ, data)
	if err != nil {
		s.logger.Warn("debug feed marshal failed", "error", err, "type", typ)
		return
	}
	s.hub.BroadcastBytes(msg)
}

func (s *Server) encode(typ string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ts := s.now()
	return json.Marshal(Envelope{Type: typ, Ts: &ts, Data: raw})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("debug feed upgrade failed", "error", err)
		return
	}

	client := newClient(s.hub, conn, r.RemoteAddr)
	client.inbound = s.receive

	// state_init is queued before registration so it precedes every
	// broadcast, and the send channel is never written outside the hub once
	// the hub may close it. Publish waits on mu, so no state is lost between
	// the snapshot and registration.
	s.mu.Lock()
	if s.latest != nil {
		msg, err := s.encode(TypeStateInit, *s.latest)
		if err != nil {
			s.logger.Warn("debug feed marshal failed", "error", err, "type", TypeStateInit)
		} else {
			client.send <- msg
		}
	}
	added := s.hub.add(r.Context(), client)
	s.mu.Unlock()
	if !added {
		_ = conn.Close()
		return
	}

	// The pumps outlive the request; the hub and connection errors end them.
	go client.writePump()
	go client.readPump()
}

func (s *Server) receive(c *Client, env Envelope) {
	if env.Type != TypeLifecycle {
		s.logger.Debug("debug feed ignoring frame", "remote_addr", c.remoteAddr, "type", env.Type)
		return
	}
	s.mu.Lock()
	fn := s.onLifecycle
	s.mu.Unlock()
	if fn == nil {
		return
	}
	var data any
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			s.logger.Warn("debug feed bad lifecycle frame", "remote_addr", c.remoteAddr, "error", err)
			return
		}
	}
	fn("debug/"+c.remoteAddr, data)
}

// ListenAndServe serves the feed on addr at /ws until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.Register(mux, "/ws")
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go s.hub.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("debug feed listening", "addr", addr, "path", "/ws")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
