package ws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/antigravity/systems"
)

// DefaultUpdateInterval is the snapshot stream period.
const DefaultUpdateInterval = 33 * time.Millisecond

// CommandKind tells the frame loop what a Command carries.
type CommandKind uint8

const (
	CommandPointer CommandKind = iota
	CommandViewport
)

// Command is a client request for the frame loop.
type Command struct {
	Kind    CommandKind
	Pointer systems.PointerEvent
	Width   float32
	Height  float32
}

// Server accepts websocket clients. Connection goroutines never touch the
// simulation: they read the latest published snapshot and queue commands.
type Server struct {
	upgrader websocket.Upgrader
	interval time.Duration

	scene    atomic.Pointer[SceneMessage]
	latest   atomic.Pointer[SnapshotMessage]
	commands chan Command
	dropped  atomic.Int64

	clientsMu sync.Mutex
	clients   map[*SafeWriter]struct{}
}

// NewServer creates a server streaming at interval with a command queue of
// the given capacity.
func NewServer(interval time.Duration, buffer int) *Server {
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}
	if buffer < 1 {
		buffer = 1
	}
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		interval: interval,
		commands: make(chan Command, buffer),
		clients:  make(map[*SafeWriter]struct{}),
	}
}

// SetScene sets the message sent to every client on connect.
func (s *Server) SetScene(msg SceneMessage) {
	msg.Type = MessageTypeScene
	s.scene.Store(&msg)
}

// Publish makes msg the snapshot streamed to clients. msg must not be
// modified afterwards.
func (s *Server) Publish(msg *SnapshotMessage) {
	msg.Type = MessageTypeSnapshot
	s.latest.Store(msg)
}

// Drain hands every queued command to fn without blocking and returns how
// many were processed.
func (s *Server) Drain(fn func(Command)) int {
	n := 0
	for {
		select {
		case cmd := <-s.commands:
			fn(cmd)
			n++
		default:
			return n
		}
	}
}

// Dropped returns the number of commands discarded because the queue was full.
func (s *Server) Dropped() int64 { return s.dropped.Load() }

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// Handler returns an http.Handler serving websocket clients on /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("websocket server listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("websocket server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.closeClients()
		return srv.Shutdown(shutdownCtx)
	}
}

// HandleWS upgrades the request and serves one client until it disconnects.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	writer := NewSafeWriter(conn)
	s.addClient(writer)
	defer func() {
		s.removeClient(writer)
		writer.Close()
	}()

	if scene := s.scene.Load(); scene != nil {
		if err := writer.WriteJSON(scene); err != nil {
			slog.Debug("websocket scene send failed", "error", err)
			return
		}
	}

	done := make(chan struct{})
	defer close(done)
	go s.stream(writer, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket read failed", "error", err)
			}
			return
		}
		if err := s.handleMessage(data); err != nil {
			if werr := writer.WriteJSON(ErrorMessage{Type: MessageTypeError, Message: err.Error()}); werr != nil {
				return
			}
		}
	}
}

// stream sends the latest snapshot every interval when it has changed.
func (s *Server) stream(writer *SafeWriter, done <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var sent *SnapshotMessage
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			snap := s.latest.Load()
			if snap == nil || snap == sent {
				continue
			}
			if err := writer.WriteJSON(snap); err != nil {
				slog.Debug("websocket snapshot send failed", "error", err)
				return
			}
			sent = snap
		}
	}
}

func (s *Server) handleMessage(data []byte) error {
	msg, err := ParseMessage(data)
	if err != nil {
		return err
	}

	switch m := msg.(type) {
	case *PointerMessage:
		kind, ok := systems.ParsePointerEventKind(m.Event)
		if !ok {
			return fmt.Errorf("unknown pointer event %q", m.Event)
		}
		s.enqueue(Command{Kind: CommandPointer, Pointer: systems.PointerEvent{Kind: kind, ObjectID: m.ID}})
	case *ViewportMessage:
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("invalid viewport %vx%v", m.Width, m.Height)
		}
		s.enqueue(Command{Kind: CommandViewport, Width: m.Width, Height: m.Height})
	}
	return nil
}

func (s *Server) enqueue(cmd Command) {
	select {
	case s.commands <- cmd:
	default:
		s.dropped.Add(1)
		slog.Warn("websocket command queue full, dropping command", "kind", cmd.Kind)
	}
}

func (s *Server) addClient(w *SafeWriter) {
	s.clientsMu.Lock()
	s.clients[w] = struct{}{}
	n := len(s.clients)
	s.clientsMu.Unlock()
	slog.Info("websocket client connected", "clients", n)
}

func (s *Server) removeClient(w *SafeWriter) {
	s.clientsMu.Lock()
	delete(s.clients, w)
	n := len(s.clients)
	s.clientsMu.Unlock()
	slog.Info("websocket client disconnected", "clients", n)
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for w := range s.clients {
		_ = w.WriteClose(time.Second)
	}
}
