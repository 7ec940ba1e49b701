package ws

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/antigravity/systems"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket server: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

// waitCommands drains until n commands arrive or the deadline passes.
func waitCommands(s *Server, n int) []Command {
	var got []Command
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < n && time.Now().Before(deadline) {
		s.Drain(func(c Command) { got = append(got, c) })
		time.Sleep(5 * time.Millisecond)
	}
	return got
}

func TestServerSendsSceneThenSnapshots(t *testing.T) {
	s := NewServer(5*time.Millisecond, 8)
	s.SetScene(SceneMessage{
		Objects:    []ObjectInfo{{ID: 0, Archetype: "cube"}},
		Background: "#171717",
	})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	var scene SceneMessage
	if err := conn.ReadJSON(&scene); err != nil {
		t.Fatalf("reading scene: %v", err)
	}
	if scene.Type != MessageTypeScene || len(scene.Objects) != 1 || scene.Background != "#171717" {
		t.Errorf("scene = %+v", scene)
	}

	s.Publish(&SnapshotMessage{Tick: 42, Bodies: []BodySnapshot{{ID: 0, Rotation: [4]float32{0, 0, 0, 1}, Hovered: true}}})

	var snap SnapshotMessage
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if snap.Type != MessageTypeSnapshot || snap.Tick != 42 || len(snap.Bodies) != 1 || !snap.Bodies[0].Hovered {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestServerQueuesClientCommands(t *testing.T) {
	s := NewServer(time.Hour, 8)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	if err := conn.WriteJSON(PointerMessage{Type: MessageTypePointer, Event: "click", ID: 3}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(ViewportMessage{Type: MessageTypeViewport, Width: 24, Height: 12}); err != nil {
		t.Fatal(err)
	}

	got := waitCommands(s, 2)
	if len(got) != 2 {
		t.Fatalf("received %d commands, want 2", len(got))
	}
	if got[0].Kind != CommandPointer || got[0].Pointer != (systems.PointerEvent{Kind: systems.PointerClick, ObjectID: 3}) {
		t.Errorf("pointer command = %+v", got[0])
	}
	if got[1].Kind != CommandViewport || got[1].Width != 24 || got[1].Height != 12 {
		t.Errorf("viewport command = %+v", got[1])
	}
}

func TestServerRejectsBadMessages(t *testing.T) {
	s := NewServer(time.Hour, 8)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	bad := []any{
		PointerMessage{Type: MessageTypePointer, Event: "hover", ID: 1},
		ViewportMessage{Type: MessageTypeViewport, Width: 0, Height: 10},
		map[string]string{"type": "teleport"},
	}
	for _, msg := range bad {
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatal(err)
		}
		var reply ErrorMessage
		if err := conn.ReadJSON(&reply); err != nil {
			t.Fatalf("reading error reply: %v", err)
		}
		if reply.Type != MessageTypeError || reply.Message == "" {
			t.Errorf("reply to %v = %+v", msg, reply)
		}
	}
	if n := s.Drain(func(Command) {}); n != 0 {
		t.Errorf("bad messages queued %d commands", n)
	}
}

func TestServerDropsWhenQueueFull(t *testing.T) {
	s := NewServer(time.Hour, 1)
	s.enqueue(Command{Kind: CommandViewport, Width: 1, Height: 1})
	s.enqueue(Command{Kind: CommandViewport, Width: 2, Height: 2})
	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", s.Dropped())
	}
	var got []Command
	s.Drain(func(c Command) { got = append(got, c) })
	if len(got) != 1 || got[0].Width != 1 {
		t.Errorf("drained %+v, want the first command only", got)
	}
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"pointer", `{"type":"pointer","event":"enter","id":2}`, nil},
		{"viewport", `{"type":"viewport","width":10,"height":5}`, nil},
		{"unknown", `{"type":"nope"}`, ErrUnknownMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMessage([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if _, err := ParseMessage([]byte("{not json")); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestServerTracksClients(t *testing.T) {
	s := NewServer(time.Hour, 1)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	deadline := time.Now().Add(2 * time.Second)
	for s.Clients() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.Clients() != 1 {
		t.Fatalf("Clients() = %d, want 1", s.Clients())
	}
	conn.Close()
	for s.Clients() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.Clients() != 0 {
		t.Errorf("Clients() after close = %d, want 0", s.Clients())
	}
}
