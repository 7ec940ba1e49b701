package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// SafeWriter serializes writes to a websocket connection.
type SafeWriter struct {
	conn  *websocket.Conn
	mutex sync.Mutex
}

// NewSafeWriter wraps conn.
func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{conn: conn}
}

// WriteJSON sends v as a JSON text message.
func (w *SafeWriter) WriteJSON(v any) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.conn.WriteJSON(v)
}

// WriteClose sends a close frame, waiting at most timeout.
func (w *SafeWriter) WriteClose(timeout time.Duration) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	return w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(timeout))
}

// Close closes the connection.
func (w *SafeWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.conn.Close()
}
