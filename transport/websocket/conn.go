package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var errConnClosed = errors.New("connection is closed")

// Conn wraps a gorilla connection behind a write lock; gorilla supports only
// one concurrent writer. Reading stays with the single read loop.
type Conn struct {
	mu     sync.Mutex
	ws     *websocket.Conn
	closed bool
}

func newConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (that *Conn) Send(v any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return errConnClosed
	}

	_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))

	return that.ws.WriteJSON(v)
}

// Close - sends a close frame with the given code and reason, then tears
// down the underlying connection. Idempotent.
func (that *Conn) Close(code int, reason string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return nil
	}
	that.closed = true

	deadline := time.Now().Add(writeWait)
	_ = that.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)

	return that.ws.Close()
}

func (that *Conn) ReadMessage() ([]byte, error) {
	_, data, err := that.ws.ReadMessage()
	return data, err
}
