package entity

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tictactoe-server/internal/apperror"
)

// Connection is the outbound half of a player's transport link. Writes are
// best-effort; a closed connection reports an error and the caller moves on.
type Connection interface {
	Send(v any) error
	Close(code int, reason string) error
}

// Player is one connected user. The outbound handle sits behind its own
// lock: reconnects rebind it while broadcasts and the sweep loop read it
// from snapshots taken outside the registry lock.
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name,omitempty"`
	LastSeen time.Time `json:"-"`

	mu   sync.Mutex
	conn Connection
}

// NewPlayer - creates a player with a fresh rejoin identifier.
func NewPlayer(name string, conn Connection) *Player {
	return &Player{
		ID:       uuid.NewString(),
		Name:     name,
		LastSeen: time.Now(),
		conn:     conn,
	}
}

// BindConn - atomically swaps the outbound handle on reconnect.
func (that *Player) BindConn(conn Connection) {
	that.mu.Lock()
	that.conn = conn
	that.mu.Unlock()
}

// Conn - snapshot of the current outbound handle; may be nil.
func (that *Player) Conn() Connection {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.conn
}

// Send - writes through a snapshot of the handle, so a concurrent rebind
// never tears the read.
func (that *Player) Send(v any) error {
	conn := that.Conn()
	if conn == nil {
		return apperror.ErrNotConnected
	}

	return conn.Send(v)
}
