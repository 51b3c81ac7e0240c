package registry

import (
	"log/slog"
	"sync"
	"time"

	"tictactoe-server/internal/apperror"
	"tictactoe-server/internal/entity"
)

// PlayerRegistry owns the set of connected players. Like the game registry
// it serializes every operation behind one mutex; broadcasts work on
// snapshots and never touch the lock.
type PlayerRegistry struct {
	logger     *slog.Logger
	maxPlayers int

	mu      sync.Mutex
	players map[string]*entity.Player
}

func NewPlayerRegistry(logger *slog.Logger, maxPlayers int) *PlayerRegistry {
	return &PlayerRegistry{
		logger:     logger.With("component", "player-registry"),
		maxPlayers: maxPlayers,
		players:    make(map[string]*entity.Player),
	}
}

// Resolve - binds an inbound connection to a player identity. A known
// claimed id resumes the existing entry and rebinds its connection; anything
// else mints a fresh id. Only brand-new entries count against capacity.
func (that *PlayerRegistry) Resolve(conn entity.Connection, claimedID, name string) (*entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if claimedID != "" {
		if player, ok := that.players[claimedID]; ok {
			player.LastSeen = time.Now()
			player.BindConn(conn)
			if name != "" {
				player.Name = name
			}
			that.logger.Info("player resumed", "playerID", player.ID)
			return player, nil
		}
	}

	if len(that.players) >= that.maxPlayers {
		return nil, apperror.ErrServerFull
	}

	player := entity.NewPlayer(name, conn)
	that.players[player.ID] = player
	that.logger.Info("player registered", "playerID", player.ID, "name", name)

	return player, nil
}

// Touch - refreshes the last-seen time; called on every inbound message.
func (that *PlayerRegistry) Touch(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if player, ok := that.players[playerID]; ok {
		player.LastSeen = time.Now()
	}
}

// Remove - drops the entry; no-op when absent.
func (that *PlayerRegistry) Remove(playerID string) {
	that.mu.Lock()
	delete(that.players, playerID)
	that.mu.Unlock()
}

// Disconnect - drops the entry only if it is still bound to the given
// connection. A player that already resumed on a newer connection stays.
func (that *PlayerRegistry) Disconnect(playerID string, conn entity.Connection) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.players[playerID]
	if !ok || player.Conn() != conn {
		return false
	}

	delete(that.players, playerID)

	return true
}

// SweepExpired - returns the players silent for at least the timeout. The
// caller closes their connections, cascades game deletion and removes them.
func (that *PlayerRegistry) SweepExpired(now time.Time, timeout time.Duration) []*entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	var expired []*entity.Player
	for _, player := range that.players {
		if now.Sub(player.LastSeen) >= timeout {
			expired = append(expired, player)
		}
	}

	return expired
}

// All - snapshot of every connected player.
func (that *PlayerRegistry) All() []*entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	players := make([]*entity.Player, 0, len(that.players))
	for _, player := range that.players {
		players = append(players, player)
	}

	return players
}

func (that *PlayerRegistry) Count() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.players)
}

// Broadcast - sends the same payload to each target, skipping anyone whose
// connection is gone. Best-effort: no delivery confirmation, no retry.
// Each send goes through the player's own handle snapshot, so a reconnect
// rebinding the handle mid-broadcast is safe.
func (that *PlayerRegistry) Broadcast(msg any, targets []*entity.Player) {
	for _, player := range targets {
		if err := player.Send(msg); err != nil {
			that.logger.Debug("broadcast send skipped", "playerID", player.ID, "error", err)
		}
	}
}
