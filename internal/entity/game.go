package entity

import (
	"github.com/google/uuid"
)

const BoardSize = 3

// Seat is one of the two fixed playing positions in a game. Lookups express
// absence with a separate bool, never a third seat value.
type Seat string

const (
	SeatX Seat = "x"
	SeatO Seat = "o"

	// SeatNone marks the absence of a seat request in inbound parameters.
	// It is not a playing position and never passes Valid().
	SeatNone Seat = ""
)

func (that Seat) Valid() bool {
	return that == SeatX || that == SeatO
}

func (that Seat) Other() Seat {
	if that == SeatX {
		return SeatO
	}
	return SeatX
}

type Outcome string

const (
	OutcomeOngoing Outcome = ""
	OutcomeXWins   Outcome = "x"
	OutcomeOWins   Outcome = "o"
	OutcomeTie     Outcome = "tie"
)

func (that Outcome) IsTerminal() bool {
	return that != OutcomeOngoing
}

// Move is a board coordinate, both components in [0, BoardSize).
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PlacedMove is one entry of a game's move history, tagged with the seat
// that made it.
type PlacedMove struct {
	Seat Seat `json:"seat"`
	Move Move `json:"move"`
}

// Game holds one tic-tac-toe match: two optional seat assignments and the
// ordered move history. Seats hold non-owning references to players.
type Game struct {
	ID        string
	X         *Player
	O         *Player
	Moves     []PlacedMove
	BoardSize int
}

func NewGame() *Game {
	return &Game{
		ID:        uuid.NewString(),
		BoardSize: BoardSize,
	}
}

// IsReady - reports whether both seats are filled.
func (that *Game) IsReady() bool {
	return that.X != nil && that.O != nil
}

func (that *Game) PlayerAt(seat Seat) (*Player, bool) {
	switch seat {
	case SeatX:
		if that.X != nil {
			return that.X, true
		}
	case SeatO:
		if that.O != nil {
			return that.O, true
		}
	}
	return nil, false
}

// SetSeat - assigns a player to an empty seat. A seat, once assigned, is
// never reassigned while the game is live.
func (that *Game) SetSeat(seat Seat, player *Player) bool {
	switch seat {
	case SeatX:
		if that.X != nil {
			return false
		}
		that.X = player
	case SeatO:
		if that.O != nil {
			return false
		}
		that.O = player
	default:
		return false
	}
	return true
}

// SeatOf - resolves a player id to the seat it occupies.
func (that *Game) SeatOf(playerID string) (Seat, bool) {
	if that.X != nil && that.X.ID == playerID {
		return SeatX, true
	}
	if that.O != nil && that.O.ID == playerID {
		return SeatO, true
	}
	return SeatNone, false
}

func (that *Game) HasPlayer(playerID string) bool {
	_, ok := that.SeatOf(playerID)
	return ok
}

// OpenSeat - reports the seat still free. With both seats free it reports
// SeatX, the seat that moves first.
func (that *Game) OpenSeat() (Seat, bool) {
	if that.X == nil {
		return SeatX, true
	}
	if that.O == nil {
		return SeatO, true
	}
	return SeatNone, false
}

// Opponent - returns the other seated player. The given player must itself
// be seated; a game with two empty seats has no opponent to offer.
func (that *Game) Opponent(playerID string) (*Player, bool) {
	seat, ok := that.SeatOf(playerID)
	if !ok {
		return nil, false
	}
	return that.PlayerAt(seat.Other())
}

// SeatedPlayers - returns the non-empty seat occupants, X first.
func (that *Game) SeatedPlayers() []*Player {
	players := make([]*Player, 0, 2)
	if that.X != nil {
		players = append(players, that.X)
	}
	if that.O != nil {
		players = append(players, that.O)
	}
	return players
}
