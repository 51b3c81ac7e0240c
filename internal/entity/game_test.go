package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeat(t *testing.T) {
	t.Run("Other toggles between the two seats", func(t *testing.T) {
		assert.Equal(t, SeatO, SeatX.Other())
		assert.Equal(t, SeatX, SeatO.Other())
	})

	t.Run("Only x and o are valid", func(t *testing.T) {
		assert.True(t, SeatX.Valid())
		assert.True(t, SeatO.Valid())
		assert.False(t, SeatNone.Valid())
		assert.False(t, Seat("z").Valid())
	})
}

func TestOutcome_IsTerminal(t *testing.T) {
	assert.False(t, OutcomeOngoing.IsTerminal())
	assert.True(t, OutcomeXWins.IsTerminal())
	assert.True(t, OutcomeOWins.IsTerminal())
	assert.True(t, OutcomeTie.IsTerminal())
}

func TestGame_SetSeat(t *testing.T) {
	t.Run("Assigns an empty seat", func(t *testing.T) {
		// Given: a fresh game and a player
		game := NewGame()
		player := &Player{ID: "u1"}

		// When: seating the player at X
		ok := game.SetSeat(SeatX, player)

		// Then: the seat is bound to the player
		require.True(t, ok)
		assert.Equal(t, player, game.X)
	})

	t.Run("Never reassigns a taken seat", func(t *testing.T) {
		// Given: a game with X already seated
		game := NewGame()
		require.True(t, game.SetSeat(SeatX, &Player{ID: "u1"}))

		// When: another player tries to take X
		ok := game.SetSeat(SeatX, &Player{ID: "u2"})

		// Then: the assignment is refused and the original occupant stays
		require.False(t, ok)
		assert.Equal(t, "u1", game.X.ID)
	})

	t.Run("Rejects an invalid seat", func(t *testing.T) {
		game := NewGame()

		assert.False(t, game.SetSeat(Seat("z"), &Player{ID: "u1"}))
	})
}

func TestGame_SeatOf(t *testing.T) {
	game := NewGame()
	game.SetSeat(SeatX, &Player{ID: "u1"})
	game.SetSeat(SeatO, &Player{ID: "u2"})

	t.Run("Resolves seated players", func(t *testing.T) {
		seat, ok := game.SeatOf("u1")
		require.True(t, ok)
		assert.Equal(t, SeatX, seat)

		seat, ok = game.SeatOf("u2")
		require.True(t, ok)
		assert.Equal(t, SeatO, seat)
	})

	t.Run("Reports absence for strangers", func(t *testing.T) {
		_, ok := game.SeatOf("u3")
		assert.False(t, ok)
	})
}

func TestGame_OpenSeat(t *testing.T) {
	t.Run("Both seats free reports X", func(t *testing.T) {
		game := NewGame()

		seat, open := game.OpenSeat()

		require.True(t, open)
		assert.Equal(t, SeatX, seat)
	})

	t.Run("X taken reports O", func(t *testing.T) {
		game := NewGame()
		game.SetSeat(SeatX, &Player{ID: "u1"})

		seat, open := game.OpenSeat()

		require.True(t, open)
		assert.Equal(t, SeatO, seat)
	})

	t.Run("Full game has no open seat", func(t *testing.T) {
		game := NewGame()
		game.SetSeat(SeatX, &Player{ID: "u1"})
		game.SetSeat(SeatO, &Player{ID: "u2"})

		_, open := game.OpenSeat()

		assert.False(t, open)
	})
}

func TestGame_Opponent(t *testing.T) {
	t.Run("Returns the other seated player", func(t *testing.T) {
		// Given: a game with both seats filled
		game := NewGame()
		game.SetSeat(SeatX, &Player{ID: "u1"})
		game.SetSeat(SeatO, &Player{ID: "u2"})

		// When: looking up u1's opponent
		opponent, found := game.Opponent("u1")

		// Then: it is u2
		require.True(t, found)
		assert.Equal(t, "u2", opponent.ID)
	})

	t.Run("No opponent when the other seat is empty", func(t *testing.T) {
		game := NewGame()
		game.SetSeat(SeatX, &Player{ID: "u1"})

		_, found := game.Opponent("u1")

		assert.False(t, found)
	})

	t.Run("No opponent for a player who is not seated", func(t *testing.T) {
		game := NewGame()
		game.SetSeat(SeatX, &Player{ID: "u1"})
		game.SetSeat(SeatO, &Player{ID: "u2"})

		_, found := game.Opponent("u3")

		assert.False(t, found)
	})

	t.Run("Two empty seats yield no opponent", func(t *testing.T) {
		// Given: a game nobody joined yet
		game := NewGame()

		// When: any id asks for an opponent
		_, found := game.Opponent("u1")

		// Then: absence is reported instead of a phantom match
		assert.False(t, found)
	})
}

func TestGame_SeatedPlayers(t *testing.T) {
	t.Run("Empty game has no seated players", func(t *testing.T) {
		assert.Empty(t, NewGame().SeatedPlayers())
	})

	t.Run("Lists occupants X first", func(t *testing.T) {
		game := NewGame()
		game.SetSeat(SeatO, &Player{ID: "u2"})
		game.SetSeat(SeatX, &Player{ID: "u1"})

		players := game.SeatedPlayers()

		require.Len(t, players, 2)
		assert.Equal(t, "u1", players[0].ID)
		assert.Equal(t, "u2", players[1].ID)
	})
}

func TestGame_IsReady(t *testing.T) {
	game := NewGame()
	assert.False(t, game.IsReady())

	game.SetSeat(SeatX, &Player{ID: "u1"})
	assert.False(t, game.IsReady())

	game.SetSeat(SeatO, &Player{ID: "u2"})
	assert.True(t, game.IsReady())
}
