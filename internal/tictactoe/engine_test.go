package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"tictactoe-server/internal/apperror"
	"tictactoe-server/internal/entity"
)

func placed(seat entity.Seat, row, col int) entity.PlacedMove {
	return entity.PlacedMove{Seat: seat, Move: entity.Move{Row: row, Col: col}}
}

func TestNextSeat(t *testing.T) {
	t.Run("X opens on an empty history", func(t *testing.T) {
		assert.Equal(t, entity.SeatX, NextSeat(nil))
	})

	t.Run("O follows X", func(t *testing.T) {
		moves := []entity.PlacedMove{placed(entity.SeatX, 0, 0)}

		assert.Equal(t, entity.SeatO, NextSeat(moves))
	})

	t.Run("X follows O", func(t *testing.T) {
		moves := []entity.PlacedMove{
			placed(entity.SeatX, 0, 0),
			placed(entity.SeatO, 1, 1),
		}

		assert.Equal(t, entity.SeatX, NextSeat(moves))
	})
}

func TestInBounds(t *testing.T) {
	tests := []struct {
		name string
		move entity.Move
		want bool
	}{
		{"origin", entity.Move{Row: 0, Col: 0}, true},
		{"last cell", entity.Move{Row: 2, Col: 2}, true},
		{"row too large", entity.Move{Row: 3, Col: 0}, false},
		{"col too large", entity.Move{Row: 0, Col: 3}, false},
		{"negative row", entity.Move{Row: -1, Col: 0}, false},
		{"negative col", entity.Move{Row: 0, Col: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InBounds(tt.move, entity.BoardSize))
		})
	}
}

func TestCheckMove(t *testing.T) {
	t.Run("Rejects out of bounds move", func(t *testing.T) {
		err := CheckMove(nil, entity.SeatX, entity.Move{Row: 5, Col: 0}, entity.BoardSize)

		assert.ErrorIs(t, err, apperror.ErrOutOfBounds)
	})

	t.Run("Rejects move out of turn", func(t *testing.T) {
		err := CheckMove(nil, entity.SeatO, entity.Move{Row: 0, Col: 0}, entity.BoardSize)

		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Rejects occupied coordinate", func(t *testing.T) {
		moves := []entity.PlacedMove{placed(entity.SeatX, 0, 0)}

		err := CheckMove(moves, entity.SeatO, entity.Move{Row: 0, Col: 0}, entity.BoardSize)

		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Accepts a legal move", func(t *testing.T) {
		moves := []entity.PlacedMove{placed(entity.SeatX, 0, 0)}

		err := CheckMove(moves, entity.SeatO, entity.Move{Row: 1, Col: 1}, entity.BoardSize)

		assert.NoError(t, err)
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("Top row win for X", func(t *testing.T) {
		// Given: x(0,0) o(1,1) x(0,1) o(1,0) x(0,2)
		moves := []entity.PlacedMove{
			placed(entity.SeatX, 0, 0),
			placed(entity.SeatO, 1, 1),
			placed(entity.SeatX, 0, 1),
			placed(entity.SeatO, 1, 0),
			placed(entity.SeatX, 0, 2),
		}

		assert.Equal(t, entity.OutcomeXWins, Evaluate(moves, entity.BoardSize))
	})

	t.Run("Column win for O", func(t *testing.T) {
		moves := []entity.PlacedMove{
			placed(entity.SeatX, 0, 0),
			placed(entity.SeatO, 0, 1),
			placed(entity.SeatX, 1, 0),
			placed(entity.SeatO, 1, 1),
			placed(entity.SeatX, 2, 2),
			placed(entity.SeatO, 2, 1),
		}

		assert.Equal(t, entity.OutcomeOWins, Evaluate(moves, entity.BoardSize))
	})

	t.Run("Main diagonal win", func(t *testing.T) {
		moves := []entity.PlacedMove{
			placed(entity.SeatX, 0, 0),
			placed(entity.SeatO, 0, 1),
			placed(entity.SeatX, 1, 1),
			placed(entity.SeatO, 0, 2),
			placed(entity.SeatX, 2, 2),
		}

		assert.Equal(t, entity.OutcomeXWins, Evaluate(moves, entity.BoardSize))
	})

	t.Run("Anti diagonal win", func(t *testing.T) {
		moves := []entity.PlacedMove{
			placed(entity.SeatX, 2, 0),
			placed(entity.SeatO, 0, 0),
			placed(entity.SeatX, 1, 1),
			placed(entity.SeatO, 0, 1),
			placed(entity.SeatX, 0, 2),
		}

		assert.Equal(t, entity.OutcomeXWins, Evaluate(moves, entity.BoardSize))
	})

	t.Run("Full board with no line is a tie", func(t *testing.T) {
		// x o x
		// x o o
		// o x x
		moves := []entity.PlacedMove{
			placed(entity.SeatX, 0, 0),
			placed(entity.SeatO, 0, 1),
			placed(entity.SeatX, 0, 2),
			placed(entity.SeatO, 1, 1),
			placed(entity.SeatX, 1, 0),
			placed(entity.SeatO, 1, 2),
			placed(entity.SeatX, 2, 1),
			placed(entity.SeatO, 2, 0),
			placed(entity.SeatX, 2, 2),
		}

		assert.Equal(t, entity.OutcomeTie, Evaluate(moves, entity.BoardSize))
	})

	t.Run("Empty board is ongoing", func(t *testing.T) {
		assert.Equal(t, entity.OutcomeOngoing, Evaluate(nil, entity.BoardSize))
	})

	t.Run("Partial board with no line is ongoing", func(t *testing.T) {
		moves := []entity.PlacedMove{
			placed(entity.SeatX, 0, 0),
			placed(entity.SeatO, 1, 1),
		}

		assert.Equal(t, entity.OutcomeOngoing, Evaluate(moves, entity.BoardSize))
	})
}

// drawHistory builds a legal move history by generating candidate coordinates
// and keeping the ones the engine accepts.
func drawHistory(t *rapid.T) []entity.PlacedMove {
	var moves []entity.PlacedMove

	count := rapid.IntRange(0, 20).Draw(t, "count")
	for i := 0; i < count; i++ {
		move := entity.Move{
			Row: rapid.IntRange(0, entity.BoardSize-1).Draw(t, "row"),
			Col: rapid.IntRange(0, entity.BoardSize-1).Draw(t, "col"),
		}

		seat := NextSeat(moves)
		if CheckMove(moves, seat, move, entity.BoardSize) != nil {
			continue
		}
		moves = append(moves, entity.PlacedMove{Seat: seat, Move: move})

		if Evaluate(moves, entity.BoardSize).IsTerminal() {
			break
		}
	}

	return moves
}

func TestEngineProperties(t *testing.T) {
	t.Run("Accepted histories strictly alternate starting with X", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			moves := drawHistory(t)

			want := entity.SeatX
			for _, placed := range moves {
				require.Equal(t, want, placed.Seat)
				want = want.Other()
			}
		})
	})

	t.Run("Evaluate is a pure function of the move list", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			moves := drawHistory(t)

			first := Evaluate(moves, entity.BoardSize)
			second := Evaluate(moves, entity.BoardSize)

			require.Equal(t, first, second)
		})
	})

	t.Run("A recorded coordinate can never be recorded again", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			moves := drawHistory(t)
			if len(moves) == 0 {
				t.Skip("empty history")
			}

			replay := rapid.SampledFrom(moves).Draw(t, "replay")

			require.False(t, IsFree(moves, replay.Move))
			require.Error(t, CheckMove(moves, NextSeat(moves), replay.Move, entity.BoardSize))
		})
	})

	t.Run("No history holds two moves on one coordinate", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			moves := drawHistory(t)

			seen := make(map[entity.Move]bool)
			for _, placed := range moves {
				require.False(t, seen[placed.Move])
				seen[placed.Move] = true
			}
		})
	})
}
