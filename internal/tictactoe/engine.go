// Package tictactoe holds the board rules as pure functions over a recorded
// move history. No I/O, no shared state; the registries own all mutation.
package tictactoe

import (
	"tictactoe-server/internal/apperror"
	"tictactoe-server/internal/entity"
)

// InBounds - reports whether both coordinates are within [0, boardSize).
func InBounds(move entity.Move, boardSize int) bool {
	return move.Row >= 0 && move.Row < boardSize && move.Col >= 0 && move.Col < boardSize
}

// IsFree - reports whether no prior move occupies the coordinate.
func IsFree(moves []entity.PlacedMove, move entity.Move) bool {
	for _, placed := range moves {
		if placed.Move == move {
			return false
		}
	}
	return true
}

// NextSeat - X opens; afterwards the seats strictly alternate.
func NextSeat(moves []entity.PlacedMove) entity.Seat {
	if len(moves) == 0 {
		return entity.SeatX
	}
	return moves[len(moves)-1].Seat.Other()
}

// CheckMove - returns the reason a candidate move is illegal, or nil.
// Readiness of the game (both seats filled) is the caller's concern.
func CheckMove(moves []entity.PlacedMove, seat entity.Seat, move entity.Move, boardSize int) error {
	if !InBounds(move, boardSize) {
		return apperror.ErrOutOfBounds
	}
	if NextSeat(moves) != seat {
		return apperror.ErrNotYourTurn
	}
	if !IsFree(moves, move) {
		return apperror.ErrCellOccupied
	}
	return nil
}

// Evaluate - reconstructs the grid from the move history and checks every
// row, every column and both diagonals for a full line of one seat. A full
// board with no line is a tie; anything else is ongoing.
func Evaluate(moves []entity.PlacedMove, boardSize int) entity.Outcome {
	board := make([][]entity.Seat, boardSize)
	for i := range board {
		board[i] = make([]entity.Seat, boardSize)
	}
	for _, placed := range moves {
		board[placed.Move.Row][placed.Move.Col] = placed.Seat
	}

	lines := make([][]entity.Seat, 0, 2*boardSize+2)

	for _, row := range board {
		lines = append(lines, row)
	}

	for col := 0; col < boardSize; col++ {
		column := make([]entity.Seat, boardSize)
		for row := 0; row < boardSize; row++ {
			column[row] = board[row][col]
		}
		lines = append(lines, column)
	}

	main := make([]entity.Seat, boardSize)
	anti := make([]entity.Seat, boardSize)
	for i := 0; i < boardSize; i++ {
		main[i] = board[i][i]
		anti[i] = board[boardSize-1-i][i]
	}
	lines = append(lines, main, anti)

	for _, line := range lines {
		if seat, ok := fullLine(line); ok {
			if seat == entity.SeatX {
				return entity.OutcomeXWins
			}
			return entity.OutcomeOWins
		}
	}

	if len(moves) == boardSize*boardSize {
		return entity.OutcomeTie
	}

	return entity.OutcomeOngoing
}

func fullLine(line []entity.Seat) (entity.Seat, bool) {
	first := line[0]
	if first == "" {
		return "", false
	}
	for _, seat := range line[1:] {
		if seat != first {
			return "", false
		}
	}
	return first, true
}
