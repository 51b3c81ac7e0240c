package apperror

import "errors"

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameFull      = errors.New("game already has two players")
	ErrSeatTaken     = errors.New("seat is already taken")
	ErrAlreadyInGame = errors.New("player is already in this game")

	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrOutOfBounds  = errors.New("move is out of bounds")
	ErrGameNotReady = errors.New("game is not ready")

	ErrPlayerNotFound = errors.New("player not found")
	ErrNotConnected   = errors.New("player is not connected")
	ErrServerFull     = errors.New("server is full")
)
