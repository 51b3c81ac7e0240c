package websocket

import (
	"encoding/json"

	"tictactoe-server/internal/entity"
	"tictactoe-server/internal/registry"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	ActionConnect = "connect"

	ActionNewGame         = "new-game"
	ActionNewGameResponse = "new-game-response"

	ActionJoinGame         = "join-game"
	ActionJoinGameResponse = "join-game-response"

	ActionMove         = "move"
	ActionMoveResponse = "move-response"
	ActionMoveForward  = "move-forward"

	ActionGamesAvailable         = "games-available"
	ActionGamesAvailableResponse = "games-available-response"

	ActionKeepAlive = "keep-alive"
	ActionGameOver  = "game-over"
)

type ConnectPayload struct {
	UserID string `json:"userId"`
}

type NewGamePayload struct {
	Player entity.Seat `json:"player,omitempty"`
}

type NewGameResponsePayload struct {
	GameID string      `json:"gameId"`
	Player entity.Seat `json:"player,omitempty"`
}

type JoinGamePayload struct {
	GameID string      `json:"gameId"`
	Player entity.Seat `json:"player,omitempty"`
}

// JoinGameResponsePayload reports the assigned seat; a null player means the
// join failed.
type JoinGameResponsePayload struct {
	GameID string       `json:"gameId"`
	Player *entity.Seat `json:"player"`
}

type MovePayload struct {
	GameID string       `json:"gameId"`
	Move   *entity.Move `json:"move"`
}

type MoveResponsePayload struct {
	Okay bool `json:"okay"`
}

type MoveForwardPayload struct {
	GameID string      `json:"gameId"`
	Move   entity.Move `json:"move"`
}

type GamesAvailablePayload struct {
	Games []registry.GameSummary `json:"games"`
}

type GameOverPayload struct {
	Outcome entity.Outcome `json:"outcome"`
}

func newMessage(action string, payload any) Message {
	message := Message{Action: action}
	if payload != nil {
		message.Payload = json.RawMessage(mustMarshal(payload))
	}
	return message
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
