package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"tictactoe-server/internal/entity"
)

// Handlers implement the dispatch rules: a structurally invalid payload for a
// known action is dropped with no response, exactly like an unknown action;
// an action that is well-formed but illegal gets a negative acknowledgment.

func (that *Server) handleNewGame(_ context.Context, player *entity.Player, payload json.RawMessage) error {
	log := that.logger.With("method", "handleNewGame", "playerID", player.ID)

	var req NewGamePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			log.Debug("dropping malformed payload", "error", err)
			return nil
		}
		if req.Player != entity.SeatNone && !req.Player.Valid() {
			log.Debug("dropping payload with invalid seat", "seat", req.Player)
			return nil
		}
	}

	game := that.games.CreateGame(player, req.Player)

	resp := NewGameResponsePayload{GameID: game.ID, Player: req.Player}
	if err := player.Send(newMessage(ActionNewGameResponse, resp)); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleJoinGame(_ context.Context, player *entity.Player, payload json.RawMessage) error {
	log := that.logger.With("method", "handleJoinGame", "playerID", player.ID)

	var req JoinGamePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Debug("dropping malformed payload", "error", err)
		return nil
	}
	if req.GameID == "" {
		log.Debug("dropping payload without gameId")
		return nil
	}
	if req.Player != entity.SeatNone && !req.Player.Valid() {
		log.Debug("dropping payload with invalid seat", "seat", req.Player)
		return nil
	}

	resp := JoinGameResponsePayload{GameID: req.GameID}

	seat, err := that.games.JoinGame(req.GameID, player, req.Player)
	if err != nil {
		log.Debug("join refused", "gameID", req.GameID, "error", err)
	} else {
		resp.Player = &seat
		log.Info("player joined game", "gameID", req.GameID, "seat", seat)
	}

	if err = player.Send(newMessage(ActionJoinGameResponse, resp)); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleMove(ctx context.Context, player *entity.Player, payload json.RawMessage) error {
	log := that.logger.With("method", "handleMove", "playerID", player.ID)

	var req MovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Debug("dropping malformed payload", "error", err)
		return nil
	}
	if req.GameID == "" || req.Move == nil {
		log.Debug("dropping payload without gameId or move")
		return nil
	}

	result, err := that.games.ApplyMove(ctx, req.GameID, player.ID, *req.Move)
	if err != nil {
		log.Debug("move rejected", "gameID", req.GameID, "error", err)

		if sendErr := player.Send(newMessage(ActionMoveResponse, MoveResponsePayload{Okay: false})); sendErr != nil {
			return fmt.Errorf("failed to send response: %w", sendErr)
		}
		return nil
	}

	if err = player.Send(newMessage(ActionMoveResponse, MoveResponsePayload{Okay: true})); err != nil {
		log.Error("failed to send response", "error", err)
	}

	if result.Opponent != nil {
		forward := MoveForwardPayload{GameID: req.GameID, Move: *req.Move}
		that.players.Broadcast(newMessage(ActionMoveForward, forward), []*entity.Player{result.Opponent})
	}

	if result.Outcome.IsTerminal() {
		that.players.Broadcast(newMessage(ActionGameOver, GameOverPayload{Outcome: result.Outcome}), result.Players)
		log.Info("game over", "gameID", req.GameID, "outcome", result.Outcome)
	}

	return nil
}

func (that *Server) handleGamesAvailable(_ context.Context, player *entity.Player, _ json.RawMessage) error {
	games := that.games.AvailableGames(player.ID)

	resp := GamesAvailablePayload{Games: games}
	if err := player.Send(newMessage(ActionGamesAvailableResponse, resp)); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// handleKeepAlive - liveness was already refreshed by the read loop; nothing
// goes back on the wire.
func (that *Server) handleKeepAlive(_ context.Context, _ *entity.Player, _ json.RawMessage) error {
	return nil
}
