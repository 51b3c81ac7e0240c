package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tictactoe-server/internal/apperror"
	"tictactoe-server/internal/entity"
)

// GameArchive records concluded games. The coordination service itself never
// reads the archive back; live state lives only in the registries.
type GameArchive interface {
	SaveFinished(ctx context.Context, game *entity.Game, outcome entity.Outcome) error
	GetFinished(ctx context.Context, id string) (*ArchivedGame, error)
}

type ArchivedGame struct {
	ID         string              `json:"id"`
	Moves      []entity.PlacedMove `json:"moves"`
	Outcome    entity.Outcome      `json:"outcome"`
	FinishedAt time.Time           `json:"finished_at"`
}

type gameArchive struct {
	client *redis.Client
}

func NewGameArchive(client *redis.Client) GameArchive {
	return &gameArchive{
		client: client,
	}
}

func (that *gameArchive) SaveFinished(ctx context.Context, game *entity.Game, outcome entity.Outcome) error {
	record := ArchivedGame{
		ID:         game.ID,
		Moves:      game.Moves,
		Outcome:    outcome,
		FinishedAt: time.Now().UTC(),
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal archived game: %w", err)
	}

	gameKey := "archive:game:" + game.ID
	if err = that.client.Set(ctx, gameKey, recordJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set archived game: %w", err)
	}

	return nil
}

func (that *gameArchive) GetFinished(ctx context.Context, id string) (*ArchivedGame, error) {
	gameKey := "archive:game:" + id

	response, err := that.client.Get(ctx, gameKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get archived game by ID: %w", err)
	}

	var record ArchivedGame
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal archived game: %w", err)
	}

	return &record, nil
}
