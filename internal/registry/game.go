package registry

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"sync"

	"tictactoe-server/internal/apperror"
	"tictactoe-server/internal/entity"
	"tictactoe-server/internal/tictactoe"
)

// gameArchive records finished games; nil disables archiving.
type gameArchive interface {
	SaveFinished(ctx context.Context, game *entity.Game, outcome entity.Outcome) error
}

// GameSummary is one joinable game, paired with the seat still open.
type GameSummary struct {
	GameID   string      `json:"gameId"`
	OpenSeat entity.Seat `json:"openSeat"`
}

// MoveResult carries everything the caller needs to acknowledge and forward
// an accepted move. Opponent and Players are snapshots taken before a
// terminal game is removed from the registry.
type MoveResult struct {
	Outcome  entity.Outcome
	Opponent *entity.Player
	Players  []*entity.Player
}

// GameRegistry owns the set of live games. Every exported operation is a
// single atomic step behind one mutex; outbound sends and archive writes
// happen only after the mutex is released.
type GameRegistry struct {
	logger  *slog.Logger
	archive gameArchive

	mu    sync.Mutex
	games map[string]*entity.Game
}

func NewGameRegistry(logger *slog.Logger, archive gameArchive) *GameRegistry {
	return &GameRegistry{
		logger:  logger.With("component", "game-registry"),
		archive: archive,
		games:   make(map[string]*entity.Game),
	}
}

// CreateGame - allocates a game with a fresh id. When a valid seat is
// requested, the creator is seated immediately; entity.SeatNone leaves both
// seats open.
func (that *GameRegistry) CreateGame(creator *entity.Player, seat entity.Seat) *entity.Game {
	game := entity.NewGame()

	if creator != nil && seat.Valid() {
		game.SetSeat(seat, creator)
	}

	that.mu.Lock()
	that.games[game.ID] = game
	that.mu.Unlock()

	that.logger.Info("game created", "gameID", game.ID)

	return game
}

// JoinGame - seats the player. A requested seat must be empty; with
// entity.SeatNone the open seat is assigned, or a random one when the game
// is still empty.
func (that *GameRegistry) JoinGame(gameID string, player *entity.Player, requested entity.Seat) (entity.Seat, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[gameID]
	if !ok {
		return entity.SeatNone, apperror.ErrGameNotFound
	}

	if game.HasPlayer(player.ID) {
		return entity.SeatNone, apperror.ErrAlreadyInGame
	}

	if requested.Valid() {
		if !game.SetSeat(requested, player) {
			return entity.SeatNone, apperror.ErrSeatTaken
		}
		return requested, nil
	}

	seat, open := game.OpenSeat()
	if !open {
		return entity.SeatNone, apperror.ErrGameFull
	}

	if len(game.SeatedPlayers()) == 0 {
		seat = randomSeat()
	}

	game.SetSeat(seat, player)

	return seat, nil
}

// AvailableGames - every game with an open seat, excluding games the given
// player already sits in. Sorted by id for stable output.
func (that *GameRegistry) AvailableGames(excludePlayerID string) []GameSummary {
	that.mu.Lock()
	defer that.mu.Unlock()

	summaries := make([]GameSummary, 0, len(that.games))
	for _, game := range that.games {
		if game.HasPlayer(excludePlayerID) {
			continue
		}
		seat, open := game.OpenSeat()
		if !open {
			continue
		}
		summaries = append(summaries, GameSummary{GameID: game.ID, OpenSeat: seat})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].GameID < summaries[j].GameID })

	return summaries
}

// ApplyMove - resolves the player to a seat, validates the move against the
// board rules, records it and re-evaluates the outcome. A terminal outcome
// removes the game from the registry and archives it.
func (that *GameRegistry) ApplyMove(ctx context.Context, gameID, playerID string, move entity.Move) (MoveResult, error) {
	result, finished, err := that.applyMoveLocked(gameID, playerID, move)
	if err != nil {
		return MoveResult{}, err
	}

	if finished != nil && that.archive != nil {
		if err = that.archive.SaveFinished(ctx, finished, result.Outcome); err != nil {
			that.logger.Error("failed to archive finished game", "gameID", finished.ID, "error", err)
		}
	}

	return result, nil
}

func (that *GameRegistry) applyMoveLocked(gameID, playerID string, move entity.Move) (MoveResult, *entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[gameID]
	if !ok {
		return MoveResult{}, nil, apperror.ErrGameNotFound
	}

	seat, ok := game.SeatOf(playerID)
	if !ok {
		return MoveResult{}, nil, apperror.ErrPlayerNotFound
	}

	if !game.IsReady() {
		return MoveResult{}, nil, apperror.ErrGameNotReady
	}

	if err := tictactoe.CheckMove(game.Moves, seat, move, game.BoardSize); err != nil {
		return MoveResult{}, nil, err
	}

	game.Moves = append(game.Moves, entity.PlacedMove{Seat: seat, Move: move})

	result := MoveResult{
		Outcome: tictactoe.Evaluate(game.Moves, game.BoardSize),
		Players: game.SeatedPlayers(),
	}
	if opponent, found := game.Opponent(playerID); found {
		result.Opponent = opponent
	}

	if !result.Outcome.IsTerminal() {
		return result, nil, nil
	}

	delete(that.games, gameID)
	that.logger.Info("game concluded", "gameID", gameID, "outcome", result.Outcome)

	return result, game, nil
}

// DeleteGame - removes the game; no-op when absent.
func (that *GameRegistry) DeleteGame(gameID string) {
	that.mu.Lock()
	delete(that.games, gameID)
	that.mu.Unlock()
}

// DeleteGamesByPlayer - removes every game where the player occupies a seat,
// so no orphaned game with a vanished seat lingers after a disconnect.
func (that *GameRegistry) DeleteGamesByPlayer(playerID string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	deleted := 0
	for id, game := range that.games {
		if game.HasPlayer(playerID) {
			delete(that.games, id)
			deleted++
		}
	}

	if deleted > 0 {
		that.logger.Info("games removed for player", "playerID", playerID, "count", deleted)
	}

	return deleted
}

// Opponent - returns the other seated player.
func (that *GameRegistry) Opponent(gameID, playerID string) (*entity.Player, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[gameID]
	if !ok {
		return nil, false
	}

	return game.Opponent(playerID)
}

// SeatedPlayers - snapshot of the seat occupants, for broadcast targeting.
func (that *GameRegistry) SeatedPlayers(gameID string) []*entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[gameID]
	if !ok {
		return nil
	}

	return game.SeatedPlayers()
}

func randomSeat() entity.Seat {
	if rand.Intn(2) == 0 { //nolint: gosec // seat assignment needs no crypto rand
		return entity.SeatX
	}
	return entity.SeatO
}
