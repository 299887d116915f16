package game

import (
	"context"
	"log/slog"

	"github.com/cardtable/nothanks/internal/dependencies/clock"
	"github.com/cardtable/nothanks/internal/dependencies/random"
	"github.com/cardtable/nothanks/internal/engine"
	"github.com/cardtable/nothanks/internal/model"
	"github.com/cardtable/nothanks/internal/storage"
)

// GameIDLength and GameIDAlphabet control generated game identifiers
const (
	GameIDLength   = 12
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Controller manages game lifecycle on top of the pure engine. The engine
// silently ignores invalid transitions; the controller is the layer that
// turns caller mistakes (wrong player, out of chips, finished game) into
// sentinel errors for the API to map.
type Controller struct {
	storage storage.Storage
	engine  *engine.Engine
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	eng *engine.Engine,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		engine:  eng,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateGame deals a fresh game for the given seats, in turn order
func (c *Controller) CreateGame(ctx context.Context, tableCode model.TableCode, seats []model.SeatConfig) (*model.Game, error) {
	if len(seats) == 0 {
		return nil, model.ErrInsufficientPlayers
	}

	now := c.clock.Now()

	g := c.engine.NewGame(seats)
	g.ID = model.GameID(c.random.String(GameIDLength, GameIDAlphabet))
	g.TableCode = tableCode
	g.CreatedAt = now
	g.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, &g); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(g.ID)),
		slog.String("table_code", string(tableCode)),
		slog.Int("seat_count", len(seats)),
		slog.Int("deck_size", g.DeckRemaining()),
	)

	return &g, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// Pass handles the current player spending a chip to pass the active card
func (c *Controller) Pass(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := c.checkTurn(g, playerID); err != nil {
		return nil, err
	}
	if !engine.CanPass(g) {
		return nil, model.ErrOutOfChips
	}

	next := engine.Pass(*g)
	next.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Take handles the current player taking the active card and its chips
func (c *Controller) Take(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := c.checkTurn(g, playerID); err != nil {
		return nil, err
	}

	next := engine.Take(*g)
	next.UpdatedAt = c.clock.Now()

	if next.Status == model.GameStatusDone {
		c.logger.Info("game finished",
			slog.String("game_id", string(next.ID)),
			slog.String("table_code", string(next.TableCode)),
			slog.String("winner", string(next.Scores[0].PlayerID)),
		)
	}

	if err := c.storage.SaveGame(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// checkTurn validates that the game is live and it is this player's turn
func (c *Controller) checkTurn(g *model.Game, playerID model.PlayerID) error {
	switch g.Status {
	case model.GameStatusDone:
		return model.ErrGameComplete
	case model.GameStatusAbandoned:
		return model.ErrGameAbandoned
	}

	seat := g.CurrentSeat()
	if seat == nil || seat.PlayerID != playerID {
		return model.ErrNotPlayerTurn
	}
	return nil
}

// AbandonGame ends a game prematurely
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID) error {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if g.Status != model.GameStatusPlaying {
		return nil // Already finished
	}

	g.Status = model.GameStatusAbandoned
	g.UpdatedAt = c.clock.Now()

	c.logger.Info("game abandoned",
		slog.String("game_id", string(gameID)),
		slog.String("table_code", string(g.TableCode)),
	)

	return c.storage.SaveGame(ctx, g)
}

// Scores returns the final score table for a finished game
func (c *Controller) Scores(ctx context.Context, gameID model.GameID) ([]model.ScoreEntry, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if g.Status != model.GameStatusDone {
		return nil, model.ErrGameInProgress
	}
	return g.Scores, nil
}

// CreateGameSummary creates a summary record for a completed game
func (c *Controller) CreateGameSummary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error) {
	scores, err := c.Scores(ctx, gameID)
	if err != nil {
		return nil, err
	}

	finalScores := make(map[model.PlayerID]int, len(scores))
	for _, s := range scores {
		finalScores[s.PlayerID] = s.Total
	}

	return &model.GameSummary{
		ID:          gameID,
		FinalScores: finalScores,
		Winner:      scores[0].PlayerID,
		CompletedAt: c.clock.Now(),
	}, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, tableCode model.TableCode, seats []model.SeatConfig) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	Pass(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	Take(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	AbandonGame(ctx context.Context, gameID model.GameID) error
	Scores(ctx context.Context, gameID model.GameID) ([]model.ScoreEntry, error)
	CreateGameSummary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error)
}

var _ ControllerInterface = (*Controller)(nil)
