package table

import (
	"context"
	"log/slog"

	"github.com/cardtable/nothanks/internal/dependencies/clock"
	"github.com/cardtable/nothanks/internal/dependencies/random"
	"github.com/cardtable/nothanks/internal/model"
	"github.com/cardtable/nothanks/internal/services/game"
	"github.com/cardtable/nothanks/internal/storage"
)

const (
	// TableCodeLength is the length of generated table codes
	TableCodeLength = 6
	// TableCodeAlphabet is the characters used in table codes (avoid confusing chars)
	TableCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller manages table state machine and member operations
type Controller struct {
	storage        storage.Storage
	gameController *game.Controller
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// NewController creates a new TableController
func NewController(
	storage storage.Storage,
	gameController *game.Controller,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		gameController: gameController,
		clock:          clock,
		random:         random,
		logger:         logger,
	}
}

// CreateTable creates a new table with the given player as host. A zero
// config falls back to the defaults; MaxPlayers is clamped to the legal
// range for a match.
func (c *Controller) CreateTable(ctx context.Context, host model.Player, cfg model.TableConfig) (*model.Table, error) {
	if cfg.MaxPlayers == 0 {
		cfg = model.DefaultTableConfig()
	}
	if cfg.MaxPlayers < model.MinTablePlayers {
		cfg.MaxPlayers = model.MinTablePlayers
	}
	if cfg.MaxPlayers > model.MaxTablePlayers {
		cfg.MaxPlayers = model.MaxTablePlayers
	}

	now := c.clock.Now()

	// Generate unique table code
	var code model.TableCode
	for {
		code = model.TableCode(c.random.String(TableCodeLength, TableCodeAlphabet))
		exists, err := c.storage.TableExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	table := &model.Table{
		Code:   code,
		State:  model.TableStateWaiting,
		Config: cfg,
		Members: []model.TableMember{
			{
				Player:   host,
				IsHost:   true,
				JoinedAt: now,
			},
		},
		GameHistory: []model.GameSummary{},
		CurrentGame: nil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storage.SaveTable(ctx, table); err != nil {
		return nil, err
	}

	c.logger.Info("table created",
		slog.String("table_code", string(code)),
		slog.String("host_id", string(host.ID)),
	)

	return table, nil
}

// GetTable retrieves a table by code
func (c *Controller) GetTable(ctx context.Context, code model.TableCode) (*model.Table, error) {
	return c.storage.GetTable(ctx, code)
}

// JoinTable adds a player to a table
func (c *Controller) JoinTable(ctx context.Context, code model.TableCode, player model.Player) error {
	table, err := c.storage.GetTable(ctx, code)
	if err != nil {
		return err
	}

	if table.GetMember(player.ID) != nil {
		return model.ErrAlreadyAtTable
	}
	if table.State == model.TableStateInGame {
		return model.ErrGameInProgress
	}
	if len(table.Members) >= table.Config.MaxPlayers {
		return model.ErrTableFull
	}

	table.Members = append(table.Members, model.TableMember{
		Player:   player,
		IsHost:   false,
		JoinedAt: c.clock.Now(),
	})
	table.UpdatedAt = c.clock.Now()

	return c.storage.SaveTable(ctx, table)
}

// LeaveTable removes a player from a table
func (c *Controller) LeaveTable(ctx context.Context, code model.TableCode, playerID model.PlayerID) error {
	table, err := c.storage.GetTable(ctx, code)
	if err != nil {
		return err
	}

	member := table.GetMember(playerID)
	if member == nil {
		return model.ErrNotAtTable
	}

	wasHost := member.IsHost

	for i, m := range table.Members {
		if m.Player.ID == playerID {
			table.Members = append(table.Members[:i], table.Members[i+1:]...)
			break
		}
	}

	// If the table is now empty (or bots only), tear it down
	if len(table.Members) == table.BotCount() {
		if table.CurrentGame != nil {
			_ = c.gameController.AbandonGame(ctx, *table.CurrentGame)
		}
		return c.storage.DeleteTable(ctx, code)
	}

	// If host left, assign new host (first remaining human)
	if wasHost {
		for i := range table.Members {
			if !table.Members[i].Player.IsBot {
				table.Members[i].IsHost = true
				break
			}
		}
	}

	// A match cannot continue with a seat gone; abandon it
	if table.CurrentGame != nil {
		_ = c.gameController.AbandonGame(ctx, *table.CurrentGame)
		table.State = model.TableStateWaiting
		table.CurrentGame = nil
	}

	table.UpdatedAt = c.clock.Now()
	return c.storage.SaveTable(ctx, table)
}

// TransferHost makes another member the host
func (c *Controller) TransferHost(ctx context.Context, code model.TableCode, requestingPlayer model.PlayerID, newHostID model.PlayerID) error {
	table, err := c.storage.GetTable(ctx, code)
	if err != nil {
		return err
	}

	currentHost := table.GetHost()
	if currentHost == nil || currentHost.Player.ID != requestingPlayer {
		return model.ErrNotHost
	}

	newHost := table.GetMember(newHostID)
	if newHost == nil {
		return model.ErrNotAtTable
	}
	if newHost.Player.IsBot {
		return model.ErrNotBot
	}

	currentHost.IsHost = false
	newHost.IsHost = true
	table.UpdatedAt = c.clock.Now()

	return c.storage.SaveTable(ctx, table)
}

// StartGame begins a new game with the members in join order
func (c *Controller) StartGame(ctx context.Context, code model.TableCode, requestingPlayer model.PlayerID) (*model.Game, error) {
	table, err := c.storage.GetTable(ctx, code)
	if err != nil {
		return nil, err
	}

	host := table.GetHost()
	if host == nil || host.Player.ID != requestingPlayer {
		return nil, model.ErrNotHost
	}
	if table.State == model.TableStateInGame {
		return nil, model.ErrGameInProgress
	}
	if len(table.Members) < model.MinTablePlayers {
		return nil, model.ErrInsufficientPlayers
	}

	seats := make([]model.SeatConfig, len(table.Members))
	for i, m := range table.Members {
		seats[i] = model.SeatConfig{
			PlayerID:    m.Player.ID,
			DisplayName: m.Player.DisplayName,
			IsBot:       m.Player.IsBot,
			BotStyle:    m.Player.BotStyle,
		}
	}

	g, err := c.gameController.CreateGame(ctx, code, seats)
	if err != nil {
		return nil, err
	}

	table.State = model.TableStateInGame
	table.CurrentGame = &g.ID
	table.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveTable(ctx, table); err != nil {
		return nil, err
	}

	return g, nil
}

// AbandonGame ends the current game
func (c *Controller) AbandonGame(ctx context.Context, code model.TableCode, requestingPlayer model.PlayerID) error {
	table, err := c.storage.GetTable(ctx, code)
	if err != nil {
		return err
	}

	host := table.GetHost()
	if host == nil || host.Player.ID != requestingPlayer {
		return model.ErrNotHost
	}
	if table.State != model.TableStateInGame || table.CurrentGame == nil {
		return model.ErrNoGameInProgress
	}

	if err := c.gameController.AbandonGame(ctx, *table.CurrentGame); err != nil {
		return err
	}

	table.State = model.TableStateWaiting
	table.CurrentGame = nil
	table.UpdatedAt = c.clock.Now()

	return c.storage.SaveTable(ctx, table)
}

// CompleteGame records a finished game into table history and returns the
// table to the waiting state
func (c *Controller) CompleteGame(ctx context.Context, code model.TableCode) error {
	table, err := c.storage.GetTable(ctx, code)
	if err != nil {
		return err
	}

	if table.CurrentGame == nil {
		return model.ErrNoGameInProgress
	}

	summary, err := c.gameController.CreateGameSummary(ctx, *table.CurrentGame)
	if err != nil {
		return err
	}

	table.GameHistory = append(table.GameHistory, *summary)
	table.State = model.TableStateWaiting
	table.CurrentGame = nil
	table.UpdatedAt = c.clock.Now()

	return c.storage.SaveTable(ctx, table)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateTable(ctx context.Context, host model.Player, cfg model.TableConfig) (*model.Table, error)
	GetTable(ctx context.Context, code model.TableCode) (*model.Table, error)
	JoinTable(ctx context.Context, code model.TableCode, player model.Player) error
	LeaveTable(ctx context.Context, code model.TableCode, playerID model.PlayerID) error
	TransferHost(ctx context.Context, code model.TableCode, requestingPlayer model.PlayerID, newHostID model.PlayerID) error
	StartGame(ctx context.Context, code model.TableCode, requestingPlayer model.PlayerID) (*model.Game, error)
	AbandonGame(ctx context.Context, code model.TableCode, requestingPlayer model.PlayerID) error
	CompleteGame(ctx context.Context, code model.TableCode) error
}

var _ ControllerInterface = (*Controller)(nil)
