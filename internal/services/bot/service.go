package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cardtable/nothanks/internal/dependencies/clock"
	"github.com/cardtable/nothanks/internal/dependencies/random"
	"github.com/cardtable/nothanks/internal/engine"
	"github.com/cardtable/nothanks/internal/model"
	"github.com/cardtable/nothanks/internal/services/game"
	"github.com/cardtable/nothanks/internal/services/table"
	"github.com/cardtable/nothanks/internal/storage"
)

const (
	// PlayerIDAlphabet is the character set for generating bot player IDs
	PlayerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// PlayerIDLength is the length of generated bot player IDs
	PlayerIDLength = 16
	// MaxBotIterations is a safety limit for the ProcessBotTurns loop.
	// Chips are conserved so the true bound on decisions per game is far
	// lower, but the loop never trusts that arithmetic.
	MaxBotIterations = 5000
)

// BotActionType represents the type of action a bot took
type BotActionType string

const (
	ActionPassed       BotActionType = "passed"
	ActionTook         BotActionType = "took"
	ActionGameComplete BotActionType = "game_complete"
)

// BotAction represents a single action taken by a bot during ProcessBotTurns
type BotAction struct {
	Type        BotActionType
	PlayerID    model.PlayerID
	Card        model.Card
	ChipsOnCard int
}

// Service manages bot players and drives their turns
type Service struct {
	storage         storage.Storage
	tableController *table.Controller
	gameController  *game.Controller
	clock           clock.Clock
	random          random.Random
	logger          *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	store storage.Storage,
	tableController *table.Controller,
	gameController *game.Controller,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:         store,
		tableController: tableController,
		gameController:  gameController,
		clock:           clk,
		random:          rnd,
		logger:          logger.With(slog.String("component", "bot-service")),
	}
}

// CreateBotPlayer creates a new bot player and saves it to storage
func (s *Service) CreateBotPlayer(ctx context.Context, displayName string, style model.BotStyle) (*model.Player, error) {
	player := &model.Player{
		ID:          model.PlayerID("bot-" + s.random.String(PlayerIDLength, PlayerIDAlphabet)),
		DisplayName: displayName,
		IsGuest:     true,
		IsBot:       true,
		BotStyle:    style,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// AddBotToTable creates a bot player and seats it at the table
// Only the table host can add bots, and only while in waiting state
func (s *Service) AddBotToTable(ctx context.Context, code model.TableCode, requestingPlayerID model.PlayerID, style model.BotStyle) (*model.Player, error) {
	if !model.IsValidBotStyle(style) {
		return nil, model.ErrInvalidBotStyle
	}

	tbl, err := s.tableController.GetTable(ctx, code)
	if err != nil {
		return nil, err
	}

	host := tbl.GetHost()
	if host == nil || host.Player.ID != requestingPlayerID {
		return nil, model.ErrNotHost
	}

	if tbl.State == model.TableStateInGame {
		return nil, model.ErrGameInProgress
	}

	displayName := fmt.Sprintf("Bot %d (%s)", tbl.BotCount()+1, model.BotStyleDisplayName(style))
	bot, err := s.CreateBotPlayer(ctx, displayName, style)
	if err != nil {
		return nil, err
	}

	if err := s.tableController.JoinTable(ctx, code, *bot); err != nil {
		return nil, err
	}

	s.logger.Info("bot added to table",
		slog.String("table_code", string(code)),
		slog.String("bot_id", string(bot.ID)),
		slog.String("bot_style", string(style)),
	)

	return bot, nil
}

// RemoveBotFromTable removes a bot player from the table
// Only the table host can remove bots, and only while in waiting state
func (s *Service) RemoveBotFromTable(ctx context.Context, code model.TableCode, requestingPlayerID model.PlayerID, botPlayerID model.PlayerID) error {
	tbl, err := s.tableController.GetTable(ctx, code)
	if err != nil {
		return err
	}

	host := tbl.GetHost()
	if host == nil || host.Player.ID != requestingPlayerID {
		return model.ErrNotHost
	}

	if tbl.State == model.TableStateInGame {
		return model.ErrGameInProgress
	}

	member := tbl.GetMember(botPlayerID)
	if member == nil {
		return model.ErrNotAtTable
	}
	if !member.Player.IsBot {
		return model.ErrNotBot
	}

	if err := s.tableController.LeaveTable(ctx, code, botPlayerID); err != nil {
		return err
	}
	return s.storage.DeletePlayer(ctx, botPlayerID)
}

// ProcessBotTurns runs bot decisions until the turn reaches a human seat or
// the game ends. It returns the actions taken so handlers can broadcast
// updates. A strategy's pass is re-validated against the live state; if the
// seat cannot actually pass the take is forced.
func (s *Service) ProcessBotTurns(ctx context.Context, gameID model.GameID) ([]BotAction, error) {
	var actions []BotAction

	for i := 0; i < MaxBotIterations; i++ {
		g, err := s.gameController.GetGame(ctx, gameID)
		if err != nil {
			return actions, err
		}

		if g.Status != model.GameStatusPlaying {
			if g.Status == model.GameStatusDone && len(actions) > 0 {
				actions = append(actions, BotAction{Type: ActionGameComplete})
			}
			break
		}

		seat := g.CurrentSeat()
		if seat == nil || !seat.IsBot {
			break // Human's decision
		}

		strategy := StrategyForStyle(seat.BotStyle, s.random)
		decision := strategy.Decide(g)
		if decision == model.ActionPass && !engine.CanPass(g) {
			decision = model.ActionTake
		}

		card := *g.ActiveCard
		pile := g.ChipsOnCard

		switch decision {
		case model.ActionPass:
			if _, err := s.gameController.Pass(ctx, gameID, seat.PlayerID); err != nil {
				return actions, err
			}
			actions = append(actions, BotAction{
				Type:        ActionPassed,
				PlayerID:    seat.PlayerID,
				Card:        card,
				ChipsOnCard: pile + 1,
			})
		case model.ActionTake:
			if _, err := s.gameController.Take(ctx, gameID, seat.PlayerID); err != nil {
				return actions, err
			}
			actions = append(actions, BotAction{
				Type:        ActionTook,
				PlayerID:    seat.PlayerID,
				Card:        card,
				ChipsOnCard: pile,
			})
		}
	}

	return actions, nil
}
