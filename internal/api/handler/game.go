package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardtable/nothanks/internal/api/middleware"
	"github.com/cardtable/nothanks/internal/api/request"
	"github.com/cardtable/nothanks/internal/api/response"
	"github.com/cardtable/nothanks/internal/events"
	"github.com/cardtable/nothanks/internal/model"
	"github.com/cardtable/nothanks/internal/services/bot"
	"github.com/cardtable/nothanks/internal/services/game"
	"github.com/cardtable/nothanks/internal/services/table"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	tableController *table.Controller
	gameController  *game.Controller
	botService      *bot.Service
	broadcaster     *events.Broadcaster
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	tableController *table.Controller,
	gameController *game.Controller,
	botService *bot.Service,
	broadcaster *events.Broadcaster,
) *GameHandler {
	return &GameHandler{
		tableController: tableController,
		gameController:  gameController,
		botService:      botService,
		broadcaster:     broadcaster,
	}
}

// Start handles POST /api/v1/tables/{code}/game
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.TableCode(mux.Vars(r)["code"])

	g, err := h.tableController.StartGame(r.Context(), code, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.GameStarted(code, g)
	}

	// Bots seated before the first human act immediately
	h.processBotTurns(r.Context(), g.ID, code)

	g, err = h.gameController.GetGame(r.Context(), g.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromModel(g))
}

// Get handles GET /api/v1/tables/{code}/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.TableCode(mux.Vars(r)["code"])

	g, err := h.currentGame(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// Action handles POST /api/v1/tables/{code}/game/action
func (h *GameHandler) Action(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.TableCode(mux.Vars(r)["code"])

	var req request.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	action := model.Action(req.Action)
	if action != model.ActionPass && action != model.ActionTake {
		WriteError(w, NewInvalidRequestError("action must be pass or take"))
		return
	}

	g, err := h.currentGame(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	var card model.Card
	if g.ActiveCard != nil {
		card = *g.ActiveCard
	}
	pile := g.ChipsOnCard

	switch action {
	case model.ActionPass:
		g, err = h.gameController.Pass(r.Context(), g.ID, player.ID)
	case model.ActionTake:
		g, err = h.gameController.Take(r.Context(), g.ID, player.ID)
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		switch action {
		case model.ActionPass:
			h.broadcaster.CardPassed(code, g, player.ID, card)
		case model.ActionTake:
			h.broadcaster.CardTaken(code, g, player.ID, card, pile)
		}
	}

	if g.Status == model.GameStatusDone {
		h.finishGame(r.Context(), code, g)
	} else {
		h.processBotTurns(r.Context(), g.ID, code)
		g, err = h.gameController.GetGame(r.Context(), g.ID)
		if err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, response.ActionResponse{
		Action: string(action),
		Game:   response.GameStateFromModel(g),
	})
}

// Scores handles GET /api/v1/tables/{code}/game/scores
// Works for the live game or, once it has been filed into history, the
// most recently completed one.
func (h *GameHandler) Scores(w http.ResponseWriter, r *http.Request) {
	code := model.TableCode(mux.Vars(r)["code"])

	tbl, err := h.tableController.GetTable(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	var gameID model.GameID
	switch {
	case tbl.CurrentGame != nil:
		gameID = *tbl.CurrentGame
	case len(tbl.GameHistory) > 0:
		gameID = tbl.GameHistory[len(tbl.GameHistory)-1].ID
	default:
		WriteError(w, model.ErrNoGameInProgress)
		return
	}

	scores, err := h.gameController.Scores(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := make([]response.ScoreEntry, len(scores))
	for i, s := range scores {
		resp[i] = response.ScoreEntryFromModel(s)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Abandon handles DELETE /api/v1/tables/{code}/game
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.TableCode(mux.Vars(r)["code"])

	tbl, err := h.tableController.GetTable(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	gameID := tbl.CurrentGame

	if err := h.tableController.AbandonGame(r.Context(), code, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil && gameID != nil {
		h.broadcaster.GameAbandoned(code, *gameID, "abandoned by host")
	}

	response.NoContent(w)
}

// currentGame resolves the table's in-flight game
func (h *GameHandler) currentGame(ctx context.Context, code model.TableCode) (*model.Game, error) {
	tbl, err := h.tableController.GetTable(ctx, code)
	if err != nil {
		return nil, err
	}
	if tbl.CurrentGame == nil {
		// A finished game stays readable through its history record, but
		// the live endpoints need an active game
		return nil, model.ErrNoGameInProgress
	}
	return h.gameController.GetGame(ctx, *tbl.CurrentGame)
}

// processBotTurns runs bot decisions and broadcasts the resulting actions
func (h *GameHandler) processBotTurns(ctx context.Context, gameID model.GameID, code model.TableCode) {
	if h.botService == nil {
		return
	}

	actions, err := h.botService.ProcessBotTurns(ctx, gameID)
	if err != nil || len(actions) == 0 {
		return
	}

	for _, action := range actions {
		switch action.Type {
		case bot.ActionPassed:
			if h.broadcaster != nil {
				h.broadcaster.Publish(model.Event{
					Type:      model.EventCardPassed,
					TableCode: code,
					GameID:    gameID,
					PlayerID:  action.PlayerID,
					Payload: model.CardPassedPayload{
						PlayerID:    action.PlayerID,
						Card:        action.Card,
						ChipsOnCard: action.ChipsOnCard,
					},
				})
			}
		case bot.ActionTook:
			if h.broadcaster != nil {
				h.broadcaster.Publish(model.Event{
					Type:      model.EventCardTaken,
					TableCode: code,
					GameID:    gameID,
					PlayerID:  action.PlayerID,
					Payload: model.CardTakenPayload{
						PlayerID: action.PlayerID,
						Card:     action.Card,
						ChipsWon: action.ChipsOnCard,
					},
				})
			}
		case bot.ActionGameComplete:
			g, err := h.gameController.GetGame(ctx, gameID)
			if err == nil {
				h.finishGame(ctx, code, g)
			}
		}
	}
}

// finishGame records the completed game on the table and broadcasts scores
func (h *GameHandler) finishGame(ctx context.Context, code model.TableCode, g *model.Game) {
	if h.broadcaster != nil {
		h.broadcaster.GameComplete(code, g)
	}
	_ = h.tableController.CompleteGame(ctx, code)
}
