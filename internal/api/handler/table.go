package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardtable/nothanks/internal/api/middleware"
	"github.com/cardtable/nothanks/internal/api/request"
	"github.com/cardtable/nothanks/internal/api/response"
	"github.com/cardtable/nothanks/internal/events"
	"github.com/cardtable/nothanks/internal/model"
	"github.com/cardtable/nothanks/internal/services/bot"
	"github.com/cardtable/nothanks/internal/services/table"
)

// TableHandler handles table-related endpoints
type TableHandler struct {
	tableController *table.Controller
	botService      *bot.Service
	broadcaster     *events.Broadcaster
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableController *table.Controller, botService *bot.Service, broadcaster *events.Broadcaster) *TableHandler {
	return &TableHandler{
		tableController: tableController,
		botService:      botService,
		broadcaster:     broadcaster,
	}
}

// Create handles POST /api/v1/tables
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for default config
		req = request.CreateTableRequest{}
	}

	cfg := model.TableConfig{MaxPlayers: req.MaxPlayers}
	tbl, err := h.tableController.CreateTable(r.Context(), *player, cfg)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TableFromModel(tbl))
}

// Get handles GET /api/v1/tables/{code}
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.TableCode(mux.Vars(r)["code"])

	tbl, err := h.tableController.GetTable(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(tbl))
}

// Join handles POST /api/v1/tables/{code}/join
func (h *TableHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.TableCode(mux.Vars(r)["code"])

	if err := h.tableController.JoinTable(r.Context(), code, *player); err != nil {
		WriteError(w, err)
		return
	}

	tbl, err := h.tableController.GetTable(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.PlayerJoined(code, *player)
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(tbl))
}

// Leave handles POST /api/v1/tables/{code}/leave
func (h *TableHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.TableCode(mux.Vars(r)["code"])

	if err := h.tableController.LeaveTable(r.Context(), code, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.PlayerLeft(code, player.ID, player.DisplayName)
	}

	response.NoContent(w)
}

// TransferHost handles POST /api/v1/tables/{code}/transfer-host
func (h *TableHandler) TransferHost(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.TableCode(mux.Vars(r)["code"])

	var req request.TransferHostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.NewHostID == "" {
		WriteError(w, NewInvalidRequestError("new_host_id is required"))
		return
	}

	newHostID := model.PlayerID(req.NewHostID)
	if err := h.tableController.TransferHost(r.Context(), code, player.ID, newHostID); err != nil {
		WriteError(w, err)
		return
	}

	tbl, err := h.tableController.GetTable(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.HostChanged(code, player.ID, newHostID)
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(tbl))
}

// AddBot handles POST /api/v1/tables/{code}/bots
func (h *TableHandler) AddBot(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.TableCode(mux.Vars(r)["code"])

	var req request.AddBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = request.AddBotRequest{}
	}

	style := model.BotStyle(req.Style)
	if style == "" {
		style = model.DefaultBotStyle
	}

	botPlayer, err := h.botService.AddBotToTable(r.Context(), code, player.ID, style)
	if err != nil {
		WriteError(w, err)
		return
	}

	tbl, err := h.tableController.GetTable(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.PlayerJoined(code, *botPlayer)
	}

	response.JSON(w, http.StatusCreated, response.TableFromModel(tbl))
}

// RemoveBot handles DELETE /api/v1/tables/{code}/bots/{player_id}
func (h *TableHandler) RemoveBot(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	vars := mux.Vars(r)
	code := model.TableCode(vars["code"])
	botPlayerID := model.PlayerID(vars["player_id"])

	if err := h.botService.RemoveBotFromTable(r.Context(), code, player.ID, botPlayerID); err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.PlayerLeft(code, botPlayerID, "")
	}

	response.NoContent(w)
}
