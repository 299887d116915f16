package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardtable/nothanks/internal/api/middleware"
	"github.com/cardtable/nothanks/internal/events"
	"github.com/cardtable/nothanks/internal/model"
	"github.com/cardtable/nothanks/internal/services/table"
)

// EventsHandler handles the SSE stream for table events
type EventsHandler struct {
	tableController *table.Controller
	hubManager      *events.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(tableController *table.Controller, hubManager *events.HubManager) *EventsHandler {
	return &EventsHandler{
		tableController: tableController,
		hubManager:      hubManager,
	}
}

// Stream handles GET /api/v1/tables/{code}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.TableCode(mux.Vars(r)["code"])

	tbl, err := h.tableController.GetTable(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	if tbl.GetMember(player.ID) == nil {
		WriteError(w, model.ErrNotAtTable)
		return
	}

	hub := h.hubManager.GetOrCreateHub(code)
	events.ServeSSE(w, r, hub, player.ID)
}
