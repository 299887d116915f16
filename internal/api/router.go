package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardtable/nothanks/internal/api/handler"
	"github.com/cardtable/nothanks/internal/api/middleware"
	"github.com/cardtable/nothanks/internal/events"
	"github.com/cardtable/nothanks/internal/services/auth"
	"github.com/cardtable/nothanks/internal/services/bot"
	"github.com/cardtable/nothanks/internal/services/game"
	"github.com/cardtable/nothanks/internal/services/table"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	TableController *table.Controller
	GameController  *game.Controller
	BotService      *bot.Service
	HubManager      *events.HubManager
	Broadcaster     *events.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	tableHandler := handler.NewTableHandler(cfg.TableController, cfg.BotService, cfg.Broadcaster)
	gameHandler := handler.NewGameHandler(cfg.TableController, cfg.GameController, cfg.BotService, cfg.Broadcaster)
	eventsHandler := handler.NewEventsHandler(cfg.TableController, cfg.HubManager)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Table routes (all require auth)
	tables := api.PathPrefix("/tables").Subrouter()
	tables.Use(authMiddleware)
	tables.HandleFunc("", tableHandler.Create).Methods(http.MethodPost)
	tables.HandleFunc("/{code}", tableHandler.Get).Methods(http.MethodGet)
	tables.HandleFunc("/{code}/join", tableHandler.Join).Methods(http.MethodPost)
	tables.HandleFunc("/{code}/leave", tableHandler.Leave).Methods(http.MethodPost)
	tables.HandleFunc("/{code}/transfer-host", tableHandler.TransferHost).Methods(http.MethodPost)
	tables.HandleFunc("/{code}/bots", tableHandler.AddBot).Methods(http.MethodPost)
	tables.HandleFunc("/{code}/bots/{player_id}", tableHandler.RemoveBot).Methods(http.MethodDelete)

	// Game routes (all require auth)
	tables.HandleFunc("/{code}/game", gameHandler.Start).Methods(http.MethodPost)
	tables.HandleFunc("/{code}/game", gameHandler.Get).Methods(http.MethodGet)
	tables.HandleFunc("/{code}/game", gameHandler.Abandon).Methods(http.MethodDelete)
	tables.HandleFunc("/{code}/game/action", gameHandler.Action).Methods(http.MethodPost)
	tables.HandleFunc("/{code}/game/scores", gameHandler.Scores).Methods(http.MethodGet)

	// Event stream
	tables.HandleFunc("/{code}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
