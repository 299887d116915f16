package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/nothanks/internal/api"
	"github.com/cardtable/nothanks/internal/api/response"
	"github.com/cardtable/nothanks/internal/factory"
	"github.com/cardtable/nothanks/internal/model"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use the production factory with
	// real random/clock and in-memory storage
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		TableController: app.TableController,
		GameController:  app.GameController,
		BotService:      app.BotService,
		HubManager:      app.HubManager,
		Broadcaster:     app.Broadcaster,
	})

	return &testServer{handler: router}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// guest creates a guest player and returns its token and player ID
func (ts *testServer) guest(t *testing.T, name string) (string, string) {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{"display_name": name}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken, resp.Player.ID
}

// table creates a table as the given player and returns its code
func (ts *testServer) table(t *testing.T, token string) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/tables", nil, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Table
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{"display_name": "Alice"}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestCreateGuestPlayerRequiresName(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registerResp))
	assert.False(t, registerResp.Player.IsGuest)

	// Duplicate username
	rr = ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_EXISTS")

	// Login
	loginBody := map[string]string{"username": "alice", "password": "secret123"}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)

	// Wrong password
	rr = ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{"username": "alice", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	token, playerID := ts.guest(t, "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, playerID, resp.ID)
}

func TestProtectedRouteRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/tables", nil, "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTableLifecycle(t *testing.T) {
	ts := newTestServer(t)
	hostToken, hostID := ts.guest(t, "Alice")
	guestToken, guestID := ts.guest(t, "Bob")

	code := ts.table(t, hostToken)
	require.Len(t, code, 6)

	// Join
	rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/join", nil, guestToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var tbl response.Table
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tbl))
	require.Len(t, tbl.Members, 2)
	assert.True(t, tbl.Members[0].IsHost)
	assert.Equal(t, hostID, tbl.Members[0].PlayerID)

	// Joining twice fails
	rr = ts.request(http.MethodPost, "/api/v1/tables/"+code+"/join", nil, guestToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ALREADY_AT_TABLE")

	// Transfer host
	rr = ts.request(http.MethodPost, "/api/v1/tables/"+code+"/transfer-host",
		map[string]string{"new_host_id": guestID}, hostToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tbl))
	for _, m := range tbl.Members {
		assert.Equal(t, m.PlayerID == guestID, m.IsHost)
	}

	// Leave
	rr = ts.request(http.MethodPost, "/api/v1/tables/"+code+"/leave", nil, hostToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/tables/"+code, nil, guestToken)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tbl))
	assert.Len(t, tbl.Members, 1)
}

func TestGetMissingTable(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.guest(t, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/tables/ZZZZZZ", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "TABLE_NOT_FOUND")
}

func TestBotManagement(t *testing.T) {
	ts := newTestServer(t)
	hostToken, _ := ts.guest(t, "Alice")
	code := ts.table(t, hostToken)

	// Add a bot
	rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/bots",
		map[string]string{"style": "greedy"}, hostToken)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var tbl response.Table
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tbl))
	require.Len(t, tbl.Members, 2)
	assert.True(t, tbl.Members[1].IsBot)
	assert.Equal(t, "greedy", tbl.Members[1].BotStyle)
	assert.Equal(t, "Bot 1 (Greedy)", tbl.Members[1].DisplayName)

	// Invalid style
	rr = ts.request(http.MethodPost, "/api/v1/tables/"+code+"/bots",
		map[string]string{"style": "unstoppable"}, hostToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_BOT_STYLE")

	// Remove the bot
	botID := tbl.Members[1].PlayerID
	rr = ts.request(http.MethodDelete, "/api/v1/tables/"+code+"/bots/"+botID, nil, hostToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/tables/"+code, nil, hostToken)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tbl))
	assert.Len(t, tbl.Members, 1)
}

func TestOnlyHostAddsBots(t *testing.T) {
	ts := newTestServer(t)
	hostToken, _ := ts.guest(t, "Alice")
	guestToken, _ := ts.guest(t, "Bob")
	code := ts.table(t, hostToken)

	rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/join", nil, guestToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/tables/"+code+"/bots", nil, guestToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_HOST")
}

func TestStartGameRequiresEnoughPlayers(t *testing.T) {
	ts := newTestServer(t)
	hostToken, _ := ts.guest(t, "Alice")
	code := ts.table(t, hostToken)

	rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/game", nil, hostToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "INSUFFICIENT_PLAYERS")

	// Non-host cannot start even with enough players
	bobToken, _ := ts.guest(t, "Bob")
	carolToken, _ := ts.guest(t, "Carol")
	for _, token := range []string{bobToken, carolToken} {
		joined := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/join", nil, token)
		require.Equal(t, http.StatusOK, joined.Code)
	}
	rr = ts.request(http.MethodPost, "/api/v1/tables/"+code+"/game", nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_HOST")
}

// setupGame seats three humans at a table and starts a game, returning the
// table code, the initial game state and the tokens in seat order
func setupGame(t *testing.T, ts *testServer) (string, response.GameState, []string) {
	t.Helper()

	hostToken, _ := ts.guest(t, "Alice")
	bobToken, _ := ts.guest(t, "Bob")
	carolToken, _ := ts.guest(t, "Carol")
	code := ts.table(t, hostToken)

	for _, token := range []string{bobToken, carolToken} {
		rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/join", nil, token)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/game", nil, hostToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var game response.GameState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	return code, game, []string{hostToken, bobToken, carolToken}
}

func TestStartGameDealsCorrectly(t *testing.T) {
	ts := newTestServer(t)
	_, game, _ := setupGame(t, ts)

	assert.Equal(t, "playing", game.Status)
	require.Len(t, game.Seats, 3)
	for _, seat := range game.Seats {
		assert.Equal(t, model.StartingChips, seat.Chips)
		assert.Empty(t, seat.Cards)
	}
	require.NotNil(t, game.ActiveCard)
	assert.GreaterOrEqual(t, *game.ActiveCard, int(model.MinCard))
	assert.LessOrEqual(t, *game.ActiveCard, int(model.MaxCard))
	assert.Equal(t, model.DeckSize-1, game.DeckRemaining)
	assert.Equal(t, game.Seats[0].PlayerID, game.CurrentTurn)
}

func TestPassAndTakeActions(t *testing.T) {
	ts := newTestServer(t)
	code, game, tokens := setupGame(t, ts)
	card := *game.ActiveCard

	// Alice passes: chip to the pile, turn to Bob
	rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/game/action",
		map[string]string{"action": "pass"}, tokens[0])
	assert.Equal(t, http.StatusOK, rr.Code)

	var action response.ActionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &action))
	assert.Equal(t, "pass", action.Action)
	assert.Equal(t, model.StartingChips-1, action.Game.Seats[0].Chips)
	assert.Equal(t, 1, action.Game.ChipsOnCard)
	assert.Equal(t, action.Game.Seats[1].PlayerID, action.Game.CurrentTurn)

	// Bob takes: card plus chip, Bob keeps the turn
	rr = ts.request(http.MethodPost, "/api/v1/tables/"+code+"/game/action",
		map[string]string{"action": "take"}, tokens[1])
	assert.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &action))
	assert.Equal(t, []int{card}, action.Game.Seats[1].Cards)
	assert.Equal(t, model.StartingChips+1, action.Game.Seats[1].Chips)
	assert.Equal(t, 0, action.Game.ChipsOnCard)
	assert.Equal(t, action.Game.Seats[1].PlayerID, action.Game.CurrentTurn)
}

func TestActionOutOfTurnFails(t *testing.T) {
	ts := newTestServer(t)
	code, _, tokens := setupGame(t, ts)

	rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/game/action",
		map[string]string{"action": "pass"}, tokens[2])
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_YOUR_TURN")
}

func TestInvalidActionFails(t *testing.T) {
	ts := newTestServer(t)
	code, _, tokens := setupGame(t, ts)

	rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/game/action",
		map[string]string{"action": "fold"}, tokens[0])
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestFullGameToCompletion(t *testing.T) {
	ts := newTestServer(t)
	code, _, tokens := setupGame(t, ts)

	// Alice takes every card until the deck is exhausted
	var action response.ActionResponse
	for i := 0; i < model.DeckSize; i++ {
		rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/game/action",
			map[string]string{"action": "take"}, tokens[0])
		require.Equal(t, http.StatusOK, rr.Code, "take %d failed: %s", i, rr.Body.String())
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &action))
	}

	assert.Equal(t, "done", action.Game.Status)
	assert.Nil(t, action.Game.ActiveCard)
	assert.Len(t, action.Game.Seats[0].Cards, model.DeckSize)

	// Scores are ascending; Bob and Carol kept all their chips
	require.Len(t, action.Game.Scores, 3)
	for i := 1; i < len(action.Game.Scores); i++ {
		assert.LessOrEqual(t, action.Game.Scores[i-1].Total, action.Game.Scores[i].Total)
	}
	assert.Equal(t, -model.StartingChips, action.Game.Scores[0].Total)
	require.NotNil(t, action.Game.Winner)
	assert.Equal(t, action.Game.Scores[0].PlayerID, *action.Game.Winner)

	// The finished game is filed into table history
	rr := ts.request(http.MethodGet, "/api/v1/tables/"+code, nil, tokens[0])
	require.Equal(t, http.StatusOK, rr.Code)

	var tbl response.Table
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tbl))
	assert.Equal(t, "waiting", tbl.State)
	assert.Nil(t, tbl.CurrentGame)
	require.Len(t, tbl.GameHistory, 1)

	// Scores remain queryable after completion
	rr = ts.request(http.MethodGet, "/api/v1/tables/"+code+"/game/scores", nil, tokens[0])
	assert.Equal(t, http.StatusOK, rr.Code)

	var scores []response.ScoreEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	assert.Len(t, scores, 3)
}

func TestGameWithBotsPlaysBotTurns(t *testing.T) {
	ts := newTestServer(t)
	hostToken, _ := ts.guest(t, "Alice")
	code := ts.table(t, hostToken)

	for i := 0; i < 2; i++ {
		rr := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/tables/%s/bots", code),
			map[string]string{"style": "greedy"}, hostToken)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := ts.request(http.MethodPost, "/api/v1/tables/"+code+"/game", nil, hostToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var game response.GameState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))

	// Alice passes while she has chips so the bots get turns to play.
	// The bot turns must be fully resolved before each response returns.
	for game.Status == "playing" {
		require.Equal(t, game.Seats[0].PlayerID, game.CurrentTurn,
			"turn must be back with the human between actions")

		act := "take"
		if game.Seats[0].Chips > 0 {
			act = "pass"
		}
		rr = ts.request(http.MethodPost, "/api/v1/tables/"+code+"/game/action",
			map[string]string{"action": act}, hostToken)
		require.Equal(t, http.StatusOK, rr.Code)

		var action response.ActionResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &action))
		game = action.Game
	}

	assert.Equal(t, "done", game.Status)
	assert.Len(t, game.Scores, 3)
}

func TestAbandonGame(t *testing.T) {
	ts := newTestServer(t)
	code, _, tokens := setupGame(t, ts)

	// Non-host cannot abandon
	rr := ts.request(http.MethodDelete, "/api/v1/tables/"+code+"/game", nil, tokens[1])
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/tables/"+code+"/game", nil, tokens[0])
	assert.Equal(t, http.StatusNoContent, rr.Code)

	var tbl response.Table
	rr = ts.request(http.MethodGet, "/api/v1/tables/"+code, nil, tokens[0])
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tbl))
	assert.Equal(t, "waiting", tbl.State)
	assert.Nil(t, tbl.CurrentGame)

	// No game to fetch anymore
	rr = ts.request(http.MethodGet, "/api/v1/tables/"+code+"/game", nil, tokens[0])
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "NO_GAME_IN_PROGRESS")
}
