package response

import (
	"time"

	"github.com/cardtable/nothanks/internal/model"
	"github.com/cardtable/nothanks/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
	IsBot       bool   `json:"is_bot,omitempty"`
	BotStyle    string `json:"bot_style,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
		IsBot:       p.IsBot,
		BotStyle:    string(p.BotStyle),
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// TableConfig represents table configuration
type TableConfig struct {
	MaxPlayers int `json:"max_players"`
}

// TableConfigFromModel converts model.TableConfig
func TableConfigFromModel(c model.TableConfig) TableConfig {
	return TableConfig{
		MaxPlayers: c.MaxPlayers,
	}
}

// TableMember represents a table member
type TableMember struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host"`
	IsBot       bool   `json:"is_bot,omitempty"`
	BotStyle    string `json:"bot_style,omitempty"`
}

// TableMemberFromModel converts model.TableMember
func TableMemberFromModel(m model.TableMember) TableMember {
	return TableMember{
		PlayerID:    string(m.Player.ID),
		DisplayName: m.Player.DisplayName,
		IsHost:      m.IsHost,
		IsBot:       m.Player.IsBot,
		BotStyle:    string(m.Player.BotStyle),
	}
}

// GameSummary represents a completed game summary
type GameSummary struct {
	ID          string         `json:"id"`
	FinalScores map[string]int `json:"final_scores"`
	Winner      *string        `json:"winner"`
	CompletedAt time.Time      `json:"completed_at"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(g model.GameSummary) GameSummary {
	scores := make(map[string]int, len(g.FinalScores))
	for pid, score := range g.FinalScores {
		scores[string(pid)] = score
	}
	var winner *string
	if g.Winner != "" {
		w := string(g.Winner)
		winner = &w
	}
	return GameSummary{
		ID:          string(g.ID),
		FinalScores: scores,
		Winner:      winner,
		CompletedAt: g.CompletedAt,
	}
}

// Table represents a table in API responses
type Table struct {
	Code        string        `json:"code"`
	State       string        `json:"state"`
	Config      TableConfig   `json:"config"`
	Members     []TableMember `json:"members"`
	CurrentGame *string       `json:"current_game"`
	GameHistory []GameSummary `json:"game_history,omitempty"`
}

// TableFromModel converts model.Table
func TableFromModel(t *model.Table) Table {
	members := make([]TableMember, len(t.Members))
	for i, m := range t.Members {
		members[i] = TableMemberFromModel(m)
	}

	history := make([]GameSummary, len(t.GameHistory))
	for i, g := range t.GameHistory {
		history[i] = GameSummaryFromModel(g)
	}

	var currentGame *string
	if t.CurrentGame != nil {
		g := string(*t.CurrentGame)
		currentGame = &g
	}

	return Table{
		Code:        string(t.Code),
		State:       string(t.State),
		Config:      TableConfigFromModel(t.Config),
		Members:     members,
		CurrentGame: currentGame,
		GameHistory: history,
	}
}

// Seat represents a player's in-game state
type Seat struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	IsBot       bool   `json:"is_bot,omitempty"`
	Chips       int    `json:"chips"`
	Cards       []int  `json:"cards"`
}

// SeatFromModel converts model.Seat
func SeatFromModel(s model.Seat) Seat {
	cards := make([]int, len(s.Cards))
	for i, c := range s.Cards {
		cards[i] = int(c)
	}
	return Seat{
		PlayerID:    string(s.PlayerID),
		DisplayName: s.DisplayName,
		IsBot:       s.IsBot,
		Chips:       s.Chips,
		Cards:       cards,
	}
}

// ScoreEntry represents a player's final score line
type ScoreEntry struct {
	PlayerID    string  `json:"player_id"`
	DisplayName string  `json:"display_name"`
	Total       int     `json:"total"`
	CardPoints  int     `json:"card_points"`
	ChipPoints  int     `json:"chip_points"`
	Runs        [][]int `json:"runs"`
}

// ScoreEntryFromModel converts model.ScoreEntry
func ScoreEntryFromModel(s model.ScoreEntry) ScoreEntry {
	runs := make([][]int, len(s.Runs))
	for i, run := range s.Runs {
		runs[i] = make([]int, len(run))
		for j, c := range run {
			runs[i][j] = int(c)
		}
	}
	return ScoreEntry{
		PlayerID:    string(s.PlayerID),
		DisplayName: s.DisplayName,
		Total:       s.Total,
		CardPoints:  s.CardPoints,
		ChipPoints:  s.ChipPoints,
		Runs:        runs,
	}
}

// GameState represents the current game state. The undealt deck and the
// removed pile are never serialized; clients only learn how many cards
// remain.
type GameState struct {
	ID            string       `json:"id"`
	Status        string       `json:"status"`
	Seats         []Seat       `json:"seats"`
	ActiveCard    *int         `json:"active_card"`
	ChipsOnCard   int          `json:"chips_on_card"`
	DeckRemaining int          `json:"deck_remaining"`
	CurrentTurn   string       `json:"current_turn,omitempty"`
	Scores        []ScoreEntry `json:"scores,omitempty"`
	Winner        *string      `json:"winner,omitempty"`
}

// GameStateFromModel converts model.Game to response GameState
func GameStateFromModel(g *model.Game) GameState {
	seats := make([]Seat, len(g.Seats))
	for i, s := range g.Seats {
		seats[i] = SeatFromModel(s)
	}

	var activeCard *int
	if g.ActiveCard != nil {
		c := int(*g.ActiveCard)
		activeCard = &c
	}

	var currentTurn string
	if g.Status == model.GameStatusPlaying {
		if seat := g.CurrentSeat(); seat != nil {
			currentTurn = string(seat.PlayerID)
		}
	}

	var scores []ScoreEntry
	var winner *string
	if g.Status == model.GameStatusDone && len(g.Scores) > 0 {
		scores = make([]ScoreEntry, len(g.Scores))
		for i, s := range g.Scores {
			scores[i] = ScoreEntryFromModel(s)
		}
		w := string(g.Scores[0].PlayerID)
		winner = &w
	}

	return GameState{
		ID:            string(g.ID),
		Status:        string(g.Status),
		Seats:         seats,
		ActiveCard:    activeCard,
		ChipsOnCard:   g.ChipsOnCard,
		DeckRemaining: g.DeckRemaining(),
		CurrentTurn:   currentTurn,
		Scores:        scores,
		Winner:        winner,
	}
}

// ActionResponse is the response after a pass or take decision
type ActionResponse struct {
	Action string    `json:"action"`
	Game   GameState `json:"game"`
}
