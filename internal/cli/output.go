package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting and printing of API responses
type Output struct {
	format string
}

// NewOutput creates a new output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) error {
	switch o.format {
	case "json":
		return o.printJSON(data)
	default:
		return o.printText(data)
	}
}

func (o *Output) printJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (o *Output) printText(data any) error {
	switch v := data.(type) {
	case *PlayerResult:
		o.printPlayer(v)
	case *AuthResult:
		o.printAuth(v)
	case *TableResult:
		o.printTable(v)
	case *GameResult:
		o.printGame(v)
	case *ScoresResult:
		o.printScores(v)
	case *ActionResult:
		o.printAction(v)
	case *HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	case string:
		fmt.Println(v)
	default:
		// Fallback to JSON for unknown types
		return o.printJSON(data)
	}
	return nil
}

// PlayerResult mirrors the API player response
type PlayerResult struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
	IsBot       bool   `json:"is_bot,omitempty"`
	BotStyle    string `json:"bot_style,omitempty"`
}

// AuthResult mirrors the API auth response
type AuthResult struct {
	Player       PlayerResult `json:"player"`
	SessionToken string       `json:"session_token"`
}

// TableConfigResult mirrors the API table config
type TableConfigResult struct {
	MaxPlayers int `json:"max_players"`
}

// TableMemberResult mirrors the API table member
type TableMemberResult struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host"`
	IsBot       bool   `json:"is_bot,omitempty"`
	BotStyle    string `json:"bot_style,omitempty"`
}

// GameSummaryResult mirrors the API game summary
type GameSummaryResult struct {
	ID          string         `json:"id"`
	FinalScores map[string]int `json:"final_scores"`
	Winner      *string        `json:"winner"`
	CompletedAt string         `json:"completed_at"`
}

// TableResult mirrors the API table response
type TableResult struct {
	Code        string              `json:"code"`
	State       string              `json:"state"`
	Config      TableConfigResult   `json:"config"`
	Members     []TableMemberResult `json:"members"`
	CurrentGame *string             `json:"current_game"`
	GameHistory []GameSummaryResult `json:"game_history,omitempty"`
}

// SeatResult mirrors the API seat response
type SeatResult struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	IsBot       bool   `json:"is_bot,omitempty"`
	Chips       int    `json:"chips"`
	Cards       []int  `json:"cards"`
}

// ScoreEntryResult mirrors the API score entry
type ScoreEntryResult struct {
	PlayerID    string  `json:"player_id"`
	DisplayName string  `json:"display_name"`
	Total       int     `json:"total"`
	CardPoints  int     `json:"card_points"`
	ChipPoints  int     `json:"chip_points"`
	Runs        [][]int `json:"runs"`
}

// GameResult mirrors the API game state response
type GameResult struct {
	ID            string             `json:"id"`
	Status        string             `json:"status"`
	Seats         []SeatResult       `json:"seats"`
	ActiveCard    *int               `json:"active_card"`
	ChipsOnCard   int                `json:"chips_on_card"`
	DeckRemaining int                `json:"deck_remaining"`
	CurrentTurn   string             `json:"current_turn,omitempty"`
	Scores        []ScoreEntryResult `json:"scores,omitempty"`
	Winner        *string            `json:"winner,omitempty"`
}

// ScoresResult wraps a list of score entries
type ScoresResult struct {
	Scores []ScoreEntryResult `json:"scores"`
	Winner *string            `json:"winner,omitempty"`
}

// ActionResult mirrors the API action response
type ActionResult struct {
	Action string     `json:"action"`
	Game   GameResult `json:"game"`
}

// HealthResult mirrors the API health response
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p *PlayerResult) {
	fmt.Printf("Player ID:    %s\n", p.ID)
	fmt.Printf("Display Name: %s\n", p.DisplayName)
	if p.IsBot {
		fmt.Printf("Bot Style:    %s\n", p.BotStyle)
	} else if p.IsGuest {
		fmt.Println("Type:         guest")
	} else {
		fmt.Println("Type:         registered")
	}
}

func (o *Output) printAuth(a *AuthResult) {
	o.printPlayer(&a.Player)
	fmt.Printf("Token:        %s\n", a.SessionToken)
}

func (o *Output) printTable(t *TableResult) {
	fmt.Printf("Table:       %s\n", t.Code)
	fmt.Printf("State:       %s\n", t.State)
	fmt.Printf("Max Players: %d\n", t.Config.MaxPlayers)
	if t.CurrentGame != nil {
		fmt.Printf("Game:        %s\n", *t.CurrentGame)
	}
	fmt.Printf("Members (%d):\n", len(t.Members))
	for _, m := range t.Members {
		tags := []string{}
		if m.IsHost {
			tags = append(tags, "host")
		}
		if m.IsBot {
			tags = append(tags, "bot:"+m.BotStyle)
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Printf("  %s (%s)%s\n", m.DisplayName, m.PlayerID, suffix)
	}
	if len(t.GameHistory) > 0 {
		fmt.Printf("Completed games: %d\n", len(t.GameHistory))
	}
}

func (o *Output) printGame(g *GameResult) {
	fmt.Printf("Game:   %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	if g.ActiveCard != nil {
		fmt.Printf("Card:   %d (%d chips on it, %d left in deck)\n",
			*g.ActiveCard, g.ChipsOnCard, g.DeckRemaining)
	}
	if g.CurrentTurn != "" {
		fmt.Printf("Turn:   %s\n", g.CurrentTurn)
	}
	fmt.Println("Seats:")
	for _, s := range g.Seats {
		marker := " "
		if s.PlayerID == g.CurrentTurn {
			marker = "*"
		}
		fmt.Printf("%s %s: %d chips, cards %s\n",
			marker, s.DisplayName, s.Chips, formatCards(s.Cards))
	}
	if len(g.Scores) > 0 {
		o.printScores(&ScoresResult{Scores: g.Scores, Winner: g.Winner})
	}
}

func (o *Output) printScores(s *ScoresResult) {
	fmt.Println("Scores:")
	for i, entry := range s.Scores {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Printf("%s %d. %s: %d (cards %d, chips -%d)\n",
			marker, i+1, entry.DisplayName, entry.Total, entry.CardPoints, entry.ChipPoints)
	}
	if s.Winner != nil {
		fmt.Printf("Winner: %s\n", *s.Winner)
	}
}

func (o *Output) printAction(a *ActionResult) {
	fmt.Printf("Action: %s\n", a.Action)
	o.printGame(&a.Game)
}

func formatCards(cards []int) string {
	if len(cards) == 0 {
		return "none"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, ",")
}
