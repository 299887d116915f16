package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the current phase of a game
type GameStatus string

const (
	GameStatusPlaying   GameStatus = "playing"   // Cards remain; pass/take are live
	GameStatusDone      GameStatus = "done"      // Deck exhausted, scores computed
	GameStatusAbandoned GameStatus = "abandoned" // Game was cancelled
)

// Action is a decision on the active card
type Action string

const (
	ActionPass Action = "pass"
	ActionTake Action = "take"
)

// SeatConfig describes one player joining a new game, in turn order
type SeatConfig struct {
	PlayerID    PlayerID
	DisplayName string
	IsBot       bool
	BotStyle    BotStyle
}

// Seat is a player's per-match state: identity plus chips and held cards.
// Cards is kept in ascending order and only ever grows.
type Seat struct {
	PlayerID    PlayerID
	DisplayName string
	IsBot       bool
	BotStyle    BotStyle
	Chips       int
	Cards       []Card
}

// Clone returns a deep copy of the seat
func (s Seat) Clone() Seat {
	out := s
	out.Cards = make([]Card, len(s.Cards))
	copy(out.Cards, s.Cards)
	return out
}

// HasNeighbor reports whether card is adjacent (±1) to any held card,
// i.e. taking it would extend a run
func (s *Seat) HasNeighbor(card Card) bool {
	for _, c := range s.Cards {
		if c == card-1 || c == card+1 {
			return true
		}
	}
	return false
}

// HandValue is the result of scoring a set of held cards: the point total
// under the lowest-of-run rule, plus the runs themselves for display
type HandValue struct {
	Total int
	Runs  [][]Card
}

// ScoreEntry is one player's final score line
type ScoreEntry struct {
	PlayerID    PlayerID
	DisplayName string
	Total       int // CardPoints - ChipPoints; lower is better
	CardPoints  int
	ChipPoints  int
	Runs        [][]Card
}

// Game is the complete state of one match. Transitions treat it as a
// value: the engine returns a new Game rather than mutating in place.
type Game struct {
	ID        GameID
	TableCode TableCode
	Status    GameStatus

	// Seats in fixed turn order, fixed membership for the match
	Seats []Seat

	// Deck is the undealt remainder; Removed is the hidden pile drawn
	// before play and never revealed
	Deck    []Card
	Removed []Card

	// ActiveCard is the face-up card, nil when none is in play.
	// ChipsOnCard is the pile accumulated from passes on it.
	ActiveCard  *Card
	ChipsOnCard int

	// Turn indexes Seats for the player whose decision is pending
	Turn int

	// Scores is populated exactly once, at the transition to done
	Scores []ScoreEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentSeat returns the seat whose turn it is, or nil for an empty game
func (g *Game) CurrentSeat() *Seat {
	if len(g.Seats) == 0 {
		return nil
	}
	return &g.Seats[g.Turn]
}

// DeckRemaining returns the number of undealt cards
func (g *Game) DeckRemaining() int {
	return len(g.Deck)
}

// Clone returns a deep copy of the game state
func (g Game) Clone() Game {
	out := g
	out.Seats = make([]Seat, len(g.Seats))
	for i, s := range g.Seats {
		out.Seats[i] = s.Clone()
	}
	out.Deck = make([]Card, len(g.Deck))
	copy(out.Deck, g.Deck)
	out.Removed = make([]Card, len(g.Removed))
	copy(out.Removed, g.Removed)
	if g.ActiveCard != nil {
		c := *g.ActiveCard
		out.ActiveCard = &c
	}
	if g.Scores != nil {
		out.Scores = make([]ScoreEntry, len(g.Scores))
		copy(out.Scores, g.Scores)
	}
	return out
}

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	ID          GameID
	FinalScores map[PlayerID]int
	Winner      PlayerID // Seat-order first among the lowest totals
	CompletedAt time.Time
}
