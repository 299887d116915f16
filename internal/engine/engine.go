// Package engine implements the game state machine: deck preparation, the
// pass and take transitions, and end-of-game detection.
//
// Transitions operate on model.Game values and return a new value; the
// input is never mutated. When a transition's preconditions do not hold it
// returns the input unchanged rather than an error. Callers that need to
// distinguish check CanPass/CanTake first.
package engine

import (
	"sort"

	"github.com/cardtable/nothanks/internal/dependencies/random"
	"github.com/cardtable/nothanks/internal/model"
	"github.com/cardtable/nothanks/internal/scoring"
)

// Engine prepares decks and creates games. The random source is injected
// so shuffles are deterministic under a mock in tests.
type Engine struct {
	random random.Random
}

// New creates a new Engine
func New(rnd random.Random) *Engine {
	return &Engine{random: rnd}
}

// PrepareDeck shuffles the full card range and splits it: the first
// RemovedCards cards become the hidden removed pile, the rest the deck.
// A single unbiased Fisher-Yates pass gives both the uniform removal draw
// and the uniform deck order.
func (e *Engine) PrepareDeck() (deck, removed []model.Card) {
	cards := model.FullRange()
	for i := len(cards) - 1; i > 0; i-- {
		j := e.random.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	removed = cards[:model.RemovedCards]
	deck = cards[model.RemovedCards:]
	return deck, removed
}

// NewGame creates the initial state for a match: every seat gets
// StartingChips and an empty hand, the deck and removed pile come from
// PrepareDeck, and the first deck card is revealed as the active card.
func (e *Engine) NewGame(seats []model.SeatConfig) model.Game {
	deck, removed := e.PrepareDeck()

	g := model.Game{
		Status:  model.GameStatusPlaying,
		Seats:   make([]model.Seat, len(seats)),
		Removed: removed,
		Turn:    0,
	}
	for i, cfg := range seats {
		g.Seats[i] = model.Seat{
			PlayerID:    cfg.PlayerID,
			DisplayName: cfg.DisplayName,
			IsBot:       cfg.IsBot,
			BotStyle:    cfg.BotStyle,
			Chips:       model.StartingChips,
			Cards:       []model.Card{},
		}
	}

	first := deck[0]
	g.ActiveCard = &first
	g.Deck = deck[1:]

	return g
}

// CanPass reports whether the current seat may pass the active card:
// the game is live, a card is face up, and the seat has a chip to spend.
func CanPass(g *model.Game) bool {
	return g.Status == model.GameStatusPlaying &&
		g.ActiveCard != nil &&
		g.CurrentSeat() != nil &&
		g.CurrentSeat().Chips > 0
}

// CanTake reports whether the current seat may take the active card
func CanTake(g *model.Game) bool {
	return g.Status == model.GameStatusPlaying && g.ActiveCard != nil
}

// Pass spends one of the current seat's chips onto the active card and
// advances the turn to the next seat. No-op if the seat cannot pass.
func Pass(g model.Game) model.Game {
	if !CanPass(&g) {
		return g
	}

	out := g.Clone()
	out.Seats[out.Turn].Chips--
	out.ChipsOnCard++
	out.Turn = (out.Turn + 1) % len(out.Seats)
	return out
}

// Take gives the active card and the chips on it to the current seat, then
// reveals the next deck card. The turn does not advance: the same seat
// decides on the new card. When the deck is exhausted the game moves to
// done and the score table is computed once. No-op if there is no card.
func Take(g model.Game) model.Game {
	if !CanTake(&g) {
		return g
	}

	out := g.Clone()
	seat := &out.Seats[out.Turn]
	seat.Cards = insertSorted(seat.Cards, *out.ActiveCard)
	seat.Chips += out.ChipsOnCard
	out.ChipsOnCard = 0

	if len(out.Deck) == 0 {
		out.ActiveCard = nil
		out.Status = model.GameStatusDone
		out.Scores = scoring.ComputeScores(out.Seats)
		return out
	}

	next := out.Deck[0]
	out.ActiveCard = &next
	out.Deck = out.Deck[1:]
	return out
}

// insertSorted inserts card into an ascending hand, keeping order
func insertSorted(cards []model.Card, card model.Card) []model.Card {
	i := sort.Search(len(cards), func(i int) bool { return cards[i] >= card })
	cards = append(cards, 0)
	copy(cards[i+1:], cards[i:])
	cards[i] = card
	return cards
}
