package bot

import (
	"github.com/cardtable/nothanks/internal/dependencies/random"
	"github.com/cardtable/nothanks/internal/model"
	"github.com/cardtable/nothanks/internal/scoring"
)

// Strategy decides pass or take for the current seat of a game. Strategies
// never mutate state; the caller applies the decision through the game
// controller, re-checking CanPass before honoring a pass.
type Strategy interface {
	Decide(g *model.Game) model.Action
}

// signals are the shared inputs every style evaluates
type signals struct {
	// delta is the marginal cost of taking now: projected score minus the
	// score if the game ended with the current hand. Negative means taking
	// improves the final score.
	delta       int
	runLink     bool // active card is adjacent to a held card
	chipsOnCard int
	deckLeft    int
}

func computeSignals(g *model.Game) signals {
	seat := g.CurrentSeat()
	base := scoring.CardPoints(seat.Cards).Total - seat.Chips
	projected := scoring.ProjectedScore(*seat, *g.ActiveCard, g.ChipsOnCard)
	return signals{
		delta:       projected - base,
		runLink:     seat.HasNeighbor(*g.ActiveCard),
		chipsOnCard: g.ChipsOnCard,
		deckLeft:    g.DeckRemaining(),
	}
}

// forcedTake holds when passing is impossible: no card in play, or the
// seat has no chip to pass with
func forcedTake(g *model.Game) bool {
	seat := g.CurrentSeat()
	return g.ActiveCard == nil || seat == nil || seat.Chips == 0
}

// StrategyForStyle returns the strategy implementing the given style,
// falling back to standard for unknown styles
func StrategyForStyle(style model.BotStyle, rnd random.Random) Strategy {
	switch style {
	case model.BotStyleEasy:
		return NewEasyStrategy(rnd)
	case model.BotStyleGreedy:
		return NewGreedyStrategy()
	default:
		return NewStandardStrategy()
	}
}

// GreedyStrategy grabs cards aggressively: any run extension, any cheap
// card, any fat chip pile.
type GreedyStrategy struct{}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy() *GreedyStrategy {
	return &GreedyStrategy{}
}

// Decide implements Strategy
func (s *GreedyStrategy) Decide(g *model.Game) model.Action {
	if forcedTake(g) {
		return model.ActionTake
	}
	sig := computeSignals(g)

	if sig.runLink {
		return model.ActionTake
	}
	if sig.delta <= 2 {
		return model.ActionTake
	}
	if sig.chipsOnCard >= 4 {
		return model.ActionTake
	}
	return model.ActionPass
}

// StandardStrategy weighs the marginal cost of taking against run links,
// deck depletion and the chip pile. It is fully deterministic.
type StandardStrategy struct{}

// NewStandardStrategy creates a new StandardStrategy
func NewStandardStrategy() *StandardStrategy {
	return &StandardStrategy{}
}

// Decide implements Strategy
func (s *StandardStrategy) Decide(g *model.Game) model.Action {
	if forcedTake(g) {
		return model.ActionTake
	}
	sig := computeSignals(g)

	if sig.delta <= 0 {
		return model.ActionTake
	}
	if sig.runLink && sig.delta <= 3 {
		return model.ActionTake
	}
	if sig.deckLeft < 6 && sig.delta <= 4 {
		return model.ActionTake
	}
	if sig.chipsOnCard >= 5 && sig.delta <= 5 {
		return model.ActionTake
	}
	return model.ActionPass
}

// EasyStrategy takes obvious run extensions, then roughly coin-flips with
// a bias toward taking when the chip pile has grown. The bias only ever
// raises the take probability, never the pass probability; that asymmetry
// is part of the style's intended (beatable) character.
type EasyStrategy struct {
	random random.Random
}

// NewEasyStrategy creates a new EasyStrategy
func NewEasyStrategy(rnd random.Random) *EasyStrategy {
	return &EasyStrategy{random: rnd}
}

// Decide implements Strategy
func (s *EasyStrategy) Decide(g *model.Game) model.Action {
	if forcedTake(g) {
		return model.ActionTake
	}
	sig := computeSignals(g)

	if sig.runLink && sig.delta <= 3 {
		return model.ActionTake
	}

	v := s.random.Float64()
	if sig.chipsOnCard >= 3 && v > 0.3 {
		return model.ActionTake
	}
	if v <= 0.5 {
		return model.ActionTake
	}
	return model.ActionPass
}
