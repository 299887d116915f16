package bot

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cardtable/nothanks/internal/dependencies/mocks"
	"github.com/cardtable/nothanks/internal/model"
)

type StrategySuite struct {
	suite.Suite
	random *mocks.MockRandom
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.random = mocks.NewMockRandom()
}

// strategyGame builds a single-seat game with a long deck so deck-depletion
// heuristics stay quiet unless a test shortens it
func strategyGame(chips int, cards []model.Card, active model.Card, chipsOnCard int) *model.Game {
	return &model.Game{
		Status: model.GameStatusPlaying,
		Seats: []model.Seat{
			{PlayerID: "bot-1", DisplayName: "Bot 1", IsBot: true, Chips: chips, Cards: cards},
		},
		Deck:        []model.Card{5, 6, 7, 8, 9, 10, 11, 12, 13, 14},
		ActiveCard:  &active,
		ChipsOnCard: chipsOnCard,
		Turn:        0,
	}
}

// Forced take applies to every style

func (s *StrategySuite) TestAllStylesTakeWhenOutOfChips() {
	g := strategyGame(0, nil, 30, 0)

	for _, style := range model.ValidBotStyles() {
		strategy := StrategyForStyle(style, s.random)
		s.Equal(model.ActionTake, strategy.Decide(g), "style %s", style)
	}
}

func (s *StrategySuite) TestStrategyForStyleFallsBackToStandard() {
	strategy := StrategyForStyle("bogus", s.random)

	s.IsType(&StandardStrategy{}, strategy)
}

// Greedy tests

func (s *StrategySuite) TestGreedyTakesRunExtension() {
	g := strategyGame(11, []model.Card{29}, 30, 0)

	s.Equal(model.ActionTake, NewGreedyStrategy().Decide(g))
}

func (s *StrategySuite) TestGreedyTakesCheapCard() {
	// Taking 3 with one chip on it costs a net 2 points
	g := strategyGame(11, nil, 3, 1)

	s.Equal(model.ActionTake, NewGreedyStrategy().Decide(g))
}

func (s *StrategySuite) TestGreedyTakesFatChipPile() {
	g := strategyGame(11, nil, 30, 4)

	s.Equal(model.ActionTake, NewGreedyStrategy().Decide(g))
}

func (s *StrategySuite) TestGreedyPassesOnExpensiveCard() {
	g := strategyGame(11, nil, 30, 0)

	s.Equal(model.ActionPass, NewGreedyStrategy().Decide(g))
}

// Standard tests

func (s *StrategySuite) TestStandardTakesWhenProfitable() {
	// Card 5 with 6 chips on it is a net gain
	g := strategyGame(11, nil, 5, 6)

	s.Equal(model.ActionTake, NewStandardStrategy().Decide(g))
}

func (s *StrategySuite) TestStandardTakesCheapRunExtension() {
	// Extending {31} down to {30,31} lowers card points from 31 to 30
	g := strategyGame(11, []model.Card{31}, 30, 0)

	s.Equal(model.ActionTake, NewStandardStrategy().Decide(g))
}

func (s *StrategySuite) TestStandardPassesOnExpensiveCard() {
	g := strategyGame(11, nil, 30, 0)

	s.Equal(model.ActionPass, NewStandardStrategy().Decide(g))
}

func (s *StrategySuite) TestStandardTakesNearDeckExhaustion() {
	g := strategyGame(11, nil, 6, 2)
	g.Deck = []model.Card{5, 6, 7}

	// delta = 6 - 2 = 4, deck nearly out
	s.Equal(model.ActionTake, NewStandardStrategy().Decide(g))
}

func (s *StrategySuite) TestStandardTakesWhenPileIsLarge() {
	// delta = 10 - 5 = 5 with 5 chips on the card
	g := strategyGame(11, nil, 10, 5)

	s.Equal(model.ActionTake, NewStandardStrategy().Decide(g))
}

// Easy tests

func (s *StrategySuite) TestEasyTakesCheapRunExtension() {
	g := strategyGame(11, []model.Card{31}, 30, 0)

	s.Equal(model.ActionTake, NewEasyStrategy(s.random).Decide(g))
}

func (s *StrategySuite) TestEasyCoinFlipTake() {
	s.random.QueueFloat64(0.4)
	g := strategyGame(11, nil, 30, 0)

	s.Equal(model.ActionTake, NewEasyStrategy(s.random).Decide(g))
}

func (s *StrategySuite) TestEasyCoinFlipPass() {
	s.random.QueueFloat64(0.6)
	g := strategyGame(11, nil, 30, 0)

	s.Equal(model.ActionPass, NewEasyStrategy(s.random).Decide(g))
}

func (s *StrategySuite) TestEasyChipPileBiasesTowardTaking() {
	// 0.6 would be a pass with an empty pile, but three chips tip it
	s.random.QueueFloat64(0.6)
	g := strategyGame(11, nil, 30, 3)

	s.Equal(model.ActionTake, NewEasyStrategy(s.random).Decide(g))
}
