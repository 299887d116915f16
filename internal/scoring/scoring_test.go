package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cardtable/nothanks/internal/model"
)

type ScoringSuite struct {
	suite.Suite
}

func TestScoringSuite(t *testing.T) {
	suite.Run(t, new(ScoringSuite))
}

// CardPoints tests

func (s *ScoringSuite) TestEmptyHandScoresZero() {
	result := CardPoints(nil)

	s.Equal(0, result.Total)
	s.Empty(result.Runs)
}

func (s *ScoringSuite) TestSingleCard() {
	result := CardPoints([]model.Card{17})

	s.Equal(17, result.Total)
	s.Equal([][]model.Card{{17}}, result.Runs)
}

func (s *ScoringSuite) TestIsolatedCardsAllCount() {
	result := CardPoints([]model.Card{5, 9, 22})

	s.Equal(36, result.Total)
	s.Equal([][]model.Card{{5}, {9}, {22}}, result.Runs)
}

func (s *ScoringSuite) TestRunScoresLowestCardOnly() {
	result := CardPoints([]model.Card{10, 11, 12})

	s.Equal(10, result.Total)
	s.Equal([][]model.Card{{10, 11, 12}}, result.Runs)
}

func (s *ScoringSuite) TestMixedRunsAndSingles() {
	result := CardPoints([]model.Card{27, 28, 29, 30, 10})

	s.Equal(37, result.Total)
	s.Equal([][]model.Card{{10}, {27, 28, 29, 30}}, result.Runs)
}

func (s *ScoringSuite) TestUnsortedInputIsSorted() {
	result := CardPoints([]model.Card{30, 28, 29, 27})

	s.Equal(27, result.Total)
	s.Equal([][]model.Card{{27, 28, 29, 30}}, result.Runs)
}

func (s *ScoringSuite) TestGapOfTwoBreaksRun() {
	result := CardPoints([]model.Card{10, 11, 13})

	s.Equal(23, result.Total)
	s.Equal([][]model.Card{{10, 11}, {13}}, result.Runs)
}

func (s *ScoringSuite) TestInputNotMutated() {
	cards := []model.Card{30, 27}
	_ = CardPoints(cards)

	s.Equal([]model.Card{30, 27}, cards)
}

// ProjectedScore tests

func (s *ScoringSuite) TestProjectedScoreIsolatedCard() {
	seat := model.Seat{Chips: 5, Cards: []model.Card{10}}

	// Hand becomes {10, 20} = 30 points, chips become 5+3
	s.Equal(22, ProjectedScore(seat, 20, 3))
}

func (s *ScoringSuite) TestProjectedScoreRunExtension() {
	seat := model.Seat{Chips: 2, Cards: []model.Card{21, 22}}

	// Taking 20 makes {20,21,22} score 20 instead of 21
	s.Equal(18, ProjectedScore(seat, 20, 0))
}

func (s *ScoringSuite) TestProjectedScoreDoesNotMutateSeat() {
	seat := model.Seat{Chips: 2, Cards: []model.Card{21}}
	_ = ProjectedScore(seat, 20, 4)

	s.Equal([]model.Card{21}, seat.Cards)
	s.Equal(2, seat.Chips)
}

// ComputeScores tests

func (s *ScoringSuite) TestComputeScoresSortedAscending() {
	seats := []model.Seat{
		{PlayerID: "p1", DisplayName: "Alice", Chips: 2, Cards: []model.Card{30}},
		{PlayerID: "p2", DisplayName: "Bob", Chips: 10, Cards: []model.Card{5}},
	}

	entries := ComputeScores(seats)

	s.Require().Len(entries, 2)
	s.Equal(model.PlayerID("p2"), entries[0].PlayerID)
	s.Equal(-5, entries[0].Total)
	s.Equal(5, entries[0].CardPoints)
	s.Equal(10, entries[0].ChipPoints)
	s.Equal(model.PlayerID("p1"), entries[1].PlayerID)
	s.Equal(28, entries[1].Total)
}

func (s *ScoringSuite) TestComputeScoresTiesKeepSeatOrder() {
	seats := []model.Seat{
		{PlayerID: "p1", Chips: 3, Cards: []model.Card{10}},
		{PlayerID: "p2", Chips: 3, Cards: []model.Card{10}},
		{PlayerID: "p3", Chips: 4, Cards: []model.Card{10}},
	}

	entries := ComputeScores(seats)

	s.Require().Len(entries, 3)
	s.Equal(model.PlayerID("p3"), entries[0].PlayerID)
	s.Equal(model.PlayerID("p1"), entries[1].PlayerID)
	s.Equal(model.PlayerID("p2"), entries[2].PlayerID)
}

func (s *ScoringSuite) TestComputeScoresIncludesRuns() {
	seats := []model.Seat{
		{PlayerID: "p1", Chips: 12, Cards: []model.Card{10, 11}},
	}

	entries := ComputeScores(seats)

	s.Require().Len(entries, 1)
	s.Equal(-2, entries[0].Total)
	s.Equal([][]model.Card{{10, 11}}, entries[0].Runs)
}
