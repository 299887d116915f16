package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardtable/nothanks/internal/dependencies/mocks"
	"github.com/cardtable/nothanks/internal/engine"
	"github.com/cardtable/nothanks/internal/model"
	"github.com/cardtable/nothanks/internal/storage/memory"
	"github.com/cardtable/nothanks/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	eng := engine.New(s.random)
	s.controller = NewController(s.storage, eng, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) createGame() *model.Game {
	s.random.QueueString("GAME12345678")
	seats := []model.SeatConfig{
		{PlayerID: "p1", DisplayName: "Alice"},
		{PlayerID: "p2", DisplayName: "Bob"},
		{PlayerID: "p3", DisplayName: "Carol"},
	}
	g, err := s.controller.CreateGame(s.ctx, "TABLE1", seats)
	s.Require().NoError(err)
	return g
}

// CreateGame tests

func (s *ControllerSuite) TestCreateGameSucceeds() {
	g := s.createGame()

	s.Equal(model.GameID("GAME12345678"), g.ID)
	s.Equal(model.TableCode("TABLE1"), g.TableCode)
	s.Equal(model.GameStatusPlaying, g.Status)
	s.Len(g.Seats, 3)
	s.NotNil(g.ActiveCard)
	s.Equal(s.clock.CurrentTime, g.CreatedAt)
}

func (s *ControllerSuite) TestCreateGameFailsWithNoSeats() {
	_, err := s.controller.CreateGame(s.ctx, "TABLE1", nil)
	s.ErrorIs(err, model.ErrInsufficientPlayers)
}

func (s *ControllerSuite) TestCreateGameIsPersisted() {
	g := s.createGame()

	retrieved, err := s.controller.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(g.ID, retrieved.ID)
	s.Equal(g.Seats, retrieved.Seats)
}

func (s *ControllerSuite) TestGetGameNotFound() {
	_, err := s.controller.GetGame(s.ctx, "MISSING")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Pass tests

func (s *ControllerSuite) TestPassSucceeds() {
	g := s.createGame()

	next, err := s.controller.Pass(s.ctx, g.ID, "p1")
	s.Require().NoError(err)

	s.Equal(model.StartingChips-1, next.Seats[0].Chips)
	s.Equal(1, next.ChipsOnCard)
	s.Equal(1, next.Turn)
}

func (s *ControllerSuite) TestPassOutOfTurnFails() {
	g := s.createGame()

	_, err := s.controller.Pass(s.ctx, g.ID, "p2")
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *ControllerSuite) TestPassWithNoChipsFails() {
	g := s.createGame()
	g.Seats[0].Chips = 0
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	_, err := s.controller.Pass(s.ctx, g.ID, "p1")
	s.ErrorIs(err, model.ErrOutOfChips)
}

func (s *ControllerSuite) TestPassIsPersisted() {
	g := s.createGame()

	_, err := s.controller.Pass(s.ctx, g.ID, "p1")
	s.Require().NoError(err)

	retrieved, err := s.controller.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(1, retrieved.ChipsOnCard)
	s.Equal(1, retrieved.Turn)
}

// Take tests

func (s *ControllerSuite) TestTakeSucceeds() {
	g := s.createGame()
	card := *g.ActiveCard

	next, err := s.controller.Take(s.ctx, g.ID, "p1")
	s.Require().NoError(err)

	s.Equal([]model.Card{card}, next.Seats[0].Cards)
	s.Equal(0, next.Turn, "the taker decides on the next card")
	s.NotNil(next.ActiveCard)
}

func (s *ControllerSuite) TestTakeOutOfTurnFails() {
	g := s.createGame()

	_, err := s.controller.Take(s.ctx, g.ID, "p3")
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *ControllerSuite) TestTakeLastCardCompletesGame() {
	g := s.createGame()
	g.Deck = nil
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	next, err := s.controller.Take(s.ctx, g.ID, "p1")
	s.Require().NoError(err)

	s.Equal(model.GameStatusDone, next.Status)
	s.Len(next.Scores, 3)
}

func (s *ControllerSuite) TestActionOnCompletedGameFails() {
	g := s.createGame()
	g.Status = model.GameStatusDone
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	_, err := s.controller.Pass(s.ctx, g.ID, "p1")
	s.ErrorIs(err, model.ErrGameComplete)

	_, err = s.controller.Take(s.ctx, g.ID, "p1")
	s.ErrorIs(err, model.ErrGameComplete)
}

func (s *ControllerSuite) TestActionOnAbandonedGameFails() {
	g := s.createGame()
	s.Require().NoError(s.controller.AbandonGame(s.ctx, g.ID))

	_, err := s.controller.Pass(s.ctx, g.ID, "p1")
	s.ErrorIs(err, model.ErrGameAbandoned)
}

// AbandonGame tests

func (s *ControllerSuite) TestAbandonGame() {
	g := s.createGame()

	s.Require().NoError(s.controller.AbandonGame(s.ctx, g.ID))

	retrieved, err := s.controller.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusAbandoned, retrieved.Status)
}

func (s *ControllerSuite) TestAbandonFinishedGameIsNoOp() {
	g := s.createGame()
	g.Status = model.GameStatusDone
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	s.Require().NoError(s.controller.AbandonGame(s.ctx, g.ID))

	retrieved, err := s.controller.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusDone, retrieved.Status)
}

// Scores tests

func (s *ControllerSuite) TestScoresWhileInProgressFails() {
	g := s.createGame()

	_, err := s.controller.Scores(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrGameInProgress)
}

func (s *ControllerSuite) TestScoresForFinishedGame() {
	g := s.createGame()
	g.Deck = nil
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	_, err := s.controller.Take(s.ctx, g.ID, "p1")
	s.Require().NoError(err)

	scores, err := s.controller.Scores(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 3)

	// p1 took the only card; p2 and p3 kept clean hands and tie at -11
	s.Equal(model.PlayerID("p2"), scores[0].PlayerID)
	s.Equal(-11, scores[0].Total)
	s.Equal(model.PlayerID("p3"), scores[1].PlayerID)
	s.Equal(model.PlayerID("p1"), scores[2].PlayerID)
}

// CreateGameSummary tests

func (s *ControllerSuite) TestCreateGameSummary() {
	g := s.createGame()
	g.Deck = nil
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	_, err := s.controller.Take(s.ctx, g.ID, "p1")
	s.Require().NoError(err)

	summary, err := s.controller.CreateGameSummary(s.ctx, g.ID)
	s.Require().NoError(err)

	s.Equal(g.ID, summary.ID)
	s.Equal(model.PlayerID("p2"), summary.Winner)
	s.Len(summary.FinalScores, 3)
	s.Equal(s.clock.CurrentTime, summary.CompletedAt)
}

func (s *ControllerSuite) TestCreateGameSummaryForLiveGameFails() {
	g := s.createGame()

	_, err := s.controller.CreateGameSummary(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrGameInProgress)
}
