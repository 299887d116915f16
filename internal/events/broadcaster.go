package events

import (
	"encoding/json"
	"log/slog"

	"github.com/cardtable/nothanks/internal/dependencies/clock"
	"github.com/cardtable/nothanks/internal/model"
)

// Broadcaster publishes domain events to the SSE clients of a table.
// Events are serialized as JSON; the SSE event name is the EventType.
type Broadcaster struct {
	hubManager *HubManager
	clock      clock.Clock
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, clk clock.Clock, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		clock:      clk,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends an event to all clients watching the event's table.
// Publishing to a table with no hub is a no-op.
func (b *Broadcaster) Publish(event model.Event) {
	hub := b.hubManager.GetHub(event.TableCode)
	if hub == nil {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = b.clock.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("sse failed to marshal event",
			slog.String("table", string(event.TableCode)),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}

// PlayerJoined broadcasts that a player joined the table
func (b *Broadcaster) PlayerJoined(code model.TableCode, player model.Player) {
	b.Publish(model.Event{
		Type:      model.EventPlayerJoined,
		TableCode: code,
		PlayerID:  player.ID,
		Payload:   model.PlayerJoinedPayload{Player: player},
	})
}

// PlayerLeft broadcasts that a player left the table
func (b *Broadcaster) PlayerLeft(code model.TableCode, playerID model.PlayerID, displayName string) {
	b.Publish(model.Event{
		Type:      model.EventPlayerLeft,
		TableCode: code,
		PlayerID:  playerID,
		Payload:   model.PlayerLeftPayload{PlayerID: playerID, DisplayName: displayName},
	})
}

// HostChanged broadcasts a host transfer
func (b *Broadcaster) HostChanged(code model.TableCode, oldHost, newHost model.PlayerID) {
	b.Publish(model.Event{
		Type:      model.EventHostChanged,
		TableCode: code,
		PlayerID:  newHost,
		Payload:   model.HostChangedPayload{OldHostID: oldHost, NewHostID: newHost},
	})
}

// GameStarted broadcasts that a game has started at the table
func (b *Broadcaster) GameStarted(code model.TableCode, g *model.Game) {
	players := make([]model.PlayerID, len(g.Seats))
	for i, s := range g.Seats {
		players[i] = s.PlayerID
	}
	b.Publish(model.Event{
		Type:      model.EventGameStarted,
		TableCode: code,
		GameID:    g.ID,
		Payload:   model.GameStartedPayload{GameID: g.ID, Players: players},
	})
}

// CardPassed broadcasts a pass action
func (b *Broadcaster) CardPassed(code model.TableCode, g *model.Game, playerID model.PlayerID, card model.Card) {
	var next model.PlayerID
	if seat := g.CurrentSeat(); seat != nil {
		next = seat.PlayerID
	}
	b.Publish(model.Event{
		Type:      model.EventCardPassed,
		TableCode: code,
		GameID:    g.ID,
		PlayerID:  playerID,
		Payload: model.CardPassedPayload{
			PlayerID:    playerID,
			Card:        card,
			ChipsOnCard: g.ChipsOnCard,
			NextTurn:    next,
		},
	})
}

// CardTaken broadcasts a take action
func (b *Broadcaster) CardTaken(code model.TableCode, g *model.Game, playerID model.PlayerID, card model.Card, chipsWon int) {
	b.Publish(model.Event{
		Type:      model.EventCardTaken,
		TableCode: code,
		GameID:    g.ID,
		PlayerID:  playerID,
		Payload: model.CardTakenPayload{
			PlayerID: playerID,
			Card:     card,
			ChipsWon: chipsWon,
			NextCard: g.ActiveCard,
			DeckLeft: g.DeckRemaining(),
		},
	})
}

// GameComplete broadcasts the final score table
func (b *Broadcaster) GameComplete(code model.TableCode, g *model.Game) {
	var winner model.PlayerID
	if len(g.Scores) > 0 {
		winner = g.Scores[0].PlayerID
	}
	b.Publish(model.Event{
		Type:      model.EventGameComplete,
		TableCode: code,
		GameID:    g.ID,
		Payload:   model.GameCompletePayload{Scores: g.Scores, Winner: winner},
	})
}

// GameAbandoned broadcasts that the game was abandoned
func (b *Broadcaster) GameAbandoned(code model.TableCode, gameID model.GameID, reason string) {
	b.Publish(model.Event{
		Type:      model.EventGameAbandoned,
		TableCode: code,
		GameID:    gameID,
		Payload:   model.GameAbandonedPayload{Reason: reason},
	})
}
