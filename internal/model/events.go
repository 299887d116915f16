package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Table events
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
	EventHostChanged  EventType = "host_changed"
	EventGameStarted  EventType = "game_started"

	// Game events
	EventCardPassed    EventType = "card_passed"
	EventCardTaken     EventType = "card_taken"
	EventGameComplete  EventType = "game_complete"
	EventGameAbandoned EventType = "game_abandoned"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	TableCode TableCode
	GameID    GameID   // Empty for table-only events
	PlayerID  PlayerID // The player who triggered or is affected
	Payload   any      // Type-specific data
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	Player Player
}

// PlayerLeftPayload contains data for player left events
type PlayerLeftPayload struct {
	PlayerID    PlayerID
	DisplayName string
}

// HostChangedPayload contains data for host changed events
type HostChangedPayload struct {
	OldHostID PlayerID
	NewHostID PlayerID
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	GameID  GameID
	Players []PlayerID
}

// CardPassedPayload contains data for card passed events
type CardPassedPayload struct {
	PlayerID    PlayerID
	Card        Card
	ChipsOnCard int
	NextTurn    PlayerID
}

// CardTakenPayload contains data for card taken events
type CardTakenPayload struct {
	PlayerID PlayerID
	Card     Card
	ChipsWon int
	NextCard *Card
	DeckLeft int
}

// GameCompletePayload contains data for game complete events
type GameCompletePayload struct {
	Scores []ScoreEntry
	Winner PlayerID
}

// GameAbandonedPayload contains data for game abandoned events
type GameAbandonedPayload struct {
	Reason string
}
