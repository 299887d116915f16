package model

import "time"

// TableCode is a human-readable identifier for joining tables
type TableCode string

// TableState represents the current state of a table
type TableState string

const (
	TableStateWaiting TableState = "waiting" // No game in progress
	TableStateInGame  TableState = "in_game" // Game currently active
)

// Player count bounds for starting a game
const (
	MinTablePlayers = 3
	MaxTablePlayers = 7
)

// TableMember represents a player's membership at a table
type TableMember struct {
	Player   Player
	IsHost   bool
	JoinedAt time.Time
}

// TableConfig holds configurable settings for games at this table
type TableConfig struct {
	MaxPlayers int
}

// DefaultTableConfig returns the default table configuration
func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxPlayers: MaxTablePlayers,
	}
}

// Table represents a group of players who play games together
type Table struct {
	Code        TableCode
	State       TableState
	Members     []TableMember
	Config      TableConfig
	GameHistory []GameSummary // Completed games
	CurrentGame *GameID       // nil when State is waiting
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetHost returns the current host member, or nil if none
func (t *Table) GetHost() *TableMember {
	for i := range t.Members {
		if t.Members[i].IsHost {
			return &t.Members[i]
		}
	}
	return nil
}

// GetMember returns the member with the given player ID, or nil if not found
func (t *Table) GetMember(playerID PlayerID) *TableMember {
	for i := range t.Members {
		if t.Members[i].Player.ID == playerID {
			return &t.Members[i]
		}
	}
	return nil
}

// BotCount returns the number of bot members
func (t *Table) BotCount() int {
	count := 0
	for _, m := range t.Members {
		if m.Player.IsBot {
			count++
		}
	}
	return count
}
