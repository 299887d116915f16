package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a participant identity (human or bot)
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	IsBot       bool
	BotStyle    BotStyle // only meaningful when IsBot is true
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data
// Stored separately so the password hash never travels with session state
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
