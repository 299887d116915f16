package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNotBot          = errors.New("player is not a bot")
	ErrInvalidBotStyle = errors.New("unknown bot style")

	// Table errors
	ErrTableNotFound       = errors.New("table not found")
	ErrTableFull           = errors.New("table is full")
	ErrAlreadyAtTable      = errors.New("player is already at table")
	ErrNotAtTable          = errors.New("player is not at table")
	ErrNotHost             = errors.New("player is not the host")
	ErrGameInProgress      = errors.New("game is in progress")
	ErrNoGameInProgress    = errors.New("no game in progress")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")

	// Game errors
	ErrGameNotFound  = errors.New("game not found")
	ErrNotPlayerTurn = errors.New("not this player's turn")
	ErrOutOfChips    = errors.New("no chips left to pass with")
	ErrGameComplete  = errors.New("game is already complete")
	ErrGameAbandoned = errors.New("game has been abandoned")
)
