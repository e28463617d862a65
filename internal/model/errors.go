package model

import "errors"

// Common errors used across the application. All of these are
// recoverable: handlers report them back to the originating
// connection as a warning event and leave session state untouched.
var (
	// Identity errors
	ErrIdentityMissing = errors.New("no player identity bound to this connection")
	ErrPlayerNotFound  = errors.New("player not found")

	// Room errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNotJoinable = errors.New("room is not accepting players")
	ErrRoomFull        = errors.New("room is full")
	ErrAlreadyInRoom   = errors.New("player is already in a room")
	ErrNotInRoom       = errors.New("player is not in this room")

	// Config errors
	ErrInvalidConfigValue = errors.New("config value out of bounds")

	// Game errors
	ErrGameNotRunning = errors.New("game is not running")
	ErrNotYourTurn    = errors.New("not this seat's turn")
	ErrColumnFull     = errors.New("column is full")
	ErrInvalidMove    = errors.New("invalid move")

	// History errors
	ErrRecordNotFound = errors.New("session record not found")
)
