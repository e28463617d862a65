package model

import "time"

// CommandType identifies an inbound client command
type CommandType string

const (
	CmdSetIdentity CommandType = "set_identity"
	CmdCreateRoom  CommandType = "create_room"
	CmdJoinRoom    CommandType = "join_room"
	CmdWatchRoom   CommandType = "watch_room"
	CmdQuickMatch  CommandType = "quick_match"
	CmdUpdateRoom  CommandType = "update_room"
	CmdManageAI    CommandType = "manage_ai"
	CmdPlayerReady CommandType = "player_ready"
	CmdSubmitMove  CommandType = "submit_move"
	CmdQuitRoom    CommandType = "quit_room"
	CmdDisconnect  CommandType = "disconnect"
)

// ConnID identifies a transport connection. The transport itself is
// an external collaborator; the core only needs a stable handle to
// route replies and bind identities.
type ConnID string

// Command is an inbound event from a connection, validated at the
// boundary before it reaches the core.
type Command struct {
	Type    CommandType
	Conn    ConnID
	Payload any // one of the *Payload structs below
}

// SetIdentityPayload binds a player identity to the connection
type SetIdentityPayload struct {
	PlayerID PlayerID
}

// CreateRoomPayload requests a new room
type CreateRoomPayload struct {
	GameType GameType
	Mode     Mode
	Config   Config
}

// JoinRoomPayload requests joining an existing room
type JoinRoomPayload struct {
	RoomID SessionID
}

// WatchRoomPayload requests spectating an existing room
type WatchRoomPayload struct {
	RoomID SessionID
}

// QuickMatchPayload requests matchmaking by scan
type QuickMatchPayload struct {
	GameType GameType
}

// ConfigField names a tunable room setting
type ConfigField string

const (
	FieldSeatCount ConfigField = "seat_count"
	FieldWinsToWin ConfigField = "wins_to_win"
)

// UpdateRoomPayload adjusts a config field by a signed delta
type UpdateRoomPayload struct {
	RoomID SessionID
	Field  ConfigField
	Delta  int
}

// ManageAIPayload adds or removes AI seats by a signed delta
type ManageAIPayload struct {
	RoomID SessionID
	Delta  int
}

// PlayerReadyPayload flips the caller's readiness flag
type PlayerReadyPayload struct {
	RoomID SessionID
	Ready  bool
}

// SubmitMovePayload submits a move for the in-flight step
type SubmitMovePayload struct {
	RoomID SessionID
	Move   Move
}

// QuitRoomPayload leaves a room explicitly
type QuitRoomPayload struct {
	RoomID SessionID
}

// EventType identifies an outbound event
type EventType string

const (
	EventRoomCreated EventType = "room_created"
	EventRoomJoined  EventType = "room_joined"
	EventGameStart   EventType = "game_start"
	EventRoomUpdated EventType = "room_updated"
	EventStepResult  EventType = "step_result"
	EventRoundResult EventType = "round_result"
	EventGameOver    EventType = "game_over"
	EventPlayerLeft  EventType = "player_left"
	EventWarning     EventType = "warning"
	EventLeaderboard EventType = "leaderboard_updated"
)

// Event is an outbound push to one player or a whole room
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	RoomID    SessionID `json:"roomId,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// RoomPayload carries a room snapshot (room_created, room_joined,
// room_updated, game_start)
type RoomPayload struct {
	Room RoomView `json:"room"`
}

// StepResultPayload reports an intermediate elimination step. The
// game is never over at a step boundary and no round winner exists
// yet, so GameOver is always false and Winner always nil.
type StepResultPayload struct {
	GameOver  bool      `json:"gameOver"`
	Winner    *int      `json:"winner"`
	Round     int       `json:"round"`
	Moves     StepMoves `json:"moves"`
	Survivors []int     `json:"survivors"`
	Stalemate bool      `json:"stalemate"`
}

// DropResultPayload reports an applied connect-four drop. Like every
// step_result, it never closes the game, so GameOver is always false
// and Winner always nil.
type DropResultPayload struct {
	GameOver bool  `json:"gameOver"`
	Winner   *int  `json:"winner"`
	Drop     Drop  `json:"drop"`
	NextSeat int   `json:"nextSeat"`
	Board    Board `json:"board"`
}

// RoundResultPayload reports a decided round. Winner is nil for a
// connect-four draw.
type RoundResultPayload struct {
	GameOver bool        `json:"gameOver"`
	Winner   *int        `json:"winner"`
	Round    int         `json:"round"`
	Wins     map[int]int `json:"wins"` // seat number -> session wins
}

// GameOverPayload reports the finished game
type GameOverPayload struct {
	GameOver bool     `json:"gameOver"`
	Winner   SeatView `json:"winner"`
	Record   RoomView `json:"room"`
}

// PlayerLeftPayload notifies remaining seats of a departure
type PlayerLeftPayload struct {
	PlayerID    PlayerID `json:"playerId"`
	DisplayName string   `json:"displayName"`
}

// WarningPayload reports a recoverable error back to the caller
type WarningPayload struct {
	Reason string `json:"reason"`
}

// LeaderboardPayload carries the current rating projection
type LeaderboardPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}
