package model

import "time"

// SessionID uniquely identifies a room
type SessionID string

// GameType selects which game a room plays
type GameType string

const (
	GameRPS         GameType = "rps"
	GameConnectFour GameType = "connect_four"
)

// Mode distinguishes player-vs-player rooms from rooms with a built-in AI seat
type Mode string

const (
	ModePvP Mode = "pvp"
	ModeAI  Mode = "ai"
)

// SessionStatus represents the lifecycle phase of a room
type SessionStatus string

const (
	StatusWaiting SessionStatus = "waiting"
	StatusRunning SessionStatus = "running"
	StatusOver    SessionStatus = "over"
)

// SeatKind distinguishes human occupants from synthesized AI seats
type SeatKind string

const (
	SeatHuman SeatKind = "human"
	SeatAI    SeatKind = "ai"
)

// Configuration bounds enforced at the boundary
const (
	MinSeatCount = 2
	MaxSeatCount = 5
	MinWinsToWin = 1
	MaxWinsToWin = 5
)

// Config holds the per-room settings
type Config struct {
	SeatCount int `json:"seatCount"`
	WinsToWin int `json:"winsToWin"`
}

// DefaultConfig returns the default room configuration
func DefaultConfig() Config {
	return Config{
		SeatCount: 2,
		WinsToWin: 1,
	}
}

// Valid reports whether the configuration is within bounds
func (c Config) Valid() bool {
	return c.SeatCount >= MinSeatCount && c.SeatCount <= MaxSeatCount &&
		c.WinsToWin >= MinWinsToWin && c.WinsToWin <= MaxWinsToWin
}

// Seat is one occupant slot in a room. Seat numbers are 1-based and
// assign turn order. AI seats are synthesized by the registry and are
// never bound to a connection.
type Seat struct {
	Number      int
	Kind        SeatKind
	PlayerID    PlayerID // empty for AI seats
	DisplayName string
	Ready       bool
	Active      bool  // still in the current elimination step
	Pending     *Move // move submitted for the in-flight step
	Wins        int   // rounds won within this session
	Losses      int
}

// IsHuman reports whether the seat is occupied by a human player
func (s *Seat) IsHuman() bool {
	return s.Kind == SeatHuman
}

// Session is the live aggregate for one room: configuration, seats,
// round history, spectators, and (connect-four only) the live board.
// A session is mutated only while waiting or running; once over it is
// archived verbatim and removed from the live registry.
type Session struct {
	ID       SessionID
	GameType GameType
	Mode     Mode
	Status   SessionStatus
	Config   Config
	Seats    []*Seat
	Rounds   []*Round // append-only

	Spectators    map[PlayerID]bool
	SpectatorPeak int // high-water mark

	Board *Board // connect-four only, nil for rps

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SeatFor returns the seat occupied by the given player, or nil
func (s *Session) SeatFor(playerID PlayerID) *Seat {
	for _, seat := range s.Seats {
		if seat.Kind == SeatHuman && seat.PlayerID == playerID {
			return seat
		}
	}
	return nil
}

// SeatByNumber returns the seat with the given number, or nil
func (s *Session) SeatByNumber(n int) *Seat {
	for _, seat := range s.Seats {
		if seat.Number == n {
			return seat
		}
	}
	return nil
}

// HumanSeats returns the seats occupied by humans
func (s *Session) HumanSeats() []*Seat {
	var humans []*Seat
	for _, seat := range s.Seats {
		if seat.IsHuman() {
			humans = append(humans, seat)
		}
	}
	return humans
}

// ActiveSeats returns the seats still alive in the current step
func (s *Session) ActiveSeats() []*Seat {
	var active []*Seat
	for _, seat := range s.Seats {
		if seat.Active {
			active = append(active, seat)
		}
	}
	return active
}

// AllReady reports whether every seat is occupied and ready.
// AI seats are always ready.
func (s *Session) AllReady() bool {
	if len(s.Seats) != s.Config.SeatCount {
		return false
	}
	for _, seat := range s.Seats {
		if seat.IsHuman() && !seat.Ready {
			return false
		}
	}
	return true
}

// CurrentRound returns the in-flight round, or nil if none is open
func (s *Session) CurrentRound() *Round {
	if len(s.Rounds) == 0 {
		return nil
	}
	round := s.Rounds[len(s.Rounds)-1]
	if round.Resolved {
		return nil
	}
	return round
}

// NextSeatNumber returns the lowest free seat number
func (s *Session) NextSeatNumber() int {
	n := 1
	for s.SeatByNumber(n) != nil {
		n++
	}
	return n
}

// AddSpectator records a watcher and bumps the high-water mark
func (s *Session) AddSpectator(playerID PlayerID) {
	if s.Spectators == nil {
		s.Spectators = make(map[PlayerID]bool)
	}
	s.Spectators[playerID] = true
	if len(s.Spectators) > s.SpectatorPeak {
		s.SpectatorPeak = len(s.Spectators)
	}
}

// RemoveSpectator drops a watcher
func (s *Session) RemoveSpectator(playerID PlayerID) {
	delete(s.Spectators, playerID)
}

// MaxWins returns the highest session win counter across seats
func (s *Session) MaxWins() int {
	best := 0
	for _, seat := range s.Seats {
		if seat.Wins > best {
			best = seat.Wins
		}
	}
	return best
}

// SeatView is the outward summary of a seat
type SeatView struct {
	Number      int      `json:"number"`
	Kind        SeatKind `json:"kind"`
	PlayerID    PlayerID `json:"playerId,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	Ready       bool     `json:"ready"`
	Wins        int      `json:"wins"`
	Losses      int      `json:"losses"`
}

// RoomView is the outward snapshot of a session pushed to clients
type RoomView struct {
	ID       SessionID     `json:"id"`
	GameType GameType      `json:"gameType"`
	Mode     Mode          `json:"mode"`
	Status   SessionStatus `json:"status"`
	Config   Config        `json:"config"`
	Seats    []SeatView    `json:"seats"`
	Round    int           `json:"round"` // 1-based index of the open round, 0 if none
}

// View builds the outward snapshot of the session
func (s *Session) View() RoomView {
	view := RoomView{
		ID:       s.ID,
		GameType: s.GameType,
		Mode:     s.Mode,
		Status:   s.Status,
		Config:   s.Config,
		Seats:    make([]SeatView, 0, len(s.Seats)),
	}
	for _, seat := range s.Seats {
		view.Seats = append(view.Seats, SeatView{
			Number:      seat.Number,
			Kind:        seat.Kind,
			PlayerID:    seat.PlayerID,
			DisplayName: seat.DisplayName,
			Ready:       seat.Ready,
			Wins:        seat.Wins,
			Losses:      seat.Losses,
		})
	}
	if r := s.CurrentRound(); r != nil {
		view.Round = r.Index
	}
	return view
}

// SessionRecord is the archived form of a completed session
type SessionRecord struct {
	ID          SessionID  `json:"id"`
	GameType    GameType   `json:"gameType"`
	Config      Config     `json:"config"`
	Winner      *int       `json:"winner,omitempty"` // seat number
	Seats       []SeatView `json:"seats"`
	Rounds      []*Round   `json:"rounds"`
	CompletedAt time.Time  `json:"completedAt"`
}
