package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Profile is a read-only snapshot of a player held by the core.
// The player directory owns the authoritative record; the core reads
// it at move time and pushes stat deltas back after a game ends.
type Profile struct {
	ID          PlayerID    `json:"id"`
	DisplayName string      `json:"display_name"`
	AvatarRef   string      `json:"avatar_ref,omitempty"`
	Stats       PlayerStats `json:"stats"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PlayerStats are per-player aggregates across completed games
type PlayerStats struct {
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"win_rate"`
}

// Recompute refreshes the derived win rate from the counters
func (s *PlayerStats) Recompute() {
	total := s.Wins + s.Losses
	if total == 0 {
		s.WinRate = 0
		return
	}
	s.WinRate = float64(s.Wins) / float64(total)
}

// LeaderboardEntry is one row of the rating projection over stats
type LeaderboardEntry struct {
	PlayerID    PlayerID  `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Rating      float64   `json:"rating"`
	UpdatedAt   time.Time `json:"updated_at"`
}
