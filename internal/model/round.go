package model

// StepMoves is the per-seat move vector of one elimination step,
// keyed by seat number. Inactive seats are absent.
type StepMoves map[int]Symbol

// Drop is one connect-four column choice; the resulting board is
// reconstructible by replaying drops in order onto an empty board.
type Drop struct {
	Seat   int `json:"seat"`
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Round is one complete play-through of the underlying game. The
// winner is nil until decided and immutable afterwards; a resolved
// round with a nil winner is a draw (connect-four only).
type Round struct {
	Index    int         `json:"index"` // 1-based
	Winner   *int        `json:"winner,omitempty"`
	Resolved bool        `json:"resolved"`
	Steps    []StepMoves `json:"steps,omitempty"` // rps step log
	Drops    []Drop      `json:"drops,omitempty"` // connect-four move log
}

// NewRound opens a fresh round with the given 1-based index
func NewRound(index int) *Round {
	return &Round{Index: index}
}

// SetWinner marks the round decided. The first call wins; later calls
// are ignored so a finished round can never be re-resolved.
func (r *Round) SetWinner(seat int) bool {
	if r.Resolved {
		return false
	}
	r.Winner = &seat
	r.Resolved = true
	return true
}

// SetDraw closes the round with no winner
func (r *Round) SetDraw() bool {
	if r.Resolved {
		return false
	}
	r.Resolved = true
	return true
}
