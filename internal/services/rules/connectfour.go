package rules

import (
	"github.com/arcadehub/arcade/internal/model"
)

// DropOutcome classifies the board state after an applied drop
type DropOutcome int

const (
	// OutcomeContinue means the round goes on
	OutcomeContinue DropOutcome = iota
	// OutcomeWin means the acting seat completed four in a row
	OutcomeWin
	// OutcomeDraw means the board filled with no winner
	OutcomeDraw
)

// TurnSeat returns the seat number whose turn it is. Turn order is
// strictly alternating by move-count parity, not by message arrival
// order: seat 1 moves on even counts, seat 2 on odd.
func TurnSeat(board *model.Board) int {
	if board.Moves%2 == 0 {
		return 1
	}
	return 2
}

// ApplyDrop validates and applies one column choice for the given
// seat. Out-of-turn submissions and full columns return an error; the
// dispatch layer swallows these silently rather than surfacing them,
// so a racing client cannot desync the board.
func ApplyDrop(board *model.Board, seat, col int) (model.Drop, DropOutcome, error) {
	if seat != TurnSeat(board) {
		return model.Drop{}, OutcomeContinue, model.ErrNotYourTurn
	}
	if col < 0 || col >= model.BoardCols {
		return model.Drop{}, OutcomeContinue, model.ErrInvalidMove
	}
	if !board.ColumnOpen(col) {
		return model.Drop{}, OutcomeContinue, model.ErrColumnFull
	}

	row, _ := board.Drop(col, model.Cell(seat))
	drop := model.Drop{Seat: seat, Column: col, Row: row}

	if board.HasWin(model.Cell(seat)) {
		return drop, OutcomeWin, nil
	}
	if board.Full() {
		return drop, OutcomeDraw, nil
	}
	return drop, OutcomeContinue, nil
}
