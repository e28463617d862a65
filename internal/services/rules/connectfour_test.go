package rules

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arcadehub/arcade/internal/model"
)

type ConnectFourSuite struct {
	suite.Suite
	board *model.Board
}

func TestConnectFourSuite(t *testing.T) {
	suite.Run(t, new(ConnectFourSuite))
}

func (s *ConnectFourSuite) SetupTest() {
	s.board = model.NewBoard()
}

// play applies a sequence of columns alternating seats 1,2,1,2...
func (s *ConnectFourSuite) play(cols ...int) {
	for _, col := range cols {
		_, _, err := ApplyDrop(s.board, TurnSeat(s.board), col)
		s.Require().NoError(err)
	}
}

func (s *ConnectFourSuite) TestDropSettlesToLowestRow() {
	drop, outcome, err := ApplyDrop(s.board, 1, 3)
	s.Require().NoError(err)
	s.Equal(OutcomeContinue, outcome)
	s.Equal(model.BoardRows-1, drop.Row)
	s.Equal(3, drop.Column)

	drop, _, err = ApplyDrop(s.board, 2, 3)
	s.Require().NoError(err)
	s.Equal(model.BoardRows-2, drop.Row)
}

func (s *ConnectFourSuite) TestOutOfTurnIsRejected() {
	_, _, err := ApplyDrop(s.board, 2, 0)
	s.ErrorIs(err, model.ErrNotYourTurn)

	s.play(0)
	_, _, err = ApplyDrop(s.board, 1, 1)
	s.ErrorIs(err, model.ErrNotYourTurn)
}

func (s *ConnectFourSuite) TestFullColumnIsRejected() {
	// Alternate within one column until it is full
	s.play(2, 2, 2, 2, 2, 2)
	_, _, err := ApplyDrop(s.board, TurnSeat(s.board), 2)
	s.ErrorIs(err, model.ErrColumnFull)
}

func (s *ConnectFourSuite) TestOutOfRangeColumnIsRejected() {
	_, _, err := ApplyDrop(s.board, 1, 7)
	s.ErrorIs(err, model.ErrInvalidMove)
	_, _, err = ApplyDrop(s.board, 1, -1)
	s.ErrorIs(err, model.ErrInvalidMove)
}

func (s *ConnectFourSuite) TestHorizontalWin() {
	// Seat 1 builds 0..3 on the bottom row
	s.play(0, 0, 1, 1, 2, 2)
	_, outcome, err := ApplyDrop(s.board, 1, 3)
	s.Require().NoError(err)
	s.Equal(OutcomeWin, outcome)
}

func (s *ConnectFourSuite) TestVerticalWin() {
	s.play(4, 5, 4, 5, 4, 5)
	_, outcome, err := ApplyDrop(s.board, 1, 4)
	s.Require().NoError(err)
	s.Equal(OutcomeWin, outcome)
}

func (s *ConnectFourSuite) TestRisingDiagonalWin() {
	// Seat 1 on columns 0,1,2,3 climbing the / diagonal
	s.play(0, 1, 1, 2, 2, 3, 2, 3, 3, 6)
	_, outcome, err := ApplyDrop(s.board, 1, 3)
	s.Require().NoError(err)
	s.Equal(OutcomeWin, outcome)
}

func (s *ConnectFourSuite) TestFallingDiagonalWin() {
	// Mirror image of the rising diagonal
	s.play(6, 5, 5, 4, 4, 3, 4, 3, 3, 0)
	_, outcome, err := ApplyDrop(s.board, 1, 3)
	s.Require().NoError(err)
	s.Equal(OutcomeWin, outcome)
}

func (s *ConnectFourSuite) TestGreedyFillDetectsBottomRowWin() {
	// Always playing the leftmost open column stacks each column in 6
	// moves, so every column bottom belongs to seat 1; the fourth
	// column bottom completes a horizontal win.
	for {
		seat := TurnSeat(s.board)
		open := s.board.OpenColumns()
		s.Require().NotEmpty(open)
		_, outcome, err := ApplyDrop(s.board, seat, open[0])
		s.Require().NoError(err)
		if outcome == OutcomeWin {
			s.Equal(1, seat)
			return
		}
		s.Require().Equal(OutcomeContinue, outcome)
	}
}

func (s *ConnectFourSuite) TestDrawOnKnownPattern() {
	// Fill the board with a checkered column pattern that admits no
	// four in a row: columns played in the order 0,1,2 / 1,2,0 bands.
	pattern := []int{
		0, 1, 2, 3, 4, 5, 6,
		0, 1, 2, 3, 4, 5, 6,
		1, 0, 3, 2, 5, 4, 6,
		1, 0, 3, 2, 5, 4, 6,
		0, 1, 2, 3, 4, 5, 6,
		0, 1, 2, 3, 4, 5, 6,
	}
	var last DropOutcome
	for _, col := range pattern {
		seat := TurnSeat(s.board)
		_, outcome, err := ApplyDrop(s.board, seat, col)
		s.Require().NoError(err)
		last = outcome
	}
	s.Equal(OutcomeDraw, last)
	s.True(s.board.Full())
	s.False(s.board.HasWin(1))
	s.False(s.board.HasWin(2))
}

func (s *ConnectFourSuite) TestNoWinnerOnEmptyBoard() {
	s.False(s.board.HasWin(1))
	s.False(s.board.HasWin(2))
	s.False(s.board.Full())
}
