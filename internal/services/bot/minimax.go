package bot

import (
	"math"

	"github.com/arcadehub/arcade/internal/dependencies/random"
	"github.com/arcadehub/arcade/internal/model"
)

// DefaultDepth bounds the search so an AI move computed inline with
// the triggering event cannot stall the dispatcher noticeably.
const DefaultDepth = 5

// Terminal scores dominate any heuristic sum
const (
	winScore  = 1_000_000
	lossScore = -1_000_000
)

// Heuristic weights per 4-cell window
const (
	weightFour        = 100
	weightThreeOpen   = 5
	weightTwoOpen     = 2
	weightOppThree    = -4
	weightCenterToken = 3
)

// searchOrder visits columns center-first, which tightens alpha-beta
// bounds early
var searchOrder = [model.BoardCols]int{3, 2, 4, 1, 5, 0, 6}

// ttEntry is one transposition-table record. Whose turn it is follows
// from the encoded board's move parity, so the board key alone is
// sound; the stored depth guards against serving a shallower score to
// a deeper lookup.
type ttEntry struct {
	score int
	depth int
}

// MinimaxStrategy searches the column space with depth-limited
// minimax and alpha-beta pruning. The transposition table lives for a
// single ChooseColumn call and is dropped afterwards to bound memory.
type MinimaxStrategy struct {
	random random.Random
	depth  int
}

// Ensure MinimaxStrategy implements ColumnStrategy
var _ ColumnStrategy = (*MinimaxStrategy)(nil)

// NewMinimaxStrategy creates a MinimaxStrategy searching to the given
// depth; depth <= 0 selects DefaultDepth.
func NewMinimaxStrategy(rnd random.Random, depth int) *MinimaxStrategy {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &MinimaxStrategy{random: rnd, depth: depth}
}

// ChooseColumn returns the best column for the AI seat. Ties among
// equally scored root columns break by uniform random choice.
func (s *MinimaxStrategy) ChooseColumn(board *model.Board, seat int) int {
	me := model.Cell(seat)
	opp := model.Cell(3 - seat)
	memo := make(map[string]ttEntry)

	bestScore := math.MinInt
	var best []int
	for _, col := range searchOrder {
		if !board.ColumnOpen(col) {
			continue
		}
		board.Drop(col, me)
		score := s.search(board, s.depth-1, math.MinInt+1, math.MaxInt-1, false, me, opp, memo)
		board.Lift(col)

		switch {
		case score > bestScore:
			bestScore = score
			best = best[:0]
			best = append(best, col)
		case score == bestScore:
			best = append(best, col)
		}
	}

	if len(best) == 0 {
		// No open column; callers never ask on a full board, but a
		// legal answer beats a panic
		return 0
	}
	return best[s.random.Intn(len(best))]
}

func (s *MinimaxStrategy) search(board *model.Board, depth, alpha, beta int, maximizing bool, me, opp model.Cell, memo map[string]ttEntry) int {
	if board.HasWin(me) {
		return winScore + depth
	}
	if board.HasWin(opp) {
		return lossScore - depth
	}
	if board.Full() {
		return 0
	}
	if depth == 0 {
		return evaluate(board, me, opp)
	}

	key := board.Encode()
	if entry, ok := memo[key]; ok && entry.depth >= depth {
		return entry.score
	}

	var score int
	if maximizing {
		score = math.MinInt
		for _, col := range searchOrder {
			if !board.ColumnOpen(col) {
				continue
			}
			board.Drop(col, me)
			child := s.search(board, depth-1, alpha, beta, false, me, opp, memo)
			board.Lift(col)
			if child > score {
				score = child
			}
			if score > alpha {
				alpha = score
			}
			if alpha >= beta {
				break
			}
		}
	} else {
		score = math.MaxInt
		for _, col := range searchOrder {
			if !board.ColumnOpen(col) {
				continue
			}
			board.Drop(col, opp)
			child := s.search(board, depth-1, alpha, beta, true, me, opp, memo)
			board.Lift(col)
			if child < score {
				score = child
			}
			if score < beta {
				beta = score
			}
			if alpha >= beta {
				break
			}
		}
	}

	memo[key] = ttEntry{score: score, depth: depth}
	return score
}

// evaluate scores a non-terminal leaf: a weighted sum over every
// 4-cell window on all four axes plus a small bonus per token in the
// center column.
func evaluate(board *model.Board, me, opp model.Cell) int {
	score := 0

	for row := 0; row < model.BoardRows; row++ {
		if board.Cells[row][model.BoardCols/2] == me {
			score += weightCenterToken
		}
	}

	for row := 0; row < model.BoardRows; row++ {
		for col := 0; col < model.BoardCols; col++ {
			if col <= model.BoardCols-model.WinLength {
				score += scoreWindow(board, row, col, 0, 1, me, opp)
			}
			if row <= model.BoardRows-model.WinLength {
				score += scoreWindow(board, row, col, 1, 0, me, opp)
			}
			if row <= model.BoardRows-model.WinLength && col <= model.BoardCols-model.WinLength {
				score += scoreWindow(board, row, col, 1, 1, me, opp)
			}
			if row <= model.BoardRows-model.WinLength && col >= model.WinLength-1 {
				score += scoreWindow(board, row, col, 1, -1, me, opp)
			}
		}
	}

	return score
}

func scoreWindow(board *model.Board, row, col, dr, dc int, me, opp model.Cell) int {
	var mine, theirs, empty int
	for i := 0; i < model.WinLength; i++ {
		switch board.Cells[row+i*dr][col+i*dc] {
		case me:
			mine++
		case opp:
			theirs++
		default:
			empty++
		}
	}

	switch {
	case mine == 4:
		return weightFour
	case mine == 3 && empty == 1:
		return weightThreeOpen
	case mine == 2 && empty == 2:
		return weightTwoOpen
	case theirs == 3 && empty == 1:
		return weightOppThree
	}
	return 0
}
