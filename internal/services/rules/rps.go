package rules

import (
	"sort"

	"github.com/arcadehub/arcade/internal/model"
)

// StepResult is the outcome of one RPS elimination step
type StepResult struct {
	// Survivors are the seat numbers that stay active, in seat order
	Survivors []int
	// Eliminated are the seat numbers knocked out this step
	Eliminated []int
	// Stalemate is true when every seat survives (full tie or
	// three-way standoff) and the step must repeat
	Stalemate bool
}

// ResolveStep decides eliminations for one simultaneous-move exchange.
// It generalizes two-player rock-paper-scissors to N players:
//
//   - one distinct symbol played: full tie, everyone stays active
//   - all three symbols played: each symbol is beaten by another one
//     present, so nobody survives cleanly and everyone stays active
//   - otherwise: a symbol survives iff nothing that beats it was
//     played; survivors are exactly the seats holding such a symbol
//
// The function is deterministic and pure; moves holds one symbol per
// active seat keyed by seat number.
func ResolveStep(moves model.StepMoves) StepResult {
	present := make(map[model.Symbol]bool)
	for _, sym := range moves {
		present[sym] = true
	}

	if len(present) <= 1 {
		return stalemate(moves)
	}

	surviving := make(map[model.Symbol]bool)
	for sym := range present {
		if !present[sym.BeatenBy()] {
			surviving[sym] = true
		}
	}

	// All three symbols on the table beat each other in a cycle
	if len(surviving) == 0 {
		return stalemate(moves)
	}

	var result StepResult
	for seat, sym := range moves {
		if surviving[sym] {
			result.Survivors = append(result.Survivors, seat)
		} else {
			result.Eliminated = append(result.Eliminated, seat)
		}
	}
	sort.Ints(result.Survivors)
	sort.Ints(result.Eliminated)
	return result
}

func stalemate(moves model.StepMoves) StepResult {
	seats := make([]int, 0, len(moves))
	for seat := range moves {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return StepResult{Survivors: seats, Stalemate: true}
}
