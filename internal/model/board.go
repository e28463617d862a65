package model

// Board dimensions for connect-four
const (
	BoardRows = 6
	BoardCols = 7
	WinLength = 4
)

// Cell holds the seat number occupying a board cell, or CellEmpty
type Cell uint8

// CellEmpty marks an unoccupied cell
const CellEmpty Cell = 0

// Board is the live connect-four grid. Cells are row-major with row 0
// at the top; tokens settle toward row BoardRows-1.
type Board struct {
	Cells [BoardRows][BoardCols]Cell `json:"cells"`
	Moves int                        `json:"moves"` // tokens placed so far
}

// NewBoard creates an empty connect-four board
func NewBoard() *Board {
	return &Board{}
}

// Reset clears the board for a fresh round
func (b *Board) Reset() {
	*b = Board{}
}

// ColumnOpen reports whether the column has room for another token
func (b *Board) ColumnOpen(col int) bool {
	if col < 0 || col >= BoardCols {
		return false
	}
	return b.Cells[0][col] == CellEmpty
}

// OpenColumns returns the columns that still have capacity
func (b *Board) OpenColumns() []int {
	var open []int
	for col := 0; col < BoardCols; col++ {
		if b.ColumnOpen(col) {
			open = append(open, col)
		}
	}
	return open
}

// Drop places a token in the given column, settling to the lowest
// empty row. Returns the landing row, or false if the column is full
// or out of range.
func (b *Board) Drop(col int, c Cell) (int, bool) {
	if col < 0 || col >= BoardCols {
		return 0, false
	}
	for row := BoardRows - 1; row >= 0; row-- {
		if b.Cells[row][col] == CellEmpty {
			b.Cells[row][col] = c
			b.Moves++
			return row, true
		}
	}
	return 0, false
}

// Lift removes the topmost token from the column. Used by search to
// undo speculative drops.
func (b *Board) Lift(col int) {
	for row := 0; row < BoardRows; row++ {
		if b.Cells[row][col] != CellEmpty {
			b.Cells[row][col] = CellEmpty
			b.Moves--
			return
		}
	}
}

// Full reports whether no empty cell remains
func (b *Board) Full() bool {
	return b.Moves >= BoardRows*BoardCols
}

// HasWin reports whether the given cell value holds four in a row on
// any axis anywhere on the board. A full re-scan is cheap at this
// board size.
func (b *Board) HasWin(c Cell) bool {
	// horizontal
	for row := 0; row < BoardRows; row++ {
		for col := 0; col <= BoardCols-WinLength; col++ {
			if b.lineOf(c, row, col, 0, 1) {
				return true
			}
		}
	}
	// vertical
	for row := 0; row <= BoardRows-WinLength; row++ {
		for col := 0; col < BoardCols; col++ {
			if b.lineOf(c, row, col, 1, 0) {
				return true
			}
		}
	}
	// diagonals
	for row := 0; row <= BoardRows-WinLength; row++ {
		for col := 0; col <= BoardCols-WinLength; col++ {
			if b.lineOf(c, row, col, 1, 1) {
				return true
			}
		}
		for col := WinLength - 1; col < BoardCols; col++ {
			if b.lineOf(c, row, col, 1, -1) {
				return true
			}
		}
	}
	return false
}

func (b *Board) lineOf(c Cell, row, col, dr, dc int) bool {
	for i := 0; i < WinLength; i++ {
		if b.Cells[row+i*dr][col+i*dc] != c {
			return false
		}
	}
	return true
}

// Encode flattens the board to a compact string usable as a
// transposition-table key.
func (b *Board) Encode() string {
	var out [BoardRows * BoardCols]byte
	k := 0
	for row := 0; row < BoardRows; row++ {
		for col := 0; col < BoardCols; col++ {
			out[k] = byte('0' + b.Cells[row][col])
			k++
		}
	}
	return string(out[:])
}
