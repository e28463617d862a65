package bot

import "github.com/arcadehub/arcade/internal/model"

// SymbolStrategy chooses an RPS symbol for an AI seat each step
type SymbolStrategy interface {
	ChooseSymbol() model.Symbol
}

// ColumnStrategy chooses a connect-four column for an AI seat
type ColumnStrategy interface {
	ChooseColumn(board *model.Board, seat int) int
}
