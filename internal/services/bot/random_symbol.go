package bot

import (
	"github.com/arcadehub/arcade/internal/dependencies/random"
	"github.com/arcadehub/arcade/internal/model"
)

// RandomSymbolStrategy picks uniformly among the three symbols
type RandomSymbolStrategy struct {
	random random.Random
}

// Ensure RandomSymbolStrategy implements SymbolStrategy
var _ SymbolStrategy = (*RandomSymbolStrategy)(nil)

// NewRandomSymbolStrategy creates a new RandomSymbolStrategy
func NewRandomSymbolStrategy(rnd random.Random) *RandomSymbolStrategy {
	return &RandomSymbolStrategy{random: rnd}
}

// ChooseSymbol returns a uniformly random symbol
func (s *RandomSymbolStrategy) ChooseSymbol() model.Symbol {
	return model.Symbols[s.random.Intn(len(model.Symbols))]
}
