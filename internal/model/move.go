package model

// Symbol is one of the three rock-paper-scissors moves
type Symbol string

const (
	Rock     Symbol = "rock"
	Paper    Symbol = "paper"
	Scissors Symbol = "scissors"
)

// Symbols lists the valid symbols in a fixed order
var Symbols = []Symbol{Rock, Paper, Scissors}

// Valid reports whether the symbol is one of the three moves
func (s Symbol) Valid() bool {
	return s == Rock || s == Paper || s == Scissors
}

// BeatenBy returns the symbol that beats s under the cyclic relation
// rock > scissors > paper > rock.
func (s Symbol) BeatenBy() Symbol {
	switch s {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	default:
		return Rock
	}
}

// Move is a seat's submitted move for the in-flight step. Exactly one
// of the fields is meaningful depending on the session's game type.
type Move struct {
	Symbol Symbol `json:"symbol,omitempty"` // rps
	Column int    `json:"column"`           // connect-four
}
