package token

// Precedence levels, higher binds tighter. 0 means "not an operator here".
const (
	PrecNone   = 0
	PrecOr     = 1 // ||
	PrecAnd    = 2 // &&
	PrecEq     = 3 // == !=
	PrecAdd    = 4 // + -
	PrecMul    = 5 // * /
	PrecPrefix = 6 // unary + - !
)

// UnaryPrecedence returns the prefix binding power of k.
func (k Kind) UnaryPrecedence() int {
	switch k {
	case Plus, Minus, Bang:
		return PrecPrefix
	default:
		return PrecNone
	}
}

// BinaryPrecedence returns the infix binding power of k.
func (k Kind) BinaryPrecedence() int {
	switch k {
	case Star, Slash:
		return PrecMul
	case Plus, Minus:
		return PrecAdd
	case EqEq, BangEq:
		return PrecEq
	case AndAnd:
		return PrecAnd
	case OrOr:
		return PrecOr
	default:
		return PrecNone
	}
}
