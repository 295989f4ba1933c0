package token

import (
	"silver/internal/source"
)

// Token is a single lexeme with its location and, for literals, its value.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Value is a float64 for Number, a bool for KwTrue/KwFalse and the
	// NFC-normalized name for Ident.
	Value any
}

// IsLiteral reports whether the token is a numeric or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// Missing reports whether the parser synthesized this token during recovery.
func (t Token) Missing() bool {
	return t.Text == "" && t.Kind != EOF
}
