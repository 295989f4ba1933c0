package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is a character the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Number is a numeric literal.
	Number
	// Ident is an identifier.
	Ident
	// KwTrue represents the 'true' keyword.
	KwTrue
	// KwFalse represents the 'false' keyword.
	KwFalse

	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	Bang   // !
	Assign // =
	EqEq   // ==
	BangEq // !=
	AndAnd // &&
	OrOr   // ||
	LParen // (
	RParen // )
)

var kindNames = [...]string{
	Invalid: "BadToken",
	EOF:     "EndOfFileToken",
	Number:  "NumberToken",
	Ident:   "IdentifierToken",
	KwTrue:  "TrueKeyword",
	KwFalse: "FalseKeyword",
	Plus:    "PlusToken",
	Minus:   "MinusToken",
	Star:    "StarToken",
	Slash:   "SlashToken",
	Bang:    "BangToken",
	Assign:  "EqualsToken",
	EqEq:    "EqualsEqualsToken",
	BangEq:  "BangEqualsToken",
	AndAnd:  "AmpersandAmpersandToken",
	OrOr:    "PipePipeToken",
	LParen:  "OpenParenthesisToken",
	RParen:  "CloseParenthesisToken",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UnknownToken"
}

// Text returns the fixed spelling of operators, parentheses and keywords,
// or "" for kinds whose text varies.
func (k Kind) Text() string {
	switch k {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Bang:
		return "!"
	case Assign:
		return "="
	case EqEq:
		return "=="
	case BangEq:
		return "!="
	case AndAnd:
		return "&&"
	case OrOr:
		return "||"
	case LParen:
		return "("
	case RParen:
		return ")"
	case KwTrue:
		return "true"
	case KwFalse:
		return "false"
	default:
		return ""
	}
}

// Describe is the form used in "expected X, found Y" messages.
func (k Kind) Describe() string {
	if t := k.Text(); t != "" {
		return "'" + t + "'"
	}
	switch k {
	case Number:
		return "number"
	case Ident:
		return "identifier"
	case EOF:
		return "end of input"
	default:
		return "invalid token"
	}
}
