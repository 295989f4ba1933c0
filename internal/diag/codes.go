package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1004

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2006
	SynTrailingTokens   Code = 2031
	SynExpectIdentifier Code = 2102
	SynExpectExpression Code = 2203

	// Семантические
	SemaInfo                  Code = 3000
	SemaUnresolvedSymbol      Code = 3005
	SemaTypeMismatch          Code = 3015
	SemaInvalidBinaryOperands Code = 3016
	SemaInvalidUnaryOperand   Code = 3017
)

var codeDescription = map[Code]string{
	UnknownCode:               "Unknown error",
	LexInfo:                   "Lexical information",
	LexUnknownChar:            "Unknown character",
	LexBadNumber:              "Bad number literal",
	SynInfo:                   "Syntax information",
	SynUnexpectedToken:        "Unexpected token",
	SynUnclosedParen:          "Unclosed parenthesis",
	SynTrailingTokens:         "Unexpected tokens after expression",
	SynExpectExpression:       "Expected expression",
	SynExpectIdentifier:       "Expected identifier",
	SemaInfo:                  "Semantic information",
	SemaUnresolvedSymbol:      "Undefined name",
	SemaTypeMismatch:          "Type mismatch",
	SemaInvalidBinaryOperands: "Invalid binary operands",
	SemaInvalidUnaryOperand:   "Invalid unary operand",
}

// Kind maps the code range to the producing stage.
func (c Code) Kind() Kind {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return LexerError
	case ic >= 2000 && ic < 3000:
		return ParserError
	case ic >= 3000 && ic < 4000:
		return BinderError
	}
	return UnknownKind
}

func (c Code) ID() string {
	switch c.Kind() {
	case LexerError:
		return fmt.Sprintf("LEX%04d", int(c))
	case ParserError:
		return fmt.Sprintf("SYN%04d", int(c))
	case BinderError:
		return fmt.Sprintf("SEM%04d", int(c))
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
