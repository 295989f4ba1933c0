package ast

import (
	"silver/internal/source"
	"silver/internal/token"
)

type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprUnary
	ExprBinary
	ExprGroup
	ExprAssign
	ExprName
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "LiteralExpression"
	case ExprUnary:
		return "UnaryExpression"
	case ExprBinary:
		return "BinaryExpression"
	case ExprGroup:
		return "ParenthesizedExpression"
	case ExprAssign:
		return "AssignmentExpression"
	case ExprName:
		return "NameExpression"
	default:
		return "UnknownExpression"
	}
}

// Expr is the common header of every expression node. Payload indexes the
// per-kind arena selected by Kind.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprLiteralData holds a Number, KwTrue or KwFalse token.
type ExprLiteralData struct {
	Token token.Token
}

type ExprUnaryData struct {
	Op      token.Token
	Operand ExprID
}

type ExprBinaryData struct {
	Left  ExprID
	Op    token.Token
	Right ExprID
}

// ExprGroupData is a parenthesized expression. Close may be synthesized.
type ExprGroupData struct {
	Open  token.Token
	Inner ExprID
	Close token.Token
}

// ExprAssignData is `name = value`.
type ExprAssignData struct {
	Name  token.Token
	Eq    token.Token
	Value ExprID
}

// ExprNameData is a variable reference. A synthesized Name has empty Text.
type ExprNameData struct {
	Name token.Token
}
