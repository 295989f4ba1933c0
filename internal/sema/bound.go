package sema

import (
	"silver/internal/source"
	"silver/internal/symbols"
	"silver/internal/types"
)

// BoundExpr is a type-checked expression. The set of implementations is
// closed; consumers switch over all of them and panic on anything else.
type BoundExpr interface {
	Type() types.Kind
	Span() source.Span
	boundExpr()
}

type BoundLiteral struct {
	Value types.Value
	Sp    source.Span
}

type BoundUnary struct {
	Op      types.UnaryOp
	Operand BoundExpr
	Typ     types.Kind
	Sp      source.Span
}

type BoundBinary struct {
	Left  BoundExpr
	Op    types.BinaryOp
	Right BoundExpr
	Typ   types.Kind
	Sp    source.Span
}

// BoundName reads a variable. Var.Type is Invalid for unresolved names.
type BoundName struct {
	Var symbols.Variable
	Sp  source.Span
}

// BoundAssign writes Value into Var and yields it.
type BoundAssign struct {
	Var   symbols.Variable
	Value BoundExpr
	Typ   types.Kind
	Sp    source.Span
}

func (e *BoundLiteral) Type() types.Kind { return e.Value.Type() }
func (e *BoundUnary) Type() types.Kind   { return e.Typ }
func (e *BoundBinary) Type() types.Kind  { return e.Typ }
func (e *BoundName) Type() types.Kind    { return e.Var.Type }
func (e *BoundAssign) Type() types.Kind  { return e.Typ }

func (e *BoundLiteral) Span() source.Span { return e.Sp }
func (e *BoundUnary) Span() source.Span   { return e.Sp }
func (e *BoundBinary) Span() source.Span  { return e.Sp }
func (e *BoundName) Span() source.Span    { return e.Sp }
func (e *BoundAssign) Span() source.Span  { return e.Sp }

func (*BoundLiteral) boundExpr() {}
func (*BoundUnary) boundExpr()   {}
func (*BoundBinary) boundExpr()  {}
func (*BoundName) boundExpr()    {}
func (*BoundAssign) boundExpr()  {}

// GlobalScope is the binder output: the bound root plus every variable the
// expression assigns, in order of first assignment.
type GlobalScope struct {
	Expr         BoundExpr
	Declarations []symbols.Variable
}
