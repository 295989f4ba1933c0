package ast

import (
	"silver/internal/source"
	"silver/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Literals *Arena[ExprLiteralData]
	Unaries  *Arena[ExprUnaryData]
	Binaries *Arena[ExprBinaryData]
	Groups   *Arena[ExprGroupData]
	Assigns  *Arena[ExprAssignData]
	Names    *Arena[ExprNameData]
}

// NewExprs creates per-kind arenas preallocated with capHint.
func NewExprs(capHint uint) *Exprs {
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Groups:   NewArena[ExprGroupData](capHint / 4),
		Assigns:  NewArena[ExprAssignData](capHint / 4),
		Names:    NewArena[ExprNameData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID, or nil.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (PayloadID, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return NoPayloadID, false
	}
	return expr.Payload, true
}

// NewLiteral creates a literal expression from a literal token.
func (e *Exprs) NewLiteral(tok token.Token) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Token: tok})
	return e.new(ExprLiteral, tok.Span, PayloadID(payload))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLiteral)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(uint32(p)), true
}

// NewUnary creates a prefix operator expression.
func (e *Exprs) NewUnary(span source.Span, op token.Token, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(uint32(p)), true
}

// NewBinary creates an infix operator expression.
func (e *Exprs) NewBinary(span source.Span, left ExprID, op token.Token, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Left: left, Op: op, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(uint32(p)), true
}

// NewGroup creates a parenthesized expression.
func (e *Exprs) NewGroup(span source.Span, open token.Token, inner ExprID, closeTok token.Token) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Open: open, Inner: inner, Close: closeTok})
	return e.new(ExprGroup, span, PayloadID(payload))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	p, ok := e.payload(id, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Groups.Get(uint32(p)), true
}

// NewAssign creates `name = value`.
func (e *Exprs) NewAssign(span source.Span, name, eq token.Token, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Name: name, Eq: eq, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(uint32(p)), true
}

// NewName creates a variable reference.
func (e *Exprs) NewName(name token.Token) ExprID {
	payload := e.Names.Allocate(ExprNameData{Name: name})
	return e.new(ExprName, name.Span, PayloadID(payload))
}

func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	p, ok := e.payload(id, ExprName)
	if !ok {
		return nil, false
	}
	return e.Names.Get(uint32(p)), true
}
