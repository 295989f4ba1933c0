package parser

import (
	"silver/internal/ast"
	"silver/internal/diag"
	"silver/internal/token"
)

// parseExpr is precedence climbing. A prefix operator binds when its
// precedence is at least parentPrec, so chains like "--x" and "!!b" nest.
// Infix operators bind only when strictly above parentPrec, which makes
// equal-precedence chains grow to the left.
func (p *Parser) parseExpr(parentPrec int) ast.ExprID {
	var left ast.ExprID
	if prec := p.peek().Kind.UnaryPrecedence(); prec != token.PrecNone && prec >= parentPrec {
		opTok := p.advance()
		operand := p.parseExpr(prec)
		span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		left = p.arenas.Exprs.NewUnary(span, opTok, operand)
	} else {
		left = p.parsePrimary()
	}

	for {
		prec := p.peek().Kind.BinaryPrecedence()
		if prec == token.PrecNone || prec <= parentPrec {
			break
		}
		opTok := p.advance()
		right := p.parseExpr(prec)
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, left, opTok, right)
	}
	return left
}

// parsePrimary parses a literal, a parenthesized expression, an assignment
// or a name reference.
func (p *Parser) parsePrimary() ast.ExprID {
	switch tok := p.peek(); tok.Kind {
	case token.Number, token.KwTrue, token.KwFalse:
		return p.arenas.Exprs.NewLiteral(p.advance())

	case token.LParen:
		return p.parseGroup()

	case token.Ident:
		if p.peekN(1).Kind == token.Assign {
			return p.parseAssign()
		}
		return p.arenas.Exprs.NewName(p.advance())

	default:
		// Nothing here starts an expression. Report and stand in an empty name
		// without consuming, so the caller's next expect sees the real token.
		p.report(diag.SynExpectExpression, diag.SevError, tok.Span,
			"expected expression, found "+describeFound(tok))
		return p.arenas.Exprs.NewName(p.synthesize(token.Ident))
	}
}

func (p *Parser) parseGroup() ast.ExprID {
	open := p.advance()
	inner := p.parseExpr(token.PrecNone)
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen)
	span := open.Span.Cover(p.arenas.Exprs.Get(inner).Span).Cover(closeTok.Span)
	return p.arenas.Exprs.NewGroup(span, open, inner, closeTok)
}

// parseAssign parses `name = expression`; the right side is a full
// expression, so `a = b = 3` nests to the right.
func (p *Parser) parseAssign() ast.ExprID {
	name := p.advance()
	eq := p.advance()
	value := p.parseExpr(token.PrecNone)
	span := name.Span.Cover(p.arenas.Exprs.Get(value).Span)
	return p.arenas.Exprs.NewAssign(span, name, eq, value)
}
