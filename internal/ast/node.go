package ast

import (
	"strconv"

	"silver/internal/token"
)

// Node is either an expression or a token; it is the unit of the generic
// children view used by printers and tests.
type Node struct {
	Expr  ExprID
	Token *token.Token
}

// IsToken reports whether the node is a leaf token.
func (n Node) IsToken() bool { return n.Token != nil }

func exprNode(id ExprID) Node        { return Node{Expr: id} }
func tokenNode(tok token.Token) Node { return Node{Token: &tok} }

// Kind returns the display name of the node.
func (b *Builder) Kind(n Node) string {
	if n.IsToken() {
		return n.Token.Kind.String()
	}
	if expr := b.Exprs.Get(n.Expr); expr != nil {
		return expr.Kind.String()
	}
	return "MissingExpression"
}

// Value returns the literal value carried by a node, if any. Number tokens
// and literal expressions print their value inline in tree dumps.
func (b *Builder) Value(n Node) (string, bool) {
	if n.IsToken() {
		return tokenValue(*n.Token)
	}
	if lit, ok := b.Exprs.Literal(n.Expr); ok {
		return tokenValue(lit.Token)
	}
	return "", false
}

func tokenValue(tok token.Token) (string, bool) {
	switch v := tok.Value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// Children lists the direct children of an expression in source order.
func (b *Builder) Children(n Node) []Node {
	if n.IsToken() {
		return nil
	}
	expr := b.Exprs.Get(n.Expr)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprLiteral:
		lit, _ := b.Exprs.Literal(n.Expr)
		return []Node{tokenNode(lit.Token)}
	case ExprUnary:
		u, _ := b.Exprs.Unary(n.Expr)
		return []Node{tokenNode(u.Op), exprNode(u.Operand)}
	case ExprBinary:
		bin, _ := b.Exprs.Binary(n.Expr)
		return []Node{exprNode(bin.Left), tokenNode(bin.Op), exprNode(bin.Right)}
	case ExprGroup:
		g, _ := b.Exprs.Group(n.Expr)
		return []Node{tokenNode(g.Open), exprNode(g.Inner), tokenNode(g.Close)}
	case ExprAssign:
		a, _ := b.Exprs.Assign(n.Expr)
		return []Node{tokenNode(a.Name), tokenNode(a.Eq), exprNode(a.Value)}
	case ExprName:
		name, _ := b.Exprs.Name(n.Expr)
		return []Node{tokenNode(name.Name)}
	default:
		panic("ast: unknown expression kind " + expr.Kind.String())
	}
}

// ExprNode wraps id for the children view.
func ExprNode(id ExprID) Node { return exprNode(id) }
