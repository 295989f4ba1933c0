// Package sema binds syntax trees: it resolves variables against the store,
// checks operator types and produces the typed tree the evaluator runs.
package sema

import (
	"fmt"

	"silver/internal/ast"
	"silver/internal/diag"
	"silver/internal/source"
	"silver/internal/symbols"
	"silver/internal/token"
	"silver/internal/types"
)

// Options configure one binding pass.
type Options struct {
	Reporter diag.Reporter
	// Store seeds the variable types. Binding reads it and never writes it.
	Store *symbols.Store
}

// Bind walks the tree once from root and always returns a complete bound
// tree. Callers must check the reporter before evaluating the result.
func Bind(builder *ast.Builder, root ast.ExprID, opts Options) GlobalScope {
	b := binder{
		builder:  builder,
		reporter: opts.Reporter,
		store:    opts.Store,
		vars:     make(map[string]types.Kind),
	}
	expr := b.bindExpr(root)
	return GlobalScope{Expr: expr, Declarations: b.declared}
}

type binder struct {
	builder  *ast.Builder
	reporter diag.Reporter
	store    *symbols.Store
	vars     map[string]types.Kind // declarations made by this expression
	declared []symbols.Variable
}

func (b *binder) lookup(name string) (types.Kind, bool) {
	if t, ok := b.vars[name]; ok {
		return t, true
	}
	if b.store != nil {
		return b.store.Type(name)
	}
	return types.Invalid, false
}

func (b *binder) declare(v symbols.Variable) {
	if _, seen := b.vars[v.Name]; !seen {
		b.declared = append(b.declared, v)
	}
	b.vars[v.Name] = v.Type
}

func (b *binder) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	if b.reporter == nil {
		return
	}
	diag.ReportError(b.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

func (b *binder) bindExpr(id ast.ExprID) BoundExpr {
	expr := b.builder.Exprs.Get(id)
	if expr == nil {
		panic(fmt.Sprintf("sema: missing expression %d", id))
	}
	switch expr.Kind {
	case ast.ExprLiteral:
		lit, _ := b.builder.Exprs.Literal(id)
		return b.bindLiteral(lit.Token)
	case ast.ExprUnary:
		u, _ := b.builder.Exprs.Unary(id)
		return b.bindUnary(u, expr.Span)
	case ast.ExprBinary:
		bin, _ := b.builder.Exprs.Binary(id)
		return b.bindBinary(bin, expr.Span)
	case ast.ExprGroup:
		g, _ := b.builder.Exprs.Group(id)
		return b.bindExpr(g.Inner)
	case ast.ExprName:
		n, _ := b.builder.Exprs.Name(id)
		return b.bindName(n.Name)
	case ast.ExprAssign:
		a, _ := b.builder.Exprs.Assign(id)
		return b.bindAssign(a, expr.Span)
	default:
		panic(fmt.Sprintf("sema: unexpected expression kind %s", expr.Kind))
	}
}

func (b *binder) bindLiteral(tok token.Token) BoundExpr {
	var v types.Value
	switch val := tok.Value.(type) {
	case float64:
		v = types.NumberValue(val)
	case bool:
		v = types.BoolValue(val)
	default:
		panic(fmt.Sprintf("sema: literal %s without value", tok.Kind))
	}
	return &BoundLiteral{Value: v, Sp: tok.Span}
}

func (b *binder) bindUnary(u *ast.ExprUnaryData, sp source.Span) BoundExpr {
	operand := b.bindExpr(u.Operand)
	op := types.UnaryOpFor(u.Op.Kind)
	node := &BoundUnary{Op: op, Operand: operand, Typ: types.Invalid, Sp: sp}
	if operand.Type().IsPoison() {
		return node
	}
	result, ok := types.LookupUnary(op, operand.Type())
	if !ok {
		b.errorf(diag.SemaInvalidUnaryOperand, u.Op.Span,
			"unary operator '%s' is not defined for type %s", u.Op.Text, operand.Type())
		return node
	}
	node.Typ = result
	return node
}

func (b *binder) bindBinary(bin *ast.ExprBinaryData, sp source.Span) BoundExpr {
	left := b.bindExpr(bin.Left)
	right := b.bindExpr(bin.Right)
	op := types.BinaryOpFor(bin.Op.Kind)
	node := &BoundBinary{Left: left, Op: op, Right: right, Typ: types.Invalid, Sp: sp}
	if left.Type().IsPoison() || right.Type().IsPoison() {
		return node
	}
	result, ok := types.LookupBinary(op, left.Type(), right.Type())
	if !ok {
		b.errorf(diag.SemaInvalidBinaryOperands, bin.Op.Span,
			"binary operator '%s' is not defined for types %s and %s", bin.Op.Text, left.Type(), right.Type())
		return node
	}
	node.Typ = result
	return node
}

func (b *binder) bindName(tok token.Token) BoundExpr {
	name := identName(tok)
	node := &BoundName{Var: symbols.Variable{Name: name, Type: types.Invalid}, Sp: tok.Span}
	if name == "" {
		return node // synthesized by the parser, already reported
	}
	typ, ok := b.lookup(name)
	if !ok {
		b.errorf(diag.SemaUnresolvedSymbol, tok.Span, "undefined name '%s'", name)
		return node
	}
	node.Var.Type = typ
	return node
}

func (b *binder) bindAssign(a *ast.ExprAssignData, sp source.Span) BoundExpr {
	value := b.bindExpr(a.Value)
	name := identName(a.Name)
	node := &BoundAssign{
		Var:   symbols.Variable{Name: name, Type: types.Invalid},
		Value: value,
		Typ:   types.Invalid,
		Sp:    sp,
	}
	if value.Type().IsPoison() {
		return node
	}
	if declared, ok := b.lookup(name); ok && declared != value.Type() {
		b.errorf(diag.SemaTypeMismatch, value.Span(),
			"cannot assign %s to variable of type %s", value.Type(), declared)
		return node
	}
	node.Var.Type = value.Type()
	node.Typ = value.Type()
	b.declare(node.Var)
	return node
}

func identName(tok token.Token) string {
	if s, ok := tok.Value.(string); ok {
		return s
	}
	return tok.Text
}
