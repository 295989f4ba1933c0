package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"silver/internal/ast"
	"silver/internal/diag"
	"silver/internal/source"
	"silver/internal/syntax"
	"silver/internal/token"
)

var (
	// ErrSyntax is returned for sources that do not parse cleanly.
	ErrSyntax = errors.New("format: source has syntax errors")
	// ErrIncomplete is returned for trees that contain recovery nodes.
	ErrIncomplete = errors.New("format: tree contains synthesized nodes")
)

type Options struct {
	// Minimal drops parentheses that do not change how the expression parses.
	Minimal bool
}

// atomPrec is the binding power of literals, names and kept groups.
const atomPrec = 100

type printer struct {
	b   *ast.Builder
	w   *Writer
	opt Options
}

// FormatTree renders tree followed by a newline.
func FormatTree(tree *syntax.Tree, opt Options) ([]byte, error) {
	if tree == nil || tree.Builder == nil {
		return nil, errors.New("format: nil tree")
	}
	p := printer{b: tree.Builder, w: NewWriter(tree.File), opt: opt}
	if err := p.expr(tree.Root, 0, false); err != nil {
		return nil, err
	}
	p.w.Newline()
	return p.w.Bytes(), nil
}

// FormatFile parses file id of fs and formats it. Diagnostics from the parse
// are returned in the bag; ErrSyntax means the bag holds errors.
func FormatFile(fs *source.FileSet, id source.FileID, opt Options, maxDiag int) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag(maxDiag)
	tree := syntax.Parse(fs, id, &diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		return nil, bag, ErrSyntax
	}
	out, err := FormatTree(tree, opt)
	return out, bag, err
}

// expr prints id in a slot whose parent binds with parentPrec. right marks
// the right operand of a binary operator, where equal precedence needs
// parentheses because binary operators associate to the left.
func (p *printer) expr(id ast.ExprID, parentPrec int, right bool) error {
	if p.opt.Minimal {
		id = p.unwrap(id)
	}
	prec := p.prec(id)
	wrap := prec < parentPrec || (right && prec == parentPrec)
	if wrap {
		p.w.WriteString("(")
	}
	if err := p.node(id); err != nil {
		return err
	}
	if wrap {
		p.w.WriteString(")")
	}
	return nil
}

func (p *printer) node(id ast.ExprID) error {
	e := p.b.Exprs.Get(id)
	if e == nil {
		return ErrIncomplete
	}
	switch e.Kind {
	case ast.ExprLiteral:
		lit, _ := p.b.Exprs.Literal(id)
		return p.token(lit.Token)
	case ast.ExprName:
		name, _ := p.b.Exprs.Name(id)
		return p.token(name.Name)
	case ast.ExprUnary:
		un, _ := p.b.Exprs.Unary(id)
		if err := p.token(un.Op); err != nil {
			return err
		}
		// "- -x" reads better than "--x"
		if inner, ok := p.b.Exprs.Unary(p.maybeUnwrap(un.Operand)); ok && inner.Op.Kind == un.Op.Kind {
			p.w.Space()
		}
		return p.expr(un.Operand, token.PrecPrefix, false)
	case ast.ExprBinary:
		bin, _ := p.b.Exprs.Binary(id)
		prec := bin.Op.Kind.BinaryPrecedence()
		if err := p.expr(bin.Left, prec, false); err != nil {
			return err
		}
		p.w.Space()
		if err := p.token(bin.Op); err != nil {
			return err
		}
		p.w.Space()
		return p.expr(bin.Right, prec, true)
	case ast.ExprGroup:
		grp, _ := p.b.Exprs.Group(id)
		if grp.Close.Missing() {
			return ErrIncomplete
		}
		p.w.WriteString("(")
		if err := p.expr(grp.Inner, 0, false); err != nil {
			return err
		}
		p.w.WriteString(")")
		return nil
	case ast.ExprAssign:
		as, _ := p.b.Exprs.Assign(id)
		if err := p.token(as.Name); err != nil {
			return err
		}
		p.w.WriteString(" = ")
		return p.expr(as.Value, 0, false)
	default:
		return fmt.Errorf("format: unknown expression kind %v", e.Kind)
	}
}

func (p *printer) token(tok token.Token) error {
	if tok.Missing() {
		return ErrIncomplete
	}
	p.w.CopySpan(tok.Span)
	return nil
}

// prec is the binding power of the node printed for id.
func (p *printer) prec(id ast.ExprID) int {
	e := p.b.Exprs.Get(id)
	if e == nil {
		return atomPrec
	}
	switch e.Kind {
	case ast.ExprUnary:
		return token.PrecPrefix
	case ast.ExprBinary:
		bin, _ := p.b.Exprs.Binary(id)
		return bin.Op.Kind.BinaryPrecedence()
	case ast.ExprAssign:
		return token.PrecNone
	default:
		return atomPrec
	}
}

func (p *printer) unwrap(id ast.ExprID) ast.ExprID {
	for {
		grp, ok := p.b.Exprs.Group(id)
		if !ok || grp.Close.Missing() {
			return id
		}
		id = grp.Inner
	}
}

func (p *printer) maybeUnwrap(id ast.ExprID) ast.ExprID {
	if p.opt.Minimal {
		return p.unwrap(id)
	}
	return id
}

// CheckRoundTrip formats tree, reparses the output and checks that both
// parse to the same expression. Parentheses count only when they are kept.
func CheckRoundTrip(tree *syntax.Tree, opt Options) (ok bool, msg string) {
	formatted, err := FormatTree(tree, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}
	bag := diag.NewBag(0)
	again := syntax.ParseString(string(formatted), &diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		return false, "fmt-check: reparse failed"
	}
	before := Shape(tree.Builder, tree.Root, opt.Minimal)
	after := Shape(again.Builder, again.Root, opt.Minimal)
	if before != after {
		return false, fmt.Sprintf("fmt-check: shape changed: %s -> %s", before, after)
	}
	return true, "fmt-check: OK"
}

// Shape renders id as an s-expression such as (+ 1 (* 2 x)). Groups appear
// as (group ...) unless stripGroups is set.
func Shape(b *ast.Builder, id ast.ExprID, stripGroups bool) string {
	var sb strings.Builder
	shape(&sb, b, id, stripGroups)
	return sb.String()
}

func shape(sb *strings.Builder, b *ast.Builder, id ast.ExprID, strip bool) {
	e := b.Exprs.Get(id)
	if e == nil {
		sb.WriteString("?")
		return
	}
	switch e.Kind {
	case ast.ExprLiteral:
		lit, _ := b.Exprs.Literal(id)
		switch v := lit.Token.Value.(type) {
		case float64:
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		case bool:
			sb.WriteString(strconv.FormatBool(v))
		default:
			sb.WriteString(lit.Token.Text)
		}
	case ast.ExprName:
		name, _ := b.Exprs.Name(id)
		sb.WriteString(identName(name.Name))
	case ast.ExprUnary:
		un, _ := b.Exprs.Unary(id)
		sb.WriteString("(" + un.Op.Kind.Text() + " ")
		shape(sb, b, un.Operand, strip)
		sb.WriteString(")")
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		sb.WriteString("(" + bin.Op.Kind.Text() + " ")
		shape(sb, b, bin.Left, strip)
		sb.WriteString(" ")
		shape(sb, b, bin.Right, strip)
		sb.WriteString(")")
	case ast.ExprGroup:
		grp, _ := b.Exprs.Group(id)
		if strip {
			shape(sb, b, grp.Inner, strip)
			return
		}
		sb.WriteString("(group ")
		shape(sb, b, grp.Inner, strip)
		sb.WriteString(")")
	case ast.ExprAssign:
		as, _ := b.Exprs.Assign(id)
		sb.WriteString("(= " + identName(as.Name) + " ")
		shape(sb, b, as.Value, strip)
		sb.WriteString(")")
	}
}

func identName(tok token.Token) string {
	if s, ok := tok.Value.(string); ok {
		return s
	}
	return tok.Text
}
