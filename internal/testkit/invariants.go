// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"silver/internal/ast"
	"silver/internal/source"
	"silver/internal/syntax"
)

// CheckSpanInvariants walks a parsed tree and verifies its spans:
// 1) every span belongs to the tree's file and lies within its content
// 2) every child span is contained in its parent's span
// 3) sibling spans follow source order without overlapping
func CheckSpanInvariants(tree *syntax.Tree) error {
	if tree == nil || tree.Builder == nil || tree.File == nil {
		return fmt.Errorf("nil tree")
	}
	lenContent, err := safecast.Conv[uint32](len(tree.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	c := checker{b: tree.Builder, file: tree.File.ID, limit: lenContent}
	root := ast.ExprNode(tree.Root)
	if err := c.bounds(c.span(root)); err != nil {
		return fmt.Errorf("root: %w", err)
	}
	return c.walk(root)
}

type checker struct {
	b     *ast.Builder
	file  source.FileID
	limit uint32
}

func (c checker) span(n ast.Node) source.Span {
	if n.IsToken() {
		return n.Token.Span
	}
	if e := c.b.Exprs.Get(n.Expr); e != nil {
		return e.Span
	}
	return source.Span{File: c.file}
}

func (c checker) bounds(sp source.Span) error {
	if sp.File != c.file {
		return fmt.Errorf("span %v points to file %d, want %d", sp, sp.File, c.file)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("inverted span %v", sp)
	}
	if sp.End > c.limit {
		return fmt.Errorf("span %v ends beyond content (%d bytes)", sp, c.limit)
	}
	return nil
}

func (c checker) walk(n ast.Node) error {
	parent := c.span(n)
	prevEnd := parent.Start
	for _, child := range c.b.Children(n) {
		sp := c.span(child)
		if err := c.bounds(sp); err != nil {
			return fmt.Errorf("%s: %w", c.b.Kind(child), err)
		}
		if sp.Start < parent.Start || sp.End > parent.End {
			return fmt.Errorf("%s span %v is outside %s span %v", c.b.Kind(child), sp, c.b.Kind(n), parent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("%s span %v overlaps its previous sibling", c.b.Kind(child), sp)
		}
		prevEnd = sp.End
		if err := c.walk(child); err != nil {
			return err
		}
	}
	return nil
}
