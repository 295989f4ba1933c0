// Package syntax ties the lexer and parser together into a SyntaxTree that
// owns its AST and a read-only handle to the source file.
package syntax

import (
	"silver/internal/ast"
	"silver/internal/diag"
	"silver/internal/lexer"
	"silver/internal/parser"
	"silver/internal/source"
	"silver/internal/token"
)

// Tree is one parsed expression. Root is always valid, even after syntax
// errors.
type Tree struct {
	File    *source.File
	Builder *ast.Builder
	Root    ast.ExprID
	EOF     token.Token
	// Reporter received the lexer and parser diagnostics; Parse always sets it.
	Reporter diag.Reporter
}

// ParseString parses text held in a fresh virtual file.
func ParseString(text string, reporter diag.Reporter) *Tree {
	fs := source.NewFileSet()
	return Parse(fs, fs.AddVirtual("<input>", []byte(text)), reporter)
}

// Options tune a parse. MaxErrors caps the syntax errors the parser reports
// (0 means unbounded); the tree is always completed.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint
}

// Parse parses file id of fs. Diagnostics go to reporter; a nil reporter is
// replaced by a fresh bag kept on the tree.
func Parse(fs *source.FileSet, id source.FileID, reporter diag.Reporter) *Tree {
	return ParseWithOptions(fs, id, Options{Reporter: reporter})
}

// ParseWithOptions is Parse with an error budget.
func ParseWithOptions(fs *source.FileSet, id source.FileID, opts Options) *Tree {
	if opts.Reporter == nil {
		opts.Reporter = diag.NewBagReporter(0)
	}
	file := fs.Get(id)
	builder := ast.NewBuilder(ast.Hints{Exprs: uint(len(file.Content)/2 + 1)})
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	res := parser.ParseFile(file, lx, builder, parser.Options{
		Reporter:  opts.Reporter,
		MaxErrors: opts.MaxErrors,
	})
	return &Tree{
		File:     file,
		Builder:  builder,
		Root:     res.Root,
		EOF:      res.EOF,
		Reporter: opts.Reporter,
	}
}

// Lex returns the tokens of text, EOF included, without parsing.
func Lex(text string, reporter diag.Reporter) []token.Token {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<input>", []byte(text)))
	return lexer.New(file, lexer.Options{Reporter: reporter}).Tokens()
}

// Text returns the source text the tree was parsed from.
func (t *Tree) Text() string {
	return t.File.Text()
}
