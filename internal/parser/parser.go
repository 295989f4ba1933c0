package parser

import (
	"silver/internal/ast"
	"silver/internal/diag"
	"silver/internal/lexer"
	"silver/internal/source"
	"silver/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result is the parsed root of one file plus its terminating EOF token.
type Result struct {
	Root ast.ExprID
	EOF  token.Token
}

// Parser holds the state for one file.
type Parser struct {
	toks     []token.Token // bad tokens already filtered out
	pos      int
	arenas   *ast.Builder
	file     *source.File
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile drains lx and parses the resulting tokens.
func ParseFile(file *source.File, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	return ParseTokens(file, lx.Tokens(), arenas, opts)
}

// ParseTokens parses exactly one expression followed by EOF. Bad tokens were
// reported by the lexer and are skipped here. The returned root is always
// valid: missing pieces are synthesized so later phases see a complete tree.
func ParseTokens(file *source.File, toks []token.Token, arenas *ast.Builder, opts Options) Result {
	filtered := make([]token.Token, 0, len(toks))
	for _, tok := range toks {
		if tok.Kind != token.Invalid {
			filtered = append(filtered, tok)
		}
	}
	if len(filtered) == 0 || filtered[len(filtered)-1].Kind != token.EOF {
		end := uint32(len(file.Content)) // #nosec G115 -- FileSet bounds content
		filtered = append(filtered, token.Token{Kind: token.EOF, Span: source.At(file.ID, end)})
	}

	p := Parser{
		toks:     filtered,
		arenas:   arenas,
		file:     file,
		opts:     opts,
		lastSpan: source.At(file.ID, 0),
	}

	root := p.parseExpr(token.PrecNone)
	eof := p.expectEnd()
	return Result{Root: root, EOF: eof}
}

// expectEnd requires EOF after the root. Trailing tokens are reported once
// and left unparsed.
func (p *Parser) expectEnd() token.Token {
	if p.at(token.EOF) {
		return p.peek()
	}
	extra := p.peek()
	p.report(diag.SynTrailingTokens, diag.SevError, extra.Span,
		"expected "+token.EOF.Describe()+", found "+describeFound(extra))
	return p.toks[len(p.toks)-1]
}
