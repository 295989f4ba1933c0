package parser

import (
	"silver/internal/diag"
	"silver/internal/source"
	"silver/internal/token"
)

// peekN returns the token n positions ahead; past the end it repeats EOF.
func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance consumes the current token. EOF is never consumed.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// expect consumes a token of kind k. Otherwise it reports "expected X, found
// Y" and returns a synthesized k token with empty text, leaving the current
// token in place so the next real token is not skipped.
func (p *Parser) expect(k token.Kind, code diag.Code) token.Token {
	if p.at(k) {
		return p.advance()
	}
	found := p.peek()
	p.report(code, diag.SevError, found.Span, "expected "+k.Describe()+", found "+describeFound(found))
	return p.synthesize(k)
}

// synthesize builds a placeholder token positioned where the missing one should be.
func (p *Parser) synthesize(k token.Kind) token.Token {
	tok := token.Token{Kind: k, Span: p.missingSpan()}
	switch k {
	case token.Number:
		tok.Value = float64(0)
	case token.Ident:
		tok.Value = ""
	}
	return tok
}

// missingSpan is an empty span at the current token, or right after the last
// consumed token when the current one is EOF.
func (p *Parser) missingSpan() source.Span {
	cur := p.peek()
	if cur.Kind == token.EOF && p.pos > 0 {
		return source.At(p.lastSpan.File, p.lastSpan.End)
	}
	return cur.Span.StartPoint()
}

func describeFound(tok token.Token) string {
	if tok.Kind == token.EOF || tok.Text == "" {
		return tok.Kind.Describe()
	}
	return "'" + tok.Text + "'"
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if p.opts.Enough() {
		return false // budget spent; the first errors already mark the compilation as failed
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}
