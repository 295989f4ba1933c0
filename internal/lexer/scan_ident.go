package lexer

import (
	"silver/internal/token"

	"golang.org/x/text/unicode/norm"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans a letter run and classifies it through
// token.LookupKeyword. Token.Text is the raw source slice; Value carries the
// NFC form so that differently composed spellings name the same variable.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()
	for {
		if b := lx.cursor.Peek(); b < utf8RuneSelf {
			if lx.cursor.EOF() || !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, sz = lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text, Value: k == token.KwTrue}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text, Value: norm.NFC.String(text)}
}
