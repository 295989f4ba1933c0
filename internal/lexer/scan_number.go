package lexer

import (
	"math"
	"strconv"

	"silver/internal/diag"
	"silver/internal/token"
)

// scanNumber accepts [0-9]+ optionally followed by '.' [0-9]+. A '.' not
// followed by a digit is left for the next token.
// An out-of-range literal is reported and still yields a Number with value 0.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) {
		lx.report(diag.LexBadNumber, sp, "the number "+text+" isn't a valid number")
		v = 0
	}
	return token.Token{Kind: token.Number, Span: sp, Text: text, Value: v}
}
