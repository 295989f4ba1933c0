package lexer

import (
	"fmt"

	"silver/internal/diag"
	"silver/internal/token"
)

// twoByteOps is checked before singleByteOps so "==" never lexes as "=" "=".
var twoByteOps = [...]struct {
	a, b byte
	kind token.Kind
}{
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
}

var singleByteOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'!': token.Bang,
	'=': token.Assign,
	'(': token.LParen,
	')': token.RParen,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	for _, op := range twoByteOps {
		if lx.try2(op.a, op.b) {
			return emit(op.kind)
		}
	}
	if kind, ok := singleByteOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(kind)
	}

	// unknown character: exactly one rune becomes a bad token
	r, _ := lx.peekRune()
	lx.bumpRune()
	tok := emit(token.Invalid)
	lx.report(diag.LexUnknownChar, tok.Span, fmt.Sprintf("bad character input: %q", r))
	return tok
}
