package lexer

import (
	"testing"

	"silver/internal/diag"
	"silver/internal/source"
	"silver/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, text string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sv", []byte(text))
	bag := diag.NewBag(100)
	lx := New(fs.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})
	return lx.Tokens(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerBasicKinds(t *testing.T) {
	toks, bag := lexAll(t, "x = (1 + 2.5) * -3 / y && !true || a == b != false")
	require.Equal(t, 0, bag.Len())
	assert.Equal(t, []token.Kind{
		token.Ident, token.Assign, token.LParen, token.Number, token.Plus, token.Number,
		token.RParen, token.Star, token.Minus, token.Number, token.Slash, token.Ident,
		token.AndAnd, token.Bang, token.KwTrue, token.OrOr, token.Ident, token.EqEq,
		token.Ident, token.BangEq, token.KwFalse, token.EOF,
	}, kinds(toks))
	assert.Equal(t, 2.5, toks[5].Value)
	assert.Equal(t, true, toks[14].Value)
	assert.Equal(t, false, toks[20].Value)
}

func TestLexerSpansMatchText(t *testing.T) {
	text := "  foo\t==  42\n"
	toks, _ := lexAll(t, text)
	for _, tok := range toks {
		assert.Equal(t, tok.Text, text[tok.Span.Start:tok.Span.End], "token %s", tok.Kind)
	}
	eof := toks[len(toks)-1]
	assert.Equal(t, uint32(len(text)), eof.Span.Start)
	assert.True(t, eof.Span.Empty())
}

func TestLexerAlwaysEndsWithSingleEOF(t *testing.T) {
	inputs := []string{"", "   ", "1", "€€", "&|", "((((", "1..2", "\xff\xfe", "a = = b"}
	for _, in := range inputs {
		toks, _ := lexAll(t, in)
		require.NotEmpty(t, toks, "input %q", in)
		eofs := 0
		for _, tok := range toks {
			if tok.Kind == token.EOF {
				eofs++
			}
		}
		assert.Equal(t, 1, eofs, "input %q", in)
		assert.Equal(t, token.EOF, toks[len(toks)-1].Kind, "input %q", in)
	}
}

func TestLexerUnknownCharacter(t *testing.T) {
	toks, bag := lexAll(t, "1 $ 2")
	assert.Equal(t, []token.Kind{token.Number, token.Invalid, token.Number, token.EOF}, kinds(toks))
	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, diag.LexUnknownChar, d.Code)
	assert.Equal(t, diag.LexerError, d.Kind())
	assert.Equal(t, source.Span{Start: 2, End: 3}, d.Primary)
}

func TestLexerUnknownRuneAdvancesWholeRune(t *testing.T) {
	toks, bag := lexAll(t, "€1")
	assert.Equal(t, []token.Kind{token.Invalid, token.Number, token.EOF}, kinds(toks))
	assert.Equal(t, "€", toks[0].Text)
	assert.Equal(t, 1, bag.Len())
}

func TestLexerSingleAmpersandIsBad(t *testing.T) {
	toks, bag := lexAll(t, "a & b")
	assert.Equal(t, []token.Kind{token.Ident, token.Invalid, token.Ident, token.EOF}, kinds(toks))
	assert.Equal(t, 1, bag.Len())
}

func TestLexerNumberOverflow(t *testing.T) {
	huge := "1"
	for range 400 {
		huge += "0"
	}
	toks, bag := lexAll(t, huge)
	require.Equal(t, []token.Kind{token.Number, token.EOF}, kinds(toks))
	assert.Equal(t, 0.0, toks[0].Value)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.LexBadNumber, bag.Items()[0].Code)
}

func TestLexerTrailingDotIsNotPartOfNumber(t *testing.T) {
	toks, bag := lexAll(t, "1.")
	assert.Equal(t, []token.Kind{token.Number, token.Invalid, token.EOF}, kinds(toks))
	assert.Equal(t, 1.0, toks[0].Value)
	assert.Equal(t, 1, bag.Len())
}

func TestLexerIdentifierNormalization(t *testing.T) {
	composed, _ := lexAll(t, "caf\u00e9")
	decomposed, _ := lexAll(t, "cafe\u0301")
	require.Equal(t, token.Ident, composed[0].Kind)
	require.Equal(t, token.Ident, decomposed[0].Kind)
	assert.NotEqual(t, composed[0].Text, decomposed[0].Text)
	assert.Equal(t, composed[0].Value, decomposed[0].Value)
}

func TestLexerRoundTrip(t *testing.T) {
	toks, _ := lexAll(t, "abc 123 4.5 true false + - * / ! = == != && || ( ) _x1 $")
	for _, tok := range toks[:len(toks)-1] {
		again, _ := lexAll(t, tok.Text)
		require.Len(t, again, 2, "re-lexing %q", tok.Text)
		assert.Equal(t, tok.Kind, again[0].Kind, "re-lexing %q", tok.Text)
		assert.Equal(t, tok.Value, again[0].Value, "re-lexing %q", tok.Text)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := New(fs.Get(fs.AddVirtual("p", []byte("1 +"))), Options{})
	assert.Equal(t, token.Number, lx.Peek().Kind)
	assert.Equal(t, token.Number, lx.Next().Kind)
	assert.Equal(t, token.Plus, lx.Next().Kind)
	assert.Equal(t, token.EOF, lx.Next().Kind)
	assert.Equal(t, token.EOF, lx.Next().Kind)
}
