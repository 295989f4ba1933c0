package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrecedenceTable(t *testing.T) {
	unary := map[Kind]int{Plus: 6, Minus: 6, Bang: 6, Star: 0, EqEq: 0}
	for k, want := range unary {
		assert.Equal(t, want, k.UnaryPrecedence(), "unary %s", k)
	}
	binary := map[Kind]int{
		Star: 5, Slash: 5, Plus: 4, Minus: 4, EqEq: 3, BangEq: 3,
		AndAnd: 2, OrOr: 1, Bang: 0, Assign: 0, LParen: 0, Number: 0,
	}
	for k, want := range binary {
		assert.Equal(t, want, k.BinaryPrecedence(), "binary %s", k)
	}
}

func TestKindText(t *testing.T) {
	assert.Equal(t, "&&", AndAnd.Text())
	assert.Equal(t, "false", KwFalse.Text())
	assert.Equal(t, "", Number.Text())
	assert.Equal(t, "'=='", EqEq.Describe())
	assert.Equal(t, "end of input", EOF.Describe())
	assert.Equal(t, "NumberToken", Number.String())
	assert.Equal(t, "UnknownToken", Kind(200).String())
}

func TestLookupKeyword(t *testing.T) {
	k, ok := LookupKeyword("true")
	assert.True(t, ok)
	assert.Equal(t, KwTrue, k)

	_, ok = LookupKeyword("True")
	assert.False(t, ok, "keywords are case-sensitive")
	_, ok = LookupKeyword("x")
	assert.False(t, ok)
}
