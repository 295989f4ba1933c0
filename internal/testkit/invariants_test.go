package testkit

import (
	"testing"

	"silver/internal/ast"
	"silver/internal/source"
	"silver/internal/syntax"
	"silver/internal/token"
)

func TestCheckSpanInvariantsOnParsedTrees(t *testing.T) {
	for _, src := range []string{
		"1 + 2 * 3",
		"a = b = (true || !false)",
		"-(-x) / 4",
		// recovery trees still have consistent spans
		"(1 +",
		"",
		"1 2 3",
		"@ + $",
	} {
		if err := CheckSpanInvariants(syntax.ParseString(src, nil)); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestCheckSpanInvariantsDetectsBrokenSpans(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.sv", []byte("1"))
	b := ast.NewBuilder(ast.Hints{})
	lit := b.Exprs.NewLiteral(token.Token{
		Kind:  token.Number,
		Span:  source.Span{File: id, Start: 0, End: 5},
		Text:  "1",
		Value: float64(1),
	})
	tree := &syntax.Tree{File: fs.Get(id), Builder: b, Root: lit}
	if err := CheckSpanInvariants(tree); err == nil {
		t.Fatalf("expected an out-of-bounds span to be reported")
	}
	if err := CheckSpanInvariants(nil); err == nil {
		t.Fatalf("expected nil tree to be reported")
	}
}
