package fuzztests

import (
	"testing"

	"silver/internal/diag"
	"silver/internal/lexer"
	"silver/internal/source"
	"silver/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.sv", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End > uint32(len(file.Content)) { // #nosec G115 -- clamped above
				t.Fatalf("token %v has span %v after offset %d", tok.Kind, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
		}
	})
}
