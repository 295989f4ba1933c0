package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"silver/internal/source"
	"silver/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Value any         `json:"value,omitempty"`
	Span  source.Span `json:"span"`
}

// FormatTokensPretty печатает токены по одному на строку:
//
//	  1: NumberToken     "12" = 12 at 1:1-1:3
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		line := fmt.Sprintf("%3d: %-24s", i+1, tok.Kind.String())
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		if tok.Value != nil && tok.Kind != token.Ident {
			line += fmt.Sprintf(" = %v", tok.Value)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d\n", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON печатает токены JSON-массивом.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span}
		if tok.Kind == token.Number || tok.Kind == token.KwTrue || tok.Kind == token.KwFalse {
			out.Value = tok.Value
		}
		output = append(output, out)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
