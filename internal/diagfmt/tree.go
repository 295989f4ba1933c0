package diagfmt

import (
	"encoding/json"
	"io"

	"silver/internal/ast"
	"silver/internal/source"
	"silver/internal/syntax"
)

// NodeJSON is one node of the JSON tree dump. Expression nodes carry
// children, token nodes carry text.
type NodeJSON struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Value    string      `json:"value,omitempty"`
	Span     source.Span `json:"span"`
	Children []NodeJSON  `json:"children,omitempty"`
}

// BuildTreeJSON converts the tree below root into NodeJSON.
func BuildTreeJSON(tree *syntax.Tree) NodeJSON {
	return buildNode(tree.Builder, ast.ExprNode(tree.Root))
}

func buildNode(b *ast.Builder, n ast.Node) NodeJSON {
	out := NodeJSON{Kind: b.Kind(n)}
	if v, ok := b.Value(n); ok {
		out.Value = v
	}
	if n.IsToken() {
		out.Text = n.Token.Text
		out.Span = n.Token.Span
		return out
	}
	if e := b.Exprs.Get(n.Expr); e != nil {
		out.Span = e.Span
	}
	for _, child := range b.Children(n) {
		out.Children = append(out.Children, buildNode(b, child))
	}
	return out
}

// FormatTreeJSON writes the tree as indented JSON.
func FormatTreeJSON(w io.Writer, tree *syntax.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTreeJSON(tree))
}
