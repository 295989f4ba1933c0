package syntax

import (
	"fmt"
	"io"

	"silver/internal/ast"
)

// PrettyPrint writes the tree as ASCII art, one node per line:
//
//	\--BinaryExpression
//	   +--LiteralExpression 1
//	   |  \--NumberToken 1
//	   +--PlusToken
//	   \--LiteralExpression 2
//	      \--NumberToken 2
func (t *Tree) PrettyPrint(w io.Writer) error {
	return t.printNode(w, ast.ExprNode(t.Root), "", true)
}

func (t *Tree) printNode(w io.Writer, n ast.Node, indent string, last bool) error {
	branch := "+--"
	if last {
		branch = "\\--"
	}
	line := indent + branch + t.Builder.Kind(n)
	if v, ok := t.Builder.Value(n); ok {
		line += " " + v
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	if last {
		indent += "   "
	} else {
		indent += "|  "
	}
	children := t.Builder.Children(n)
	for i, child := range children {
		if err := t.printNode(w, child, indent, i == len(children)-1); err != nil {
			return err
		}
	}
	return nil
}
