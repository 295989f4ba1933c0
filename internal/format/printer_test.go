package format

import (
	"errors"
	"testing"

	"silver/internal/diag"
	"silver/internal/source"
	"silver/internal/syntax"
)

func parseClean(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	bag := diag.NewBag(16)
	tree := syntax.ParseString(src, &diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("parse %q failed: %v", src, bag.Items())
	}
	return tree
}

func TestFormatTreeCanonicalSpacing(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1+2*  3", "1 + 2 * 3\n"},
		{"  x=  y  =7 ", "x = y = 7\n"},
		{"!( true||false )", "!(true || false)\n"},
		{"- -1", "- -1\n"},
		{"-(-1)", "-(-1)\n"},
		{"a==b&&c!=d", "a == b && c != d\n"},
		{"1.50/ 2", "1.50 / 2\n"},
	}
	for _, tc := range cases {
		got, err := FormatTree(parseClean(t, tc.src), Options{})
		if err != nil {
			t.Fatalf("FormatTree(%q): %v", tc.src, err)
		}
		if string(got) != tc.want {
			t.Fatalf("FormatTree(%q) = %q, want %q", tc.src, got, tc.want)
		}
	}
}

func TestFormatTreeMinimalParens(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"((1))", "1\n"},
		{"(1 + 2) * 3", "(1 + 2) * 3\n"},
		{"(1 * 2) + 3", "1 * 2 + 3\n"},
		{"(1 - 2) - 3", "1 - 2 - 3\n"},
		{"1 - (2 - 3)", "1 - (2 - 3)\n"},
		{"-(1 + 2)", "-(1 + 2)\n"},
		{"-(-x)", "- -x\n"},
		{"(-x) * 2", "-x * 2\n"},
		{"a = (b = 1)", "a = b = 1\n"},
		{"1 + (a = 2)", "1 + (a = 2)\n"},
		{"(a || b) && c", "(a || b) && c\n"},
	}
	for _, tc := range cases {
		tree := parseClean(t, tc.src)
		got, err := FormatTree(tree, Options{Minimal: true})
		if err != nil {
			t.Fatalf("FormatTree(%q): %v", tc.src, err)
		}
		if string(got) != tc.want {
			t.Fatalf("FormatTree(%q) = %q, want %q", tc.src, got, tc.want)
		}
		if ok, msg := CheckRoundTrip(tree, Options{Minimal: true}); !ok {
			t.Fatalf("round trip of %q: %s", tc.src, msg)
		}
	}
}

func TestFormatTreeRejectsRecoveredTrees(t *testing.T) {
	for _, src := range []string{"(1 + 2", "1 +", ""} {
		tree := syntax.ParseString(src, nil)
		if _, err := FormatTree(tree, Options{}); !errors.Is(err, ErrIncomplete) {
			t.Fatalf("FormatTree(%q) error = %v, want ErrIncomplete", src, err)
		}
	}
}

func TestFormatFileReportsSyntaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.sv", []byte("1 + )"))
	out, bag, err := FormatFile(fs, id, Options{}, 10)
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("err = %v, want ErrSyntax", err)
	}
	if out != nil || !bag.HasErrors() {
		t.Fatalf("expected diagnostics and no output")
	}

	id = fs.AddVirtual("good.sv", []byte("a=1\n"))
	out, _, err = FormatFile(fs, id, Options{}, 10)
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	if string(out) != "a = 1\n" {
		t.Fatalf("FormatFile = %q", out)
	}
}

func TestShape(t *testing.T) {
	tree := parseClean(t, "x = (1 + 2) * -y")
	if got, want := Shape(tree.Builder, tree.Root, false), "(= x (* (group (+ 1 2)) (- y)))"; got != want {
		t.Fatalf("Shape = %q, want %q", got, want)
	}
	if got, want := Shape(tree.Builder, tree.Root, true), "(= x (* (+ 1 2) (- y)))"; got != want {
		t.Fatalf("Shape(strip) = %q, want %q", got, want)
	}
}
