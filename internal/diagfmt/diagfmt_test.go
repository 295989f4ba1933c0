package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"silver/internal/diag"
	"silver/internal/source"
	"silver/internal/syntax"
)

func bagFor(t *testing.T, text string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("in.sv", []byte(text))
	reporter := diag.NewBagReporter(10)
	syntax.Parse(fs, id, reporter)
	return reporter.Bag, fs
}

// TestPrettyCaret проверяет строку исходника и подчёркивание под span.
func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("in.sv", []byte("1 + true"))
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaInvalidBinaryOperands,
		Message:  "binary operator '+' is not defined for types Number and Boolean",
		Primary:  source.Span{File: id, Start: 2, End: 3},
	})

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}
	want := "in.sv:1:3: error[SEM3016]: binary operator '+' is not defined for types Number and Boolean\n" +
		"  1 | 1 + true\n" +
		"    |   ^\n"
	if buf.String() != want {
		t.Errorf("Pretty() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("in.sv", []byte("変数 + true"))
	bag := diag.NewBag(10)
	start := uint32(len("変数 + "))
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaInvalidBinaryOperands,
		Message:  "bad",
		Primary:  source.Span{File: id, Start: start, End: start + 4},
	})

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	// "変数" занимает 4 колонки терминала.
	if lines[2] != "    |        ^~~~" {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestPrettyReportsDropped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("in.sv", []byte("$$$"))
	bag := diag.NewBag(1)
	for i := range uint32(3) {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.LexUnknownChar,
			Message:  "bad character input",
			Primary:  source.Span{File: id, Start: i, End: i + 1},
		})
	}
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}
	if !strings.Contains(buf.String(), "and 2 more diagnostics") {
		t.Errorf("missing dropped line:\n%s", buf.String())
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("/home/user/project/src/a.sv", []byte("x"), 0)
	f := fs.Get(id)

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/src/a.sv"},
		{PathModeRelative, "src/a.sv"},
		{PathModeBasename, "a.sv"},
		{PathModeAuto, "src/a.sv"},
	}
	for _, tt := range tests {
		if got := displayPath(f, tt.mode, "/home/user/project"); got != tt.want {
			t.Errorf("displayPath(mode=%d) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestJSONDiagnostics(t *testing.T) {
	bag, fs := bagFor(t, "1 +\n  ")

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 {
		t.Fatalf("count = %d, want 1", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN2203" || d.Kind != "ParserError" || d.Severity != "ERROR" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Location.File != "in.sv" || d.Location.StartLine != 2 {
		t.Errorf("unexpected location %+v", d.Location)
	}
}

func TestJSONMaxCountsRest(t *testing.T) {
	bag, fs := bagFor(t, "$ $ $ 1")
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Dropped != 2 {
		t.Errorf("count=%d dropped=%d, want 1 and 2", out.Count, out.Dropped)
	}
}

func TestTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("in.sv", []byte("12 == x"))
	toks := syntax.Lex(fs.Get(id).Text(), nil)

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `NumberToken`) || !strings.Contains(lines[0], `"12" = 12 at 1:1-1:3`) {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[3], "EndOfFileToken") {
		t.Errorf("line 3 = %q", lines[3])
	}
}

func TestTokensJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, syntax.Lex("true", nil)); err != nil {
		t.Fatalf("FormatTokensJSON() error: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 2 || out[0].Kind != "TrueKeyword" || out[0].Value != true {
		t.Errorf("unexpected tokens %+v", out)
	}
}

func TestTreeJSON(t *testing.T) {
	tree := syntax.ParseString("-x", nil)
	node := BuildTreeJSON(tree)
	if node.Kind != "UnaryExpression" || len(node.Children) != 2 {
		t.Fatalf("unexpected root %+v", node)
	}
	if node.Children[0].Text != "-" || node.Children[1].Kind != "NameExpression" {
		t.Errorf("unexpected children %+v", node.Children)
	}
	if node.Span.End != 2 {
		t.Errorf("root span = %v", node.Span)
	}
}
