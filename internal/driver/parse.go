package driver

import (
	"context"

	"silver/internal/diag"
	"silver/internal/observ"
	"silver/internal/source"
	"silver/internal/syntax"
)

type ParseResult struct {
	FileSet *source.FileSet
	Tree    *syntax.Tree
	Bag     *diag.Bag
}

// Parse loads path and parses it without binding.
func Parse(ctx context.Context, path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, id, maxDiagnostics), nil
}

// ParseText parses text held in a virtual file.
func ParseText(ctx context.Context, name, text string, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	return parseFile(ctx, fs, fs.AddVirtual(name, []byte(text)), maxDiagnostics)
}

func parseFile(ctx context.Context, fs *source.FileSet, id source.FileID, maxDiagnostics int) *ParseResult {
	bag := diag.NewBag(maxDiagnostics)
	tree := parseTimed(ctx, fs, id, &diag.BagReporter{Bag: bag}, maxDiagnostics, observ.NewTimer(), nil)
	return &ParseResult{FileSet: fs, Tree: tree, Bag: bag}
}
