package driver

import (
	"context"
	"time"

	"fortio.org/safecast"

	"silver/internal/ast"
	"silver/internal/diag"
	"silver/internal/observ"
	"silver/internal/source"
	"silver/internal/symbols"
	"silver/internal/syntax"
	"silver/internal/trace"
	"silver/internal/types"
)

// Options configure EvalText, EvalFile and EvaluateFiles.
type Options struct {
	MaxDiagnostics int // 0 means unbounded
	Observer       PhaseObserver
	// FileObserver receives the phases of every file of EvaluateFiles. It is
	// called from worker goroutines.
	FileObserver func(path string, ev PhaseEvent)
}

// EvalResult is the outcome of evaluating one source.
type EvalResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *syntax.Tree
	Bag     *diag.Bag
	Value   types.Value
	OK      bool // false when any error was reported; Value is then zero
	Timing  observ.Report
}

// EvalText evaluates text as a virtual file named name.
func EvalText(ctx context.Context, name, text string, store *symbols.Store, opts Options) *EvalResult {
	fs := source.NewFileSet()
	return evalFile(ctx, fs, fs.AddVirtual(name, []byte(text)), store, opts)
}

// EvalFile loads path and evaluates it.
func EvalFile(ctx context.Context, path string, store *symbols.Store, opts Options) (*EvalResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return evalFile(ctx, fs, id, store, opts), nil
}

func evalFile(ctx context.Context, fs *source.FileSet, id source.FileID, store *symbols.Store, opts Options) *EvalResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	timer := observ.NewTimer()

	tree := parseTimed(ctx, fs, id, reporter, opts.MaxDiagnostics, timer, opts.Observer)

	comp := NewCompilation(tree, reporter)
	comp.Timer = timer
	comp.Observer = opts.Observer
	value, ok := comp.Evaluate(ctx, store)

	return &EvalResult{
		FileSet: fs,
		File:    tree.File,
		Tree:    tree,
		Bag:     bag,
		Value:   value,
		OK:      ok,
		Timing:  timer.Report(),
	}
}

func parseTimed(ctx context.Context, fs *source.FileSet, id source.FileID, reporter diag.Reporter, maxDiagnostics int, timer *observ.Timer, observer PhaseObserver) *syntax.Tree {
	if observer != nil {
		observer(PhaseEvent{Name: "parse", Status: PhaseStart})
	}
	started := time.Now()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx))
	idx := timer.Begin("parse")

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		maxErrors = 0
	}
	tree := syntax.ParseWithOptions(fs, id, syntax.Options{Reporter: reporter, MaxErrors: maxErrors})

	timer.End(idx, fs.Get(id).Path)
	span.End(tree.Builder.Kind(ast.ExprNode(tree.Root)))
	if observer != nil {
		observer(PhaseEvent{Name: "parse", Status: PhaseEnd, Elapsed: time.Since(started)})
	}
	return tree
}
