package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"silver/internal/source"
	"silver/internal/symbols"
	"silver/internal/trace"
)

// SourceExt is the extension of Silver source files.
const SourceExt = ".sv"

// FileResult is the outcome of one file of a batch.
type FileResult struct {
	Path     string
	Result   *EvalResult // nil when the file could not be loaded
	Store    *symbols.Store
	Err      error
	Duration time.Duration
}

// Failed reports whether the file could not be loaded or had errors.
func (r FileResult) Failed() bool {
	return r.Err != nil || r.Result == nil || !r.Result.OK
}

// ListSourceFiles returns all *.sv files under dir in sorted order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// EvaluateFiles evaluates every path with its own store, at most jobs at a
// time (GOMAXPROCS when jobs <= 0). Results keep the order of paths. onDone,
// when set, is called from worker goroutines as files finish and must be
// safe for concurrent use. The returned error is only ever a context error.
func EvaluateFiles(ctx context.Context, paths []string, jobs int, opts Options, onDone func(FileResult)) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSet()
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return fileSet, results, nil
	}

	// FileSet is not safe for concurrent writes, so everything is loaded up front.
	fileIDs := make([]source.FileID, len(paths))
	loadErrs := make([]error, len(paths))
	for i, path := range paths {
		fileIDs[i], loadErrs[i] = fileSet.Load(path)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			res := FileResult{Path: path, Err: loadErrs[i]}
			if res.Err == nil {
				span := trace.Begin(tracer, trace.ScopeFile, "file:"+path, parent)
				fileCtx := trace.WithSpan(gctx, span)
				fileOpts := opts
				if opts.FileObserver != nil {
					fileOpts.Observer = func(ev PhaseEvent) { opts.FileObserver(path, ev) }
				}
				res.Store = symbols.NewStore()
				res.Result = evalFile(fileCtx, fileSet, fileIDs[i], res.Store, fileOpts)
				span.End(res.Result.Value.String())
			}
			res.Duration = time.Since(started)

			results[i] = res
			if onDone != nil {
				onDone(res)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
