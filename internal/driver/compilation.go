// Package driver orchestrates Silver runs: it gates evaluation on the
// diagnostic state of a tree, evaluates batches of files in parallel and
// persists REPL sessions.
package driver

import (
	"context"
	"time"

	"silver/internal/diag"
	"silver/internal/observ"
	"silver/internal/sema"
	"silver/internal/symbols"
	"silver/internal/syntax"
	"silver/internal/trace"
	"silver/internal/types"
	"silver/internal/vm"
)

// Compilation evaluates one parsed tree.
type Compilation struct {
	Tree *syntax.Tree
	// Reporter receives binder diagnostics. Lexer and parser errors block
	// evaluation through Tree.Reporter even when it is a different reporter.
	Reporter diag.Reporter
	Timer    *observ.Timer
	Observer PhaseObserver

	scope sema.GlobalScope
	steps int
}

// NewCompilation creates a compilation for tree. A nil reporter falls back to
// the one the tree was parsed with.
func NewCompilation(tree *syntax.Tree, reporter diag.Reporter) *Compilation {
	if reporter == nil {
		reporter = tree.Reporter
	}
	if reporter == nil {
		reporter = diag.NewBagReporter(0)
	}
	return &Compilation{
		Tree:     tree,
		Reporter: reporter,
		Timer:    observ.NewTimer(),
	}
}

// Evaluate binds the tree against store and, when no error was reported at
// any stage, evaluates it. The boolean is false exactly when an error was
// reported; the store is then left untouched.
func (c *Compilation) Evaluate(ctx context.Context, store *symbols.Store) (types.Value, bool) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	c.phase(tracer, parent, "bind", func() string {
		c.scope = sema.Bind(c.Tree.Builder, c.Tree.Root, sema.Options{
			Reporter: c.Reporter,
			Store:    store,
		})
		return c.scope.Expr.Type().String()
	})

	if c.Reporter.HadError() || c.syntaxFailed() {
		return types.Value{}, false
	}

	var result types.Value
	c.phase(tracer, parent, "eval", func() string {
		machine := vm.New(store, tracer)
		machine.Parent = parent
		v, vmErr := machine.Run(c.scope.Expr)
		if vmErr != nil {
			panic(vmErr)
		}
		c.steps = machine.Steps()
		result = v
		return v.String()
	})
	return result, true
}

// syntaxFailed checks the tree's own reporter in case the compilation was
// given a different one.
func (c *Compilation) syntaxFailed() bool {
	return c.Tree.Reporter != nil && c.Tree.Reporter.HadError()
}

// Declarations lists the variables the last Evaluate assigned, in order of
// first assignment.
func (c *Compilation) Declarations() []symbols.Variable {
	return c.scope.Declarations
}

// Steps returns the number of nodes the last evaluation visited.
func (c *Compilation) Steps() int {
	return c.steps
}

func (c *Compilation) phase(tracer trace.Tracer, parent uint64, name string, fn func() string) {
	if c.Observer != nil {
		c.Observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	span := trace.Begin(tracer, trace.ScopePass, name, parent)
	idx := c.Timer.Begin(name)
	started := time.Now()

	note := fn()

	c.Timer.End(idx, note)
	span.End(note)
	if c.Observer != nil {
		c.Observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(started)})
	}
}
