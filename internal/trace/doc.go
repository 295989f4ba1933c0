// Package trace is the structured logging layer of silver: it records spans
// around driver operations and pipeline phases so slow or failing runs can be
// inspected after the fact.
//
// Enable it from the CLI:
//
//	silver eval --trace=- --trace-level=phase '1 + 2'
//
// Levels select how much is recorded:
//
//   - LevelOff: nothing
//   - LevelError: only what the ring keeps for a crash dump
//   - LevelPhase: driver operations and passes (lex, parse, bind, eval)
//   - LevelDetail: per-file events of batch runs
//   - LevelDebug: everything, including evaluator nodes
//
// A Tracer travels through context.Context (WithTracer / FromContext). Code
// opens spans with Begin and closes them with End; both are no-ops when the
// tracer is disabled for that scope.
package trace
