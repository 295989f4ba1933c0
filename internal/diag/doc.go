// Package diag defines the diagnostic model shared by the lexer, parser and
// binder.
//
// Every phase receives the same Reporter for one compilation, so findings from
// all three stages accumulate in one ordered collection. Phases never abort on
// a problem: they report it and recover locally. The only hard gate is
// Reporter.HadError, checked once by the driver before evaluation.
//
// A Diagnostic carries:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier with a stable string form (LEX1001…).
//     The code range determines the Kind: LexerError, ParserError, BinderError.
//   - Message – short human text, e.g. "expected ')', found end of input".
//   - Primary – the source.Span the problem points at.
//   - Notes – optional secondary spans.
//
// Package diag does no formatting beyond the one-line short form; rendering
// lives in internal/diagfmt.
package diag
