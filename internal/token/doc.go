// Package token defines the lexical vocabulary of Silver: token kinds, the
// operator precedence tables and the fixed text of punctuation and keywords.
//
// Invariants:
//   - Token.Text is exactly the source text covered by Token.Span, except for
//     tokens synthesized by the parser during recovery, whose Text is empty.
//   - Only "true" and "false" are keywords; every other letter run is an Ident.
//   - Whitespace never produces a token.
package token
