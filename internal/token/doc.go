// Package token defines lexical token kinds for packet text.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Token.Value is meaningful only for Int tokens.
//   - Whitespace never reaches the token stream.
package token
