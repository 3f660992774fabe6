// Package diag defines the diagnostic model shared by the scanner, the
// parser and the input splitter.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer / parser / input splitter.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform formatting beyond the single-line short form
// used by tests and `distress check --format short`. Rendering lives in
// internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing at the issue.
//   - Notes – optional secondary spans/messages.
//
// Parse failures are fatal to the line that produced them, so a Bag normally
// holds at most one error per input line.
package diag
