// Package trace records structured events about what distress is doing.
//
// Tracing is off by default. It is enabled from the command line:
//
//	distress solve --trace=- --trace-level=detail input.txt
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// Every event has a scope; the level decides which scopes are emitted:
//
//   - LevelPhase: ScopeDriver and ScopePass (read, split, parse, part1, part2)
//   - LevelDetail: adds ScopeFile (one span per input file)
//   - LevelDebug: adds ScopeLine (one event per parsed block)
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
