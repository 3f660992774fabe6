package driver

import (
	"context"
	"errors"
	"fmt"

	"distress/internal/diag"
	"distress/internal/packet"
	"distress/internal/parser"
	"distress/internal/signal"
	"distress/internal/source"
	"distress/internal/trace"
)

// CheckedLine is one non-blank input line after parsing.
type CheckedLine struct {
	Line  signal.Line
	Value packet.Value
	OK    bool
}

type CheckResult struct {
	File  *source.File
	Lines []CheckedLine
	Bag   *diag.Bag
	// Suppressed — сколько повторов одной и той же проблемы отбросил дедуп.
	Suppressed int
}

// Check parses every line of file independently and collects diagnostics
// instead of stopping at the first error. Block structure is verified too.
func Check(ctx context.Context, file *source.File, maxDiagnostics int) *CheckResult {
	_, span := trace.Start(ctx, trace.ScopePass, "check")
	defer span.End("")

	bag := diag.NewBag(maxDiagnostics)
	// лексер и парсер оба видят битый символ; дедуп оставляет одну запись
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	res := &CheckResult{File: file, Bag: bag}
	lines := signal.Lines(file)
	if len(lines) == 0 {
		diag.Emit(reporter, diag.New(diag.SevWarning, diag.InputEmpty, source.Span{File: file.ID}, "input has no packets"))
		return res
	}

	p := parser.New(parser.Builder[packet.Value](parser.HeapBuilder{}), parser.Options{Reporter: reporter})
	for _, l := range lines {
		v, err := p.ParseRange(file, l.Span.Start, l.Span.End)
		if err != nil {
			if d, ok := parser.Diagnostic(err); ok {
				diag.Emit(reporter, d)
			}
			res.Lines = append(res.Lines, CheckedLine{Line: l})
			continue
		}
		res.Lines = append(res.Lines, CheckedLine{Line: l, Value: v, OK: true})
	}

	if _, err := signal.Split(file); err != nil {
		var be *signal.BlockError
		sp := source.Span{File: file.ID}
		if errors.As(err, &be) {
			if ls, ok := file.LineSpan(be.Line); ok {
				sp = ls
			}
		}
		diag.Emit(reporter, diag.NewError(diag.InputMalformedBlock, sp, err.Error()))
	}

	res.Suppressed = reporter.Suppressed()
	bag.Sort()
	return res
}

// Canonical renders every parsed line in canonical form, one per line.
func (r *CheckResult) Canonical() []string {
	out := make([]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		if l.OK {
			out = append(out, packet.Format(l.Value))
		}
	}
	return out
}

// Failed counts the lines that did not parse.
func (r *CheckResult) Failed() int {
	n := 0
	for _, l := range r.Lines {
		if !l.OK {
			n++
		}
	}
	return n
}

// Summary is a one-line report of the check.
func (r *CheckResult) Summary() string {
	s := fmt.Sprintf("%s: %d packets, %d failed", r.File.Path, len(r.Lines), r.Failed())
	if r.Suppressed > 0 {
		s += fmt.Sprintf(", %d duplicate diagnostics merged", r.Suppressed)
	}
	return s
}
