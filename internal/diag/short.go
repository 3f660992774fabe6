package diag

import (
	"fmt"
	"sort"
	"strings"

	"distress/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics into a stable,
// single-line-per-entry representation used by `check --format short` and by
// tests. Entries are sorted by path, position, severity and code.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		rendered = appendShort(rendered, fs, d.Severity.Tag(), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			rendered = appendShort(rendered, fs, "note", d.Code, n.Span, n.Msg)
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		return di.Code < dj.Code
	})

	lines := make([]string, 0, len(rendered))
	for _, r := range rendered {
		lines = append(lines, fmt.Sprintf("%s %s %s:%d:%d %s", r.Severity, r.Code, r.Path, r.Line, r.Column, r.Message))
	}
	return strings.Join(lines, "\n")
}

func appendShort(out []shortDiagnostic, fs *source.FileSet, sev string, code Code, sp source.Span, msg string) []shortDiagnostic {
	f := fs.Get(sp.File)
	if f == nil {
		return out
	}
	start, _ := fs.Resolve(sp)
	return append(out, shortDiagnostic{
		Severity: sev,
		Code:     code.ID(),
		Path:     f.FormatPath("relative", fs.BaseDir()),
		Line:     start.Line,
		Column:   start.Col,
		Message:  strings.Join(strings.Fields(msg), " "),
	})
}
