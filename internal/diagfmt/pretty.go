package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"distress/internal/diag"
	"distress/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret, path *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		path:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret, p.path} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

// PrettyDiagnostic renders a single diagnostic.
func PrettyDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	return prettyOne(w, d, fs, opts, newPalette(opts.Color))
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	sb.WriteString(pal.path.Sprint(location(d.Primary, fs, opts.PathMode)))
	sb.WriteString(": ")
	sb.WriteString(pal.severity(d.Severity).Sprint(d.Severity.String()))
	sb.WriteString(" ")
	sb.WriteString(pal.code.Sprint(d.Code.ID()))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteString("\n")

	if opts.ShowSource {
		writeSnippet(&sb, d.Primary, fs, pal)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			sb.WriteString("  ")
			sb.WriteString(pal.note.Sprint("note"))
			sb.WriteString(": ")
			sb.WriteString(n.Msg)
			sb.WriteString(" at ")
			sb.WriteString(location(n.Span, fs, opts.PathMode))
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func location(sp source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return formatPath(f, fs, mode) + ":" + start.String()
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if f.Flags.Has(source.FileVirtual) {
		return f.Path
	}
	return f.FormatPath(mode.String(), fs.BaseDir())
}

// writeSnippet печатает строку span'а и подчёркивание. Ширина считается в
// колонках терминала, поэтому широкие руны не сбивают каретку.
func writeSnippet(sb *strings.Builder, sp source.Span, fs *source.FileSet, pal palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, _ := fs.Resolve(sp)
	lineSpan, ok := f.LineSpan(start.Line)
	if !ok {
		return
	}
	line := strings.TrimRight(f.Text(lineSpan), "\r")
	num := strconv.FormatUint(uint64(start.Line), 10)
	pad := strings.Repeat(" ", len(num))

	fmt.Fprintf(sb, "%s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), line)

	relStart := min(int(sp.Start-lineSpan.Start), len(line))
	relEnd := min(int(sp.End-lineSpan.Start), len(line))
	if relEnd < relStart {
		relEnd = relStart
	}
	indent := runewidth.StringWidth(line[:relStart])
	width := max(1, runewidth.StringWidth(line[relStart:relEnd]))
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(sb, "%s %s %s%s\n", pad, pal.gutter.Sprint("|"), strings.Repeat(" ", indent), pal.caret.Sprint(marker))
}
