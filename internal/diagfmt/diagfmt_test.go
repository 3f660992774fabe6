package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"distress/internal/diag"
	"distress/internal/lexer"
	"distress/internal/source"
	"distress/internal/token"
)

func setup(t *testing.T, src string) (*source.FileSet, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	return fs, fs.Get(fs.AddVirtual("in.txt", []byte(src)))
}

func TestPrettyCaret(t *testing.T) {
	fs, f := setup(t, "[1]\n[1,@@,2]\n")
	bag := diag.NewBag(0)
	d := diag.NewError(diag.LexUnknownChar, source.Span{File: f.ID, Start: 7, End: 9}, "invalid token `@@`").
		WithNote(source.Span{File: f.ID, Start: 4, End: 5}, "list opened here")
	bag.Add(d)

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowSource: true, ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	want := "in.txt:2:4: ERROR LEX1001: invalid token `@@`\n" +
		"2 | [1,@@,2]\n" +
		"  |    ^~\n" +
		"  note: list opened here at in.txt:2:1\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyEOFCaret(t *testing.T) {
	fs, f := setup(t, "[1,2")
	var buf bytes.Buffer
	d := diag.NewError(diag.SynUnclosedBracket, source.Span{File: f.ID, Start: 4, End: 4}, "expected `]`")
	if err := PrettyDiagnostic(&buf, d, fs, PrettyOpts{ShowSource: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "  |     ^\n") {
		t.Errorf("caret misplaced:\n%s", buf.String())
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs, f := setup(t, "[世,1]")
	var buf bytes.Buffer
	d := diag.NewError(diag.LexUnknownChar, source.Span{File: f.ID, Start: 1, End: 4}, "invalid token `世`")
	if err := PrettyDiagnostic(&buf, d, fs, PrettyOpts{ShowSource: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "  |  ^~\n") {
		t.Errorf("wide rune underline wrong:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs, f := setup(t, "[x]")
	var plain, colored bytes.Buffer
	d := diag.NewError(diag.LexUnknownChar, source.Span{File: f.ID, Start: 1, End: 2}, "invalid token `x`")
	_ = PrettyDiagnostic(&plain, d, fs, PrettyOpts{})
	_ = PrettyDiagnostic(&colored, d, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("escape codes without color")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("no escape codes with color")
	}
}

func TestJSON(t *testing.T) {
	fs, f := setup(t, "[1]\n[@]\n")
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: f.ID, Start: 5, End: 6}, "invalid token `@`").
		WithNote(source.Span{File: f.ID, Start: 4, End: 5}, "here"))
	bag.Add(diag.New(diag.SevWarning, diag.InputEmpty, source.Span{File: f.ID}, "second"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1001" || d.Severity != "ERROR" || d.Location.StartLine != 2 || d.Location.StartCol != 2 {
		t.Errorf("diagnostic = %+v", d)
	}
	if len(d.Notes) != 1 || d.Location.File != "in.txt" {
		t.Errorf("notes/file = %+v", d)
	}
}

func TestTokens(t *testing.T) {
	fs, f := setup(t, "[12,[]]")
	lx := lexer.New(f, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(pretty.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("lines = %d:\n%s", len(lines), pretty.String())
	}
	if !strings.Contains(lines[1], `{integer}`) || !strings.Contains(lines[1], `"12"`) || !strings.Contains(lines[1], "1..3") {
		t.Errorf("int line = %q", lines[1])
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 7 || out[1].Value == nil || *out[1].Value != 12 || out[0].Value != nil {
		t.Errorf("json tokens = %+v", out)
	}
}
