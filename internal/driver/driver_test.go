package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"distress/internal/diag"
	"distress/internal/parser"
	"distress/internal/signal"
	"distress/internal/source"
	"distress/internal/token"
	"distress/internal/trace"
)

const example = `[1,1,3,1,1]
[1,1,5,1,1]

[[1],[2,3,4]]
[[1],4]

[9]
[[8,7,6]]

[[4,4],4,4]
[[4,4],4,4,4]

[7,7,7,7]
[7,7,7]

[]
[3]

[[[]]]
[[]]

[1,[2,[3,[4,[5,6,7]]]],8,9]
[1,[2,[3,[4,[5,6,0]]]],8,9]
`

func virtual(t *testing.T, name, src string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual(name, []byte(src)))
}

func TestSolveExample(t *testing.T) {
	for _, alloc := range []Alloc{AllocHeap, AllocArena} {
		for _, jobs := range []int{1, 2, 3, 8, 0} {
			ans, err := Solve(context.Background(), virtual(t, "ex.txt", example), Options{Alloc: alloc, Jobs: jobs})
			if err != nil {
				t.Fatalf("%s/%d: %v", alloc, jobs, err)
			}
			if ans.Part1 != 13 || ans.Part2 != 140 {
				t.Errorf("%s/%d: got %d/%d, want 13/140", alloc, jobs, ans.Part1, ans.Part2)
			}
			if !slices.Equal(ans.Ranks, []int{10, 14}) {
				t.Errorf("%s/%d: ranks %v", alloc, jobs, ans.Ranks)
			}
			if ans.Pairs != 8 || ans.Packets != 16 {
				t.Errorf("%s/%d: pairs %d packets %d", alloc, jobs, ans.Pairs, ans.Packets)
			}
		}
	}
}

func TestSolveSinglePart(t *testing.T) {
	f := virtual(t, "ex.txt", example)
	ans, err := Solve(context.Background(), f, Options{Part: 1})
	if err != nil {
		t.Fatal(err)
	}
	if ans.Part1 != 13 || ans.Part2 != 0 || ans.HasPart(2) {
		t.Errorf("part 1 only: %+v", ans)
	}
	ans, err = Solve(context.Background(), f, Options{Part: 2, Alloc: AllocArena})
	if err != nil {
		t.Fatal(err)
	}
	if ans.Part1 != 0 || ans.Part2 != 140 || ans.HasPart(1) {
		t.Errorf("part 2 only: %+v", ans)
	}
	if _, err := Solve(context.Background(), f, Options{Part: 3}); err == nil {
		t.Error("part 3 accepted")
	}
}

func TestSolveCustomDividers(t *testing.T) {
	ans, err := Solve(context.Background(), virtual(t, "ex.txt", example), Options{
		Part:     2,
		Alloc:    AllocArena,
		Jobs:     4,
		Dividers: []string{"[[6]]", "[[2]]", "[[10]]"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(ans.Ranks, []int{10, 14, 19}) || ans.Part2 != 10*14*19 {
		t.Errorf("ranks %v key %d", ans.Ranks, ans.Part2)
	}
}

func TestSolveEmptyInput(t *testing.T) {
	ans, err := Solve(context.Background(), virtual(t, "empty.txt", "\n\n"), Options{Alloc: AllocArena, Jobs: 4})
	if err != nil {
		t.Fatal(err)
	}
	if ans.Part1 != 0 || ans.Part2 != 2 {
		t.Errorf("empty input: %d/%d, want 0/2", ans.Part1, ans.Part2)
	}
}

func TestSolveErrors(t *testing.T) {
	for _, alloc := range []Alloc{AllocHeap, AllocArena} {
		_, err := Solve(context.Background(), virtual(t, "bad.txt", "[1]\n[2]\n\n[3]\n[4,@]\n"), Options{Alloc: alloc, Jobs: 2})
		var ic *parser.InvalidCharacterError
		if !errors.As(err, &ic) {
			t.Fatalf("%s: want InvalidCharacterError, got %v", alloc, err)
		}
		if !strings.Contains(err.Error(), "bad.txt: line 5") {
			t.Errorf("%s: error %q lacks file and line", alloc, err)
		}

		_, err = Solve(context.Background(), virtual(t, "odd.txt", "[1]\n[2]\n[3]\n"), Options{Alloc: alloc})
		if !errors.Is(err, signal.ErrMalformedBlock) {
			t.Errorf("%s: want ErrMalformedBlock, got %v", alloc, err)
		}
	}
}

func TestSolveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Solve(ctx, virtual(t, "ex.txt", example), Options{Jobs: 2}); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestSolveTimingsAndTrace(t *testing.T) {
	var buf bytes.Buffer
	ctx := trace.WithTracer(context.Background(), trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText))
	ans, err := Solve(ctx, virtual(t, "ex.txt", example), Options{})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range ans.Timing.Phases {
		names = append(names, p.Name)
	}
	if !slices.Equal(names, []string{"split", "parse", "part1", "part2"}) {
		t.Errorf("phases = %v", names)
	}
	for _, want := range []string{"→ split", "← parse", "← part1 (13)", "← part2 (140)"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("trace missing %q:\n%s", want, buf.String())
		}
	}
}

func TestSplitChunks(t *testing.T) {
	blocks := make([]signal.Block, 10)
	for _, jobs := range []int{1, 3, 4, 10, 20} {
		chunks := splitChunks[int](blocks, jobs)
		total := 0
		for _, c := range chunks {
			total += len(c.blocks)
		}
		if total != 10 || len(chunks) != min(jobs, 10) {
			t.Errorf("jobs=%d: %d chunks, %d blocks", jobs, len(chunks), total)
		}
	}
	if got := splitChunks[int](nil, 4); len(got) != 1 {
		t.Errorf("empty input must give one chunk, got %d", len(got))
	}
}

func TestParseAlloc(t *testing.T) {
	if a, err := ParseAlloc("ARENA"); err != nil || a != AllocArena {
		t.Errorf("ParseAlloc(ARENA) = %v, %v", a, err)
	}
	if a, err := ParseAlloc(""); err != nil || a != AllocHeap {
		t.Errorf("ParseAlloc(\"\") = %v, %v", a, err)
	}
	if _, err := ParseAlloc("stack"); err == nil {
		t.Error("ParseAlloc accepted stack")
	}
}

func TestSolveFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(good, []byte(example), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("[1]\n[2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.txt")

	var mu sync.Mutex
	seen := map[string][]FileStatus{}
	observe := func(ev FileEvent) {
		mu.Lock()
		defer mu.Unlock()
		seen[ev.Path] = append(seen[ev.Path], ev.Status)
	}

	res, err := SolveFiles(context.Background(), source.NewFileSet(), []string{good, bad, missing}, Options{Jobs: 2}, observe)
	if err != nil {
		t.Fatal(err)
	}
	if res[0].Err != nil || res[0].Answer.Part1 != 13 || res[0].Answer.Part2 != 140 {
		t.Errorf("good: %+v", res[0])
	}
	var ut *parser.UnexpectedTokenError
	if !errors.As(res[1].Err, &ut) {
		t.Errorf("bad: %v", res[1].Err)
	}
	if res[2].Err == nil || res[2].File != nil {
		t.Errorf("missing: %+v", res[2])
	}
	if got := seen[good]; !slices.Equal(got, []FileStatus{FileQueued, FileWorking, FileDone}) {
		t.Errorf("good events %v", got)
	}
	if got := seen[missing]; !slices.Equal(got, []FileStatus{FileFailed}) {
		t.Errorf("missing events %v", got)
	}
}

func TestCheck(t *testing.T) {
	f := virtual(t, "check.txt", "[1,2]\n[1,@]\n\n[3\n[[4]]\n[5]\n")
	res := Check(context.Background(), f, 0)
	if len(res.Lines) != 5 || res.Failed() != 2 {
		t.Fatalf("lines %d failed %d", len(res.Lines), res.Failed())
	}
	var codes []diag.Code
	for _, d := range res.Bag.Items() {
		codes = append(codes, d.Code)
	}
	want := []diag.Code{diag.LexUnknownChar, diag.InputMalformedBlock, diag.SynUnclosedBracket}
	if !slices.Equal(codes, want) {
		t.Errorf("codes = %v, want %v", codes, want)
	}
	if got := res.Canonical(); !slices.Equal(got, []string{"[1,2]", "[[4]]", "[5]"}) {
		t.Errorf("canonical = %v", got)
	}
	// `@` видят и лексер, и парсер
	if res.Suppressed != 1 {
		t.Errorf("suppressed = %d, want 1", res.Suppressed)
	}
	if !strings.Contains(res.Summary(), "5 packets, 2 failed, 1 duplicate diagnostics merged") {
		t.Errorf("summary = %q", res.Summary())
	}
}

func TestCheckEmpty(t *testing.T) {
	res := Check(context.Background(), virtual(t, "e.txt", ""), 0)
	if res.Bag.HasErrors() || !res.Bag.HasWarnings() {
		t.Errorf("empty input must warn: %+v", res.Bag.Items())
	}
}

func TestTokenize(t *testing.T) {
	res := Tokenize(virtual(t, "t.txt", "[1, [x]]"), 0)
	var kinds []token.Kind
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.LBracket, token.Int, token.Comma, token.LBracket, token.Invalid, token.RBracket, token.RBracket, token.EOF}
	if !slices.Equal(kinds, want) {
		t.Errorf("kinds = %v", kinds)
	}
	if res.Bag.Len() != 1 {
		t.Errorf("diagnostics = %d, want 1", res.Bag.Len())
	}
}

func TestSortFile(t *testing.T) {
	out, err := SortFile(virtual(t, "ex.txt", example), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 18 {
		t.Fatalf("len = %d", len(out))
	}
	var dividers []int
	for i, sp := range out {
		if sp.Divider {
			dividers = append(dividers, i+1)
		}
	}
	if !slices.Equal(dividers, []int{10, 14}) {
		t.Errorf("divider positions %v", dividers)
	}
	if out[0].Value.String() != "[]" || out[17].Value.String() != "[9]" {
		t.Errorf("first %s last %s", out[0].Value, out[17].Value)
	}
}

func TestSortFileDividersLeadEquivalents(t *testing.T) {
	f := virtual(t, "eq.txt", "[2]\n[[6]]\n")
	out, err := SortFile(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	key := 1
	var positions []int
	for i, sp := range out {
		if sp.Divider {
			key *= i + 1
			positions = append(positions, i+1)
		}
	}
	if !slices.Equal(positions, []int{1, 3}) {
		t.Errorf("divider positions %v", positions)
	}
	ans, err := Solve(context.Background(), f, Options{Part: 2})
	if err != nil {
		t.Fatal(err)
	}
	if ans.Part2 != key || key != 3 {
		t.Errorf("sort key %d, solve part 2 %d", key, ans.Part2)
	}
}
