package signal_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"distress/internal/packet"
	"distress/internal/parser"
	"distress/internal/signal"
	"distress/internal/source"
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

func file(t *testing.T, src string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("example.txt", []byte(src)))
}

func TestExamplePartOne(t *testing.T) {
	pairs, err := signal.ParsePairs(example)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 8 {
		t.Fatalf("pairs = %d, want 8", len(pairs))
	}
	if got := signal.SumOrderedPairs(pairs); got != 13 {
		t.Errorf("SumOrderedPairs = %d, want 13", got)
	}
	if got := signal.OrderedIndices(pairs); !slices.Equal(got, []int{1, 2, 4, 6}) {
		t.Errorf("OrderedIndices = %v", got)
	}
}

func TestExamplePartTwo(t *testing.T) {
	packets, err := signal.ParseFlat(example)
	if err != nil {
		t.Fatal(err)
	}
	if len(packets) != 16 {
		t.Fatalf("packets = %d, want 16", len(packets))
	}
	if got := signal.DecoderKey(packets, signal.Dividers()); got != 140 {
		t.Errorf("DecoderKey = %d, want 140", got)
	}
	if got := signal.DividerRanks(packets, signal.Dividers()); !slices.Equal(got, []int{10, 14}) {
		t.Errorf("DividerRanks = %v", got)
	}
}

func TestDecoderKeyMatchesFullSort(t *testing.T) {
	packets, err := signal.ParseFlat(example)
	if err != nil {
		t.Fatal(err)
	}
	dividers := signal.Dividers()
	all := append(slices.Clone(packets), dividers...)
	packet.Sort(all)
	key := 1
	for i, v := range all {
		for _, d := range dividers {
			if packet.Equal(v, d) {
				key *= i + 1
			}
		}
	}
	if got := signal.DecoderKey(packets, dividers); got != key {
		t.Errorf("DecoderKey = %d, full sort gives %d", got, key)
	}
}

func TestDecoderKeyDividerOrderIrrelevant(t *testing.T) {
	packets, err := signal.ParseFlat(example)
	if err != nil {
		t.Fatal(err)
	}
	d := signal.Dividers()
	reversed := []packet.Value{d[1], d[0]}
	if signal.DecoderKey(packets, reversed) != signal.DecoderKey(packets, d) {
		t.Error("divider order changed the key")
	}
}

func TestDecoderKeyEdges(t *testing.T) {
	d := signal.Dividers()
	if got := signal.DecoderKey(nil, d); got != 2 {
		t.Errorf("no packets: key = %d, want 2", got)
	}
	// [2] эквивалентен [[2]] и не сдвигает делитель
	eq, err := signal.ParseFlat("[2]\n[[6]]\n")
	if err != nil {
		t.Fatal(err)
	}
	if got := signal.DecoderKey(eq, d); got != 1*3 {
		t.Errorf("equivalent packets: key = %d, want 3", got)
	}
	if got := signal.DecoderKey(eq, nil); got != 1 {
		t.Errorf("no dividers: key = %d, want 1", got)
	}
}

func TestCustomDividers(t *testing.T) {
	packets, err := signal.ParseFlat(example)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := signal.ParseDividers([]string{"[[2]]", "[[6]]", "[[10]]"})
	if err != nil {
		t.Fatal(err)
	}
	ranks := signal.DividerRanks(packets, ds)
	if !slices.Equal(ranks[:2], []int{10, 14}) || ranks[2] != 19 {
		t.Errorf("ranks = %v", ranks)
	}
	if _, err := signal.ParseDividers([]string{"[[2]"}); err == nil {
		t.Error("bad divider accepted")
	}
}

func TestArenaAgreesWithHeap(t *testing.T) {
	f := file(t, example)
	a := packet.NewArena(0)
	defer a.Reset()

	pairs, err := signal.ParsePairsArena(a, f, signal.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := signal.SumOrderedPairsArena(a, pairs); got != 13 {
		t.Errorf("arena sum = %d, want 13", got)
	}
	flat, err := signal.ParseFlatArena(a, f, signal.Options{})
	if err != nil {
		t.Fatal(err)
	}
	ds, err := signal.ParseDividersArena(a, signal.DefaultDividers)
	if err != nil {
		t.Fatal(err)
	}
	if got := signal.DecoderKeyArena(a, flat, ds); got != 140 {
		t.Errorf("arena key = %d, want 140", got)
	}
}

func TestSplit(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		blocks int
		err    bool
	}{
		{name: "empty", src: "", blocks: 0},
		{name: "blank only", src: "\n\n  \n", blocks: 0},
		{name: "one", src: "[1]\n[2]", blocks: 1},
		{name: "leading and trailing blank", src: "\n\n[1]\n[2]\n\n\n", blocks: 1},
		{name: "crlf", src: "[1]\r\n[2]\r\n\r\n[3]\r\n[4]\r\n", blocks: 2},
		{name: "wide gap", src: "[1]\n[2]\n\n\n\n[3]\n[4]", blocks: 2},
		{name: "three lines", src: "[1]\n[2]\n[3]\n", err: true},
		{name: "single line", src: "[1]\n[2]\n\n[3]\n", err: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blocks, err := signal.Split(file(t, tc.src))
			if tc.err {
				if !errors.Is(err, signal.ErrMalformedBlock) {
					t.Fatalf("want ErrMalformedBlock, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(blocks) != tc.blocks {
				t.Errorf("blocks = %d, want %d", len(blocks), tc.blocks)
			}
		})
	}
}

func TestSplitLineNumbers(t *testing.T) {
	f := file(t, "\n[1]\r\n[2]\n\n[3]\n[4]\n")
	blocks, err := signal.Split(f)
	if err != nil {
		t.Fatal(err)
	}
	if blocks[0].Left.Num != 2 || blocks[1].Right.Num != 6 {
		t.Errorf("line numbers = %+v", blocks)
	}
	if got := f.Text(blocks[0].Left.Span); got != "[1]" {
		t.Errorf("CR kept in span: %q", got)
	}
}

func TestParseErrorNamesLine(t *testing.T) {
	_, err := signal.ParsePairs("[1]\n[2]\n\n[3]\n[4,@]\n")
	var ic *parser.InvalidCharacterError
	if !errors.As(err, &ic) {
		t.Fatalf("want InvalidCharacterError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 5: ") {
		t.Errorf("error %q does not name line 5", err)
	}
	if _, err := signal.ParseFlat("[1]\n[2\n"); err == nil {
		t.Error("ParseFlat accepted a broken line")
	}
}

func TestParseFlatIgnoresBlocks(t *testing.T) {
	vals, err := signal.ParseFlat("[1]\n[2]\n[3]\n\n[4]")
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 4 {
		t.Errorf("len = %d, want 4", len(vals))
	}
}

func TestBumpsAddAcrossBatches(t *testing.T) {
	packets, err := signal.ParseFlat(example)
	if err != nil {
		t.Fatal(err)
	}
	sorted := signal.SortDividers(signal.Dividers(), packet.Compare)
	whole := signal.DividerBumps(packets, sorted, packet.Compare)
	a := signal.DividerBumps(packets[:5], sorted, packet.Compare)
	b := signal.DividerBumps(packets[5:], sorted, packet.Compare)
	for i := range whole {
		if a[i]+b[i] != whole[i] {
			t.Fatalf("bumps[%d]: %d + %d != %d", i, a[i], b[i], whole[i])
		}
	}
	if got := signal.Product(signal.RanksFromBumps(whole)); got != 140 {
		t.Errorf("key = %d, want 140", got)
	}
	if signal.RanksFromBumps(nil) != nil {
		t.Error("RanksFromBumps(nil) must be nil")
	}
}
