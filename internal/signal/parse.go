package signal

import (
	"fmt"

	"distress/internal/packet"
	"distress/internal/parser"
	"distress/internal/source"
)

// PairOf is one block of two packets.
type PairOf[N any] struct {
	Left, Right N
}

type (
	// Pair holds heap-owned packets.
	Pair = PairOf[packet.Value]
	// ArenaPair holds packets of one packet.Arena.
	ArenaPair = PairOf[packet.ID]
)

// Options configures parsing of a transcript.
type Options = parser.Options

// ParsePairs parses src as a transcript of packet pairs. Any failure aborts
// the whole parse.
func ParsePairs(src string) ([]Pair, error) {
	return ParsePairsFile(virtualFile(src), Options{})
}

// ParsePairsFile parses file as a transcript of packet pairs.
func ParsePairsFile(file *source.File, opts Options) ([]Pair, error) {
	return parsePairs(file, parser.Builder[packet.Value](parser.HeapBuilder{}), opts)
}

// ParsePairsArena parses file into a.
func ParsePairsArena(a *packet.Arena, file *source.File, opts Options) ([]ArenaPair, error) {
	return parsePairs(file, parser.Builder[packet.ID](parser.ArenaBuilder{Arena: a}), opts)
}

// ParseFlat parses every non-blank line of src as one packet, ignoring the
// block structure.
func ParseFlat(src string) ([]packet.Value, error) {
	return ParseFlatFile(virtualFile(src), Options{})
}

// ParseFlatFile is ParseFlat over a file.
func ParseFlatFile(file *source.File, opts Options) ([]packet.Value, error) {
	return parseFlat(file, parser.Builder[packet.Value](parser.HeapBuilder{}), opts)
}

// ParseFlatArena parses every non-blank line of file into a.
func ParseFlatArena(a *packet.Arena, file *source.File, opts Options) ([]packet.ID, error) {
	return parseFlat(file, parser.Builder[packet.ID](parser.ArenaBuilder{Arena: a}), opts)
}

func parsePairs[N any](file *source.File, b parser.Builder[N], opts Options) ([]PairOf[N], error) {
	blocks, err := Split(file)
	if err != nil {
		return nil, err
	}
	p := parser.New(b, opts)
	out := make([]PairOf[N], 0, len(blocks))
	for _, blk := range blocks {
		left, err := ParseLineWith(p, file, blk.Left)
		if err != nil {
			return nil, err
		}
		right, err := ParseLineWith(p, file, blk.Right)
		if err != nil {
			return nil, err
		}
		out = append(out, PairOf[N]{Left: left, Right: right})
	}
	return out, nil
}

func parseFlat[N any](file *source.File, b parser.Builder[N], opts Options) ([]N, error) {
	lines := Lines(file)
	p := parser.New(b, opts)
	out := make([]N, 0, len(lines))
	for _, l := range lines {
		v, err := ParseLineWith(p, file, l)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseLineWith parses one line with p; the error names the line.
func ParseLineWith[N any](p *parser.Parser[N], file *source.File, l Line) (N, error) {
	v, err := p.ParseRange(file, l.Span.Start, l.Span.End)
	if err != nil {
		return v, fmt.Errorf("line %d: %w", l.Num, err)
	}
	return v, nil
}

func virtualFile(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("<input>", []byte(src)))
}
