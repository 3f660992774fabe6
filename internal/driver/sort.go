package driver

import (
	"slices"

	"distress/internal/packet"
	"distress/internal/parser"
	"distress/internal/signal"
	"distress/internal/source"
)

// SortedPacket is one entry of the fully sorted packet list.
type SortedPacket struct {
	Value   packet.Value
	Line    uint32 // 0 для делителей
	Divider bool
}

// SortFile parses every packet of file, adds the dividers and returns the
// whole list in order. Dividers go first among their equivalents: only a
// strictly smaller packet pushes a divider down, same as signal.DecoderKey.
func SortFile(file *source.File, dividers []string) ([]SortedPacket, error) {
	if dividers == nil {
		dividers = signal.DefaultDividers
	}
	divs, err := signal.ParseDividers(dividers)
	if err != nil {
		return nil, err
	}

	lines := signal.Lines(file)
	out := make([]SortedPacket, 0, len(lines)+len(divs))
	for _, d := range divs {
		out = append(out, SortedPacket{Value: d, Divider: true})
	}
	p := parser.New(parser.Builder[packet.Value](parser.HeapBuilder{}), parser.Options{})
	for _, l := range lines {
		v, err := signal.ParseLineWith(p, file, l)
		if err != nil {
			return nil, err
		}
		out = append(out, SortedPacket{Value: v, Line: l.Num})
	}

	slices.SortStableFunc(out, func(a, b SortedPacket) int {
		return packet.Compare(a.Value, b.Value)
	})
	return out, nil
}
