package signal

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"distress/internal/packet"
	"distress/internal/parser"
)

// DefaultDividers are the two divider packets of part two.
var DefaultDividers = []string{"[[2]]", "[[6]]"}

var defaultDividers = sync.OnceValue(func() []packet.Value {
	out, err := ParseDividers(DefaultDividers)
	if err != nil {
		panic(err)
	}
	return out
})

// Dividers returns the default divider packets. The packets are parsed once;
// every call returns a fresh slice.
func Dividers() []packet.Value {
	return slices.Clone(defaultDividers())
}

// ParseDividers parses custom divider packets.
func ParseDividers(srcs []string) ([]packet.Value, error) {
	out := make([]packet.Value, 0, len(srcs))
	for _, src := range srcs {
		v, err := parser.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("divider %q: %w", src, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseDividersArena parses divider packets into a.
func ParseDividersArena(a *packet.Arena, srcs []string) ([]packet.ID, error) {
	out := make([]packet.ID, 0, len(srcs))
	for _, src := range srcs {
		id, err := parser.ParseArena(a, src)
		if err != nil {
			return nil, fmt.Errorf("divider %q: %w", src, err)
		}
		out = append(out, id)
	}
	return out, nil
}

// SumOrderedPairs returns the sum of the 1-based indices of pairs whose left
// packet sorts strictly before the right one.
func SumOrderedPairs(pairs []Pair) int {
	return sumOrdered(pairs, packet.Compare)
}

// SumOrderedPairsArena is SumOrderedPairs over arena nodes.
func SumOrderedPairsArena(a *packet.Arena, pairs []ArenaPair) int {
	return sumOrdered(pairs, a.Compare)
}

// OrderedIndices returns the 1-based indices counted by SumOrderedPairs.
func OrderedIndices(pairs []Pair) []int {
	var out []int
	for i, p := range pairs {
		if packet.Compare(p.Left, p.Right) < 0 {
			out = append(out, i+1)
		}
	}
	return out
}

func sumOrdered[N any](pairs []PairOf[N], cmp func(a, b N) int) int {
	sum := 0
	for i, p := range pairs {
		if cmp(p.Left, p.Right) < 0 {
			sum += i + 1
		}
	}
	return sum
}

// DecoderKey multiplies the 1-based positions the dividers would occupy if
// they were inserted into packets and the whole list were sorted. Packets
// equivalent to a divider do not push it down. No sort of packets happens:
// each packet bumps the counters of the dividers it precedes.
func DecoderKey(packets, dividers []packet.Value) int {
	return decoderKey(packets, dividers, packet.Compare)
}

// DecoderKeyArena is DecoderKey over arena nodes.
func DecoderKeyArena(a *packet.Arena, packets, dividers []packet.ID) int {
	return decoderKey(packets, dividers, a.Compare)
}

// DividerRanks returns the 1-based position of every divider, in sorted
// divider order.
func DividerRanks(packets, dividers []packet.Value) []int {
	return dividerRanks(packets, dividers, packet.Compare)
}

func decoderKey[N any](packets, dividers []N, cmp func(a, b N) int) int {
	return Product(dividerRanks(packets, dividers, cmp))
}

func dividerRanks[N any](packets, dividers []N, cmp func(a, b N) int) []int {
	sorted := SortDividers(dividers, cmp)
	return RanksFromBumps(DividerBumps(packets, sorted, cmp))
}

// SortDividers returns a stably sorted copy of dividers.
func SortDividers[N any](dividers []N, cmp func(a, b N) int) []N {
	sorted := slices.Clone(dividers)
	slices.SortStableFunc(sorted, cmp)
	return sorted
}

// DividerBumps counts, for every k, the packets whose first strictly greater
// divider is sorted[k]; the last slot counts packets above every divider.
// Counts of disjoint packet sets add up, so batches may be counted apart.
func DividerBumps[N any](packets, sorted []N, cmp func(a, b N) int) []int {
	bumps := make([]int, len(sorted)+1)
	for _, p := range packets {
		k := sort.Search(len(sorted), func(i int) bool {
			return cmp(p, sorted[i]) < 0
		})
		bumps[k]++
	}
	return bumps
}

// RanksFromBumps turns bump counts into the 1-based rank of every divider.
func RanksFromBumps(bumps []int) []int {
	if len(bumps) == 0 {
		return nil
	}
	ranks := make([]int, len(bumps)-1)
	before := 0
	for i := range ranks {
		before += bumps[i]
		ranks[i] = i + 1 + before
	}
	return ranks
}

// Product multiplies ranks; the empty product is 1.
func Product(ranks []int) int {
	key := 1
	for _, r := range ranks {
		key *= r
	}
	return key
}
