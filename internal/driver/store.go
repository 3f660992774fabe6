package driver

import (
	"distress/internal/packet"
	"distress/internal/parser"
	"distress/internal/signal"
)

// store — место, где живут узлы одного чанка.
type store[N any] interface {
	builder() parser.Builder[N]
	compare(a, b N) int
	dividers() ([]N, error)
	release()
}

// heapStore shares one set of parsed dividers; heap values are immutable,
// so every worker may read them.
type heapStore struct {
	divs []packet.Value
}

func (heapStore) builder() parser.Builder[packet.Value] { return parser.HeapBuilder{} }
func (heapStore) compare(a, b packet.Value) int         { return packet.Compare(a, b) }
func (s heapStore) dividers() ([]packet.Value, error)   { return s.divs, nil }
func (heapStore) release()                              {}

// arenaStore owns one arena; the dividers are parsed into it so that every
// comparison stays inside a single arena.
type arenaStore struct {
	arena *packet.Arena
	srcs  []string
}

func newArenaStore(capHint uint, srcs []string) *arenaStore {
	return &arenaStore{arena: packet.NewArena(capHint), srcs: srcs}
}

func (s *arenaStore) builder() parser.Builder[packet.ID] {
	return parser.ArenaBuilder{Arena: s.arena}
}

func (s *arenaStore) compare(a, b packet.ID) int { return s.arena.Compare(a, b) }

func (s *arenaStore) dividers() ([]packet.ID, error) {
	return signal.ParseDividersArena(s.arena, s.srcs)
}

func (s *arenaStore) release() { s.arena.Reset() }
