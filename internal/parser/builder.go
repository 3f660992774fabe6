package parser

import (
	"slices"

	"distress/internal/packet"
)

// Builder allocates tree nodes of type N. List receives a view of the
// parser's scratch stack; implementations must copy what they keep.
type Builder[N any] interface {
	Int(v uint64) N
	List(items []N) N
}

// HeapBuilder builds heap-owned packet.Values.
type HeapBuilder struct{}

func (HeapBuilder) Int(v uint64) packet.Value { return packet.Int(v) }

func (HeapBuilder) List(items []packet.Value) packet.Value {
	return packet.List(slices.Clone(items)...)
}

// ArenaBuilder allocates nodes in Arena.
type ArenaBuilder struct {
	Arena *packet.Arena
}

func (b ArenaBuilder) Int(v uint64) packet.ID { return b.Arena.Int(v) }

func (b ArenaBuilder) List(items []packet.ID) packet.ID { return b.Arena.List(items) }
