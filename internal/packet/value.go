package packet

import "fmt"

// Kind tags the two variants of a packet value.
type Kind uint8

const (
	KindInt Kind = iota
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a heap-owned packet: either an integer leaf or a list of Values.
type Value struct {
	Kind  Kind
	Int   uint64  // только для KindInt
	Items []Value // только для KindList
}

// Int returns an integer leaf.
func Int(n uint64) Value {
	return Value{Kind: KindInt, Int: n}
}

// List returns a list owning items.
func List(items ...Value) Value {
	return Value{Kind: KindList, Items: items}
}

func (v Value) IsInt() bool  { return v.Kind == KindInt }
func (v Value) IsList() bool { return v.Kind == KindList }

// Len returns the number of items of a list, 0 for an int.
func (v Value) Len() int {
	if v.Kind != KindList {
		return 0
	}
	return len(v.Items)
}

// Depth returns the list nesting depth; an int has depth 0.
func (v Value) Depth() int {
	if v.Kind != KindList {
		return 0
	}
	deepest := 0
	for i := range v.Items {
		deepest = max(deepest, v.Items[i].Depth())
	}
	return deepest + 1
}

// String renders the canonical text form, e.g. "[1,[2,3],[]]".
func (v Value) String() string {
	return Format(v)
}

// Equal reports structural equality. Unlike Compare, 1 and [1] differ.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindInt {
		return a.Int == b.Int
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !Equal(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}

// heapTree adapts *Value to the generic tree walkers.
type heapTree struct{}

func (heapTree) kind(v *Value) Kind           { return v.Kind }
func (heapTree) intOf(v *Value) uint64        { return v.Int }
func (heapTree) size(v *Value) int            { return len(v.Items) }
func (heapTree) child(v *Value, i int) *Value { return &v.Items[i] }
