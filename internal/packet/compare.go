package packet

import (
	"cmp"
	"slices"
)

// tree is the read-only view shared by the heap and arena strategies, so both
// are ordered by the same code.
type tree[N any] interface {
	kind(n N) Kind
	intOf(n N) uint64
	size(n N) int
	child(n N, i int) N
}

func compareIn[T tree[N], N any](t T, a, b N) int {
	ka, kb := t.kind(a), t.kind(b)
	switch {
	case ka == KindInt && kb == KindInt:
		return cmp.Compare(t.intOf(a), t.intOf(b))
	case ka == KindInt:
		return compareSingleton(t, a, b)
	case kb == KindInt:
		return -compareSingleton(t, b, a)
	}

	na, nb := t.size(a), t.size(b)
	for i := range min(na, nb) {
		if c := compareIn(t, t.child(a, i), t.child(b, i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(na, nb)
}

// compareSingleton compares the one-element list [x] with the list l
// without materializing [x].
func compareSingleton[T tree[N], N any](t T, x, l N) int {
	n := t.size(l)
	if n == 0 {
		return 1
	}
	if c := compareIn(t, x, t.child(l, 0)); c != 0 {
		return c
	}
	if n > 1 {
		return -1
	}
	return 0
}

// Compare returns -1, 0 or +1 as a is less than, equivalent to, or greater than b.
func Compare(a, b Value) int {
	return compareIn(heapTree{}, &a, &b)
}

// Less reports whether a sorts strictly before b.
func Less(a, b Value) bool {
	return Compare(a, b) < 0
}

// Sort orders values in place; equivalent values keep their input order.
func Sort(values []Value) {
	slices.SortStableFunc(values, Compare)
}
