package packet

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// ID addresses a node inside an Arena. IDs are 1-based; NoID is the zero value.
type ID uint32

const NoID ID = 0

type node struct {
	kind   Kind
	lo, hi uint32 // диапазон детей в kids, только для KindList
	int    uint64
}

// Arena stores every node of a parse batch in two flat slices: the nodes and
// one pool of child IDs. Lists reference a contiguous range of the pool, so a
// batch of thousands of packets costs a handful of allocations. Nodes are
// immutable once allocated. An Arena is not safe for concurrent use.
type Arena struct {
	nodes []node
	kids  []ID
}

// NewArena creates an arena with room for capHint nodes.
func NewArena(capHint uint) *Arena {
	return &Arena{
		nodes: make([]node, 0, capHint),
		kids:  make([]ID, 0, capHint),
	}
}

// Возвращает индекс нового элемента (1-based).
func (a *Arena) alloc(n node) ID {
	a.nodes = append(a.nodes, n)
	id, err := safecast.Conv[uint32](len(a.nodes))
	if err != nil {
		panic(fmt.Errorf("arena node count overflow: %w", err))
	}
	return ID(id)
}

// Int allocates an integer leaf.
func (a *Arena) Int(n uint64) ID {
	return a.alloc(node{kind: KindInt, int: n})
}

// List allocates a list whose children are copied from items.
func (a *Arena) List(items []ID) ID {
	lo := len(a.kids)
	a.kids = append(a.kids, items...)
	lo32, err := safecast.Conv[uint32](lo)
	if err != nil {
		panic(fmt.Errorf("arena child pool overflow: %w", err))
	}
	hi32, err := safecast.Conv[uint32](len(a.kids))
	if err != nil {
		panic(fmt.Errorf("arena child pool overflow: %w", err))
	}
	return a.alloc(node{kind: KindList, lo: lo32, hi: hi32})
}

func (a *Arena) get(id ID) *node {
	if id == NoID || int(id) > len(a.nodes) {
		panic(fmt.Errorf("packet arena: invalid id %d (len %d)", id, len(a.nodes)))
	}
	return &a.nodes[id-1]
}

// Kind returns the variant of id.
func (a *Arena) Kind(id ID) Kind {
	return a.get(id).kind
}

// IntValue returns the integer stored at id; 0 for lists.
func (a *Arena) IntValue(id ID) uint64 {
	return a.get(id).int
}

// Get returns every field of the node at id at once.
func (a *Arena) Get(id ID) (kind Kind, n uint64, items []ID) {
	nd := a.get(id)
	if nd.kind == KindList {
		items = a.kids[nd.lo:nd.hi:nd.hi]
	}
	return nd.kind, nd.int, items
}

// Items returns the children of a list. READONLY: the slice aliases the pool.
func (a *Arena) Items(id ID) []ID {
	n := a.get(id)
	if n.kind != KindList {
		return nil
	}
	return a.kids[n.lo:n.hi:n.hi]
}

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Reset releases every node at once and keeps the backing storage for reuse.
// IDs handed out before Reset become invalid.
func (a *Arena) Reset() {
	a.nodes = a.nodes[:0]
	a.kids = a.kids[:0]
}

// Release drops the backing storage so the garbage collector can reclaim it.
func (a *Arena) Release() {
	a.nodes = nil
	a.kids = nil
}

// Value copies the subtree at id into heap form.
func (a *Arena) Value(id ID) Value {
	n := a.get(id)
	if n.kind == KindInt {
		return Int(n.int)
	}
	items := make([]Value, 0, n.hi-n.lo)
	for _, kid := range a.kids[n.lo:n.hi] {
		items = append(items, a.Value(kid))
	}
	return List(items...)
}

// Compare orders two nodes of this arena with the same rules as Compare.
func (a *Arena) Compare(x, y ID) int {
	return compareIn(a, x, y)
}

// Less reports whether x sorts strictly before y.
func (a *Arena) Less(x, y ID) bool {
	return compareIn(a, x, y) < 0
}

// Sort orders ids in place by Compare; equivalent nodes keep their order.
func (a *Arena) Sort(ids []ID) {
	slices.SortStableFunc(ids, a.Compare)
}

// String renders the canonical text of the subtree at id.
func (a *Arena) String(id ID) string {
	return string(a.AppendText(nil, id))
}

// AppendText appends the canonical text of the subtree at id to dst.
func (a *Arena) AppendText(dst []byte, id ID) []byte {
	return appendTree(dst, a, id)
}

// tree view

func (a *Arena) kind(id ID) Kind { return a.get(id).kind }

func (a *Arena) intOf(id ID) uint64 { return a.get(id).int }

func (a *Arena) size(id ID) int {
	n := a.get(id)
	return int(n.hi - n.lo)
}

func (a *Arena) child(id ID, i int) ID {
	return a.kids[a.get(id).lo+uint32(i)]
}
