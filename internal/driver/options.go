package driver

import (
	"fmt"
	"runtime"
	"strings"

	"distress/internal/observ"
	"distress/internal/signal"
)

// Alloc selects how packets are stored while solving.
type Alloc uint8

const (
	AllocHeap  Alloc = iota // каждый узел — отдельное значение
	AllocArena              // узлы батча в одной арене
)

func (a Alloc) String() string {
	switch a {
	case AllocHeap:
		return "heap"
	case AllocArena:
		return "arena"
	default:
		return fmt.Sprintf("Alloc(%d)", uint8(a))
	}
}

// ParseAlloc converts a flag value into an Alloc.
func ParseAlloc(s string) (Alloc, error) {
	switch strings.ToLower(s) {
	case "", "heap":
		return AllocHeap, nil
	case "arena":
		return AllocArena, nil
	default:
		return AllocHeap, fmt.Errorf("invalid alloc %q (expected: heap|arena)", s)
	}
}

// Options controls Solve.
type Options struct {
	Part     int // 0 — обе части
	Alloc    Alloc
	Jobs     int      // <=0: GOMAXPROCS
	Dividers []string // nil: signal.DefaultDividers
	Cache    *DiskCache
	Timer    *observ.Timer
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

func (o Options) dividers() []string {
	if o.Dividers == nil {
		return signal.DefaultDividers
	}
	return o.Dividers
}

func (o Options) validate() error {
	if o.Part < 0 || o.Part > 2 {
		return fmt.Errorf("invalid part %d (expected: 0|1|2)", o.Part)
	}
	return nil
}

func (o Options) wants(part int) bool {
	return o.Part == 0 || o.Part == part
}
