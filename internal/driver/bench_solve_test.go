package driver

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"distress/internal/source"
)

func syntheticInput(pairs int) string {
	var sb strings.Builder
	seed := 7
	next := func() int {
		seed = (seed*1103515245 + 12345) & 0x7fffffff
		return seed
	}
	var gen func(depth int) string
	gen = func(depth int) string {
		n := next() % 6
		items := make([]string, n)
		for i := range items {
			if depth < 4 && next()%3 == 0 {
				items[i] = gen(depth + 1)
			} else {
				items[i] = fmt.Sprint(next() % 11)
			}
		}
		return "[" + strings.Join(items, ",") + "]"
	}
	for i := range pairs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(gen(0))
		sb.WriteByte('\n')
		sb.WriteString(gen(0))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func benchSolve(b *testing.B, alloc Alloc, jobs int) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bench.txt", []byte(syntheticInput(2000))))
	opts := Options{Alloc: alloc, Jobs: jobs}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := Solve(context.Background(), file, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolveHeap(b *testing.B)          { benchSolve(b, AllocHeap, 1) }
func BenchmarkSolveArena(b *testing.B)         { benchSolve(b, AllocArena, 1) }
func BenchmarkSolveHeapParallel(b *testing.B)  { benchSolve(b, AllocHeap, 0) }
func BenchmarkSolveArenaParallel(b *testing.B) { benchSolve(b, AllocArena, 0) }
