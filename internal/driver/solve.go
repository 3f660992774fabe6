package driver

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"distress/internal/observ"
	"distress/internal/packet"
	"distress/internal/parser"
	"distress/internal/signal"
	"distress/internal/source"
	"distress/internal/trace"
)

// Answer is the outcome of solving one transcript.
type Answer struct {
	Path     string        `json:"path"`
	Part     int           `json:"part"`
	Part1    int           `json:"part1"`
	Part2    int           `json:"part2"`
	Pairs    int           `json:"pairs"`
	Packets  int           `json:"packets"`
	Ranks    []int         `json:"divider_ranks,omitempty"`
	Dividers []string      `json:"dividers,omitempty"`
	Cached   bool          `json:"cached"`
	Alloc    string        `json:"alloc"`
	Timing   observ.Report `json:"timing"`
}

// HasPart reports whether the answer carries part n.
func (a *Answer) HasPart(n int) bool {
	return a.Part == 0 || a.Part == n
}

// chunk — непрерывный диапазон блоков, который разбирает один воркер.
type chunk[N any] struct {
	blocks   []signal.Block
	st       store[N]
	pairs    []signal.PairOf[N]
	dividers []N // отсортированы
}

// Solve computes the requested answers for file. Failures are also emitted
// as driver-scope error points, which tracers keep even at LevelError.
func Solve(ctx context.Context, file *source.File, opts Options) (*Answer, error) {
	ans, err := solve(ctx, file, opts)
	if err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "error", err.Error())
	}
	return ans, err
}

func solve(ctx context.Context, file *source.File, opts Options) (*Answer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+file.Path)
	defer span.End("")

	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	var key CacheKey
	if opts.Cache != nil {
		key = KeyFor(file, opts)
		idx := timer.Begin("cache")
		cached, ok, err := opts.Cache.Get(key)
		timer.End(idx, "lookup")
		if err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopePass, "cache", err.Error())
		}
		if ok {
			ans := cacheToAnswer(cached, file.Path)
			ans.Alloc = opts.Alloc.String()
			ans.Timing = timer.Report()
			span.WithExtra("cache", "hit")
			return ans, nil
		}
	}

	_, splitSpan := trace.Start(ctx, trace.ScopePass, "split")
	idx := timer.Begin("split")
	blocks, err := signal.Split(file)
	timer.End(idx, strconv.Itoa(len(blocks))+" blocks")
	splitSpan.End("")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}

	ans := &Answer{
		Path:     file.Path,
		Part:     opts.Part,
		Pairs:    len(blocks),
		Packets:  2 * len(blocks),
		Dividers: opts.dividers(),
		Alloc:    opts.Alloc.String(),
	}

	switch opts.Alloc {
	case AllocArena:
		capHint := uint(len(file.Content)) //nolint:gosec // размер входа неотрицателен
		perChunk := capHint/uint(opts.jobs()) + 16
		err = solveBlocks(ctx, file, blocks, opts, timer, ans, func() store[packet.ID] {
			return newArenaStore(perChunk, opts.dividers())
		})
	default:
		var divs []packet.Value
		divs, err = signal.ParseDividers(opts.dividers())
		if err != nil {
			return nil, err
		}
		err = solveBlocks(ctx, file, blocks, opts, timer, ans, func() store[packet.Value] {
			return heapStore{divs: divs}
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, answerToCache(ans)); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopePass, "cache", err.Error())
		}
	}
	ans.Timing = timer.Report()
	return ans, nil
}

// solveBlocks parses blocks on up to opts.Jobs workers, one store per worker,
// then reduces the chunks in order. Stores are released before returning.
func solveBlocks[N any](
	ctx context.Context,
	file *source.File,
	blocks []signal.Block,
	opts Options,
	timer *observ.Timer,
	ans *Answer,
	newStore func() store[N],
) error {
	chunks := splitChunks[N](blocks, opts.jobs())
	defer func() {
		for i := range chunks {
			if chunks[i].st != nil {
				chunks[i].st.release()
			}
		}
	}()

	pctx, parseSpan := trace.Start(ctx, trace.ScopePass, "parse")
	idx := timer.Begin("parse")
	err := parseChunks(pctx, file, chunks, opts.jobs(), newStore)
	timer.End(idx, fmt.Sprintf("%d packets, %d workers", ans.Packets, len(chunks)))
	parseSpan.End("")
	if err != nil {
		return err
	}

	if opts.wants(1) {
		_, sp := trace.Start(ctx, trace.ScopePass, "part1")
		ans.Part1 = observ.Measure(timer, "part1", func() int { return sumChunks(chunks) })
		sp.End(strconv.Itoa(ans.Part1))
	}
	if opts.wants(2) {
		_, sp := trace.Start(ctx, trace.ScopePass, "part2")
		ans.Ranks = observ.Measure(timer, "part2", func() []int { return rankChunks(chunks) })
		ans.Part2 = signal.Product(ans.Ranks)
		sp.End(strconv.Itoa(ans.Part2))
	}
	return nil
}

// splitChunks режет блоки на не более чем jobs непрерывных кусков.
// Всегда возвращает хотя бы один чанк, чтобы делители были разобраны.
func splitChunks[N any](blocks []signal.Block, jobs int) []chunk[N] {
	n := max(1, min(jobs, len(blocks)))
	out := make([]chunk[N], n)
	size, rest := len(blocks)/n, len(blocks)%n
	lo := 0
	for i := range out {
		hi := lo + size
		if i < rest {
			hi++
		}
		out[i].blocks = blocks[lo:hi]
		lo = hi
	}
	return out
}

func parseChunks[N any](ctx context.Context, file *source.File, chunks []chunk[N], jobs int, newStore func() store[N]) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, jobs))

	// Каждый воркер пишет только в свой chunks[i], мьютекс не нужен.
	for i := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c := &chunks[i]
			c.st = newStore()

			tracer := trace.FromContext(gctx)
			p := parser.New(c.st.builder(), parser.Options{})
			c.pairs = make([]signal.PairOf[N], 0, len(c.blocks))
			for _, blk := range c.blocks {
				left, err := signal.ParseLineWith(p, file, blk.Left)
				if err != nil {
					return err
				}
				right, err := signal.ParseLineWith(p, file, blk.Right)
				if err != nil {
					return err
				}
				c.pairs = append(c.pairs, signal.PairOf[N]{Left: left, Right: right})
				trace.Point(tracer, trace.ScopeLine, "block", strconv.FormatUint(uint64(blk.Left.Num), 10))
			}

			divs, err := c.st.dividers()
			if err != nil {
				return err
			}
			c.dividers = signal.SortDividers(divs, c.st.compare)
			return nil
		})
	}
	return g.Wait()
}

func sumChunks[N any](chunks []chunk[N]) int {
	sum, offset := 0, 0
	for i := range chunks {
		c := &chunks[i]
		for j, pr := range c.pairs {
			if c.st.compare(pr.Left, pr.Right) < 0 {
				sum += offset + j + 1
			}
		}
		offset += len(c.pairs)
	}
	return sum
}

func rankChunks[N any](chunks []chunk[N]) []int {
	var total []int
	packets := make([]N, 0, 2*len(chunks[0].pairs))
	for i := range chunks {
		c := &chunks[i]
		packets = packets[:0]
		for _, pr := range c.pairs {
			packets = append(packets, pr.Left, pr.Right)
		}
		bumps := signal.DividerBumps(packets, c.dividers, c.st.compare)
		if total == nil {
			total = bumps
			continue
		}
		for k := range bumps {
			total[k] += bumps[k]
		}
	}
	return signal.RanksFromBumps(total)
}
