package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"distress/internal/diagfmt"
	"distress/internal/driver"
	"distress/internal/observ"
	"distress/internal/parser"
	"distress/internal/signal"
	"distress/internal/source"
)

var solveCmd = &cobra.Command{
	Use:   "solve [flags] [file...]",
	Short: "Solve both puzzle parts for packet transcripts",
	Long: `Solve parses every pair of packets, prints the sum of the indices of
correctly ordered pairs (part 1) and the decoder key (part 2).
Use - to read standard input.`,
	RunE: runSolve,
}

func init() {
	addSolveFlags(solveCmd)
}

func addSolveFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("part", 0, "part to solve (0 = both)")
	f.String("alloc", "heap", "packet storage (heap|arena)")
	f.Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	f.String("format", "pretty", "output format (pretty|json)")
	f.StringArray("divider", nil, "divider packet for part 2 (repeatable; default [[2]] and [[6]])")
	f.Bool("cache", false, "reuse answers from the on-disk cache")
	f.String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/distress)")
	f.Bool("clear-cache", false, "drop every cached answer before solving")
	f.String("ui", "auto", "progress UI (auto|on|off)")
}

// solveSettings — итог слияния distress.toml и флагов.
type solveSettings struct {
	opts   driver.Options
	format string
	cache  bool
	ui     uiMode
	files  []string
}

func readSolveSettings(cmd *cobra.Command, args []string, cfg *loadedConfig) (solveSettings, error) {
	flags := cmd.Flags()
	sc := cfg.Config.Solve
	s := solveSettings{
		opts: driver.Options{
			Part:     sc.Part,
			Jobs:     sc.Jobs,
			Dividers: sc.Dividers,
		},
		format: "pretty",
		cache:  sc.Cache,
	}
	allocStr := sc.Alloc
	if sc.Format != "" {
		s.format = sc.Format
	}

	var err error
	if flags.Changed("part") || cfg.Path == "" {
		if s.opts.Part, err = flags.GetInt("part"); err != nil {
			return s, err
		}
	}
	if flags.Changed("jobs") || cfg.Path == "" {
		if s.opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return s, err
		}
	}
	if flags.Changed("alloc") || allocStr == "" {
		if allocStr, err = flags.GetString("alloc"); err != nil {
			return s, err
		}
	}
	if flags.Changed("format") {
		if s.format, err = flags.GetString("format"); err != nil {
			return s, err
		}
	}
	if flags.Changed("divider") {
		if s.opts.Dividers, err = flags.GetStringArray("divider"); err != nil {
			return s, err
		}
	}
	if flags.Changed("cache") {
		if s.cache, err = flags.GetBool("cache"); err != nil {
			return s, err
		}
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return s, err
	}

	if s.opts.Alloc, err = driver.ParseAlloc(allocStr); err != nil {
		return s, err
	}
	if s.ui, err = readUIMode(uiStr); err != nil {
		return s, err
	}
	s.format = strings.ToLower(s.format)
	if s.format != "pretty" && s.format != "json" {
		return s, errInvalidFlag("format", s.format, "pretty|json")
	}
	if s.opts.Part < 0 || s.opts.Part > 2 {
		return s, errInvalidFlag("part", fmt.Sprint(s.opts.Part), "0|1|2")
	}
	if s.opts.Dividers != nil {
		// ошибки делителей показываем до решения: их спаны не из входного файла
		if _, err := signal.ParseDividers(s.opts.Dividers); err != nil {
			return s, err
		}
	}

	s.files = args
	if len(s.files) == 0 {
		s.files = cfg.resolveFiles()
	}
	stdin := 0
	for _, f := range s.files {
		if f == driver.StdinPath {
			stdin++
		}
	}
	if stdin > 1 {
		return s, errors.New("standard input (-) can be read only once")
	}
	if len(s.files) == 0 {
		if isTerminal(os.Stdin) {
			return s, errors.New("no input files (pass files, - for stdin, or set [input].files in distress.toml)")
		}
		s.files = []string{driver.StdinPath}
	}
	return s, nil
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, err
	}
	var cache *driver.DiskCache
	if dir != "" {
		cache, err = driver.OpenDiskCacheAt(dir)
	} else {
		cache, err = driver.OpenDiskCache("distress")
	}
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if drop, _ := cmd.Flags().GetBool("clear-cache"); drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("clear cache: %w", err)
		}
	}
	return cache, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := configFromCommand(cmd)
	if err != nil {
		return err
	}
	settings, err := readSolveSettings(cmd, args, cfg)
	if err != nil {
		return err
	}
	clearCache, _ := cmd.Flags().GetBool("clear-cache")
	if settings.cache || clearCache {
		if settings.opts.Cache, err = openCache(cmd); err != nil {
			return err
		}
		if !settings.cache {
			settings.opts.Cache = nil
		}
	}

	ctx := cmd.Context()
	fs := source.NewFileSet()
	var results []driver.FileResult
	if len(settings.files) == 1 {
		results = []driver.FileResult{solveOne(cmd, fs, settings.files[0], settings.opts)}
	} else if shouldUseTUI(settings.ui, len(settings.files)) {
		results, err = runSolveWithUI(ctx, fs, settings.files, settings.opts)
	} else {
		results, err = driver.SolveFiles(ctx, fs, settings.files, settings.opts, nil)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	switch settings.format {
	case "json":
		if err := writeSolveJSON(out, results); err != nil {
			return err
		}
	default:
		writeSolvePretty(out, results, quiet(cmd), len(results) > 1)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if settings.format != "json" {
				reportSolveError(cmd, errOut, fs, r)
			}
		}
		if timingsEnabled(cmd) && r.Answer != nil {
			printTimings(errOut, r.Path, r.Answer.Timing)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

func solveOne(cmd *cobra.Command, fs *source.FileSet, path string, opts driver.Options) driver.FileResult {
	res := driver.FileResult{Path: path}
	timer := observ.NewTimer()
	idx := timer.Begin("read")
	file, err := driver.Load(fs, path)
	timer.End(idx, "")
	if err != nil {
		res.Err = err
		return res
	}
	res.File = file
	opts.Timer = timer
	res.Answer, res.Err = driver.Solve(cmd.Context(), file, opts)
	return res
}

// reportSolveError prints a parse failure as a diagnostic with source context
// and anything else as a plain error line.
func reportSolveError(cmd *cobra.Command, w io.Writer, fs *source.FileSet, r driver.FileResult) {
	if d, ok := parser.Diagnostic(r.Err); ok && r.File != nil {
		_ = diagfmt.PrettyDiagnostic(w, d, fs, diagfmt.PrettyOpts{
			Color:      useColor(cmd, os.Stderr),
			ShowNotes:  true,
			ShowSource: true,
		})
		return
	}
	fmt.Fprintf(w, "%s: %v\n", r.Path, r.Err)
}

func writeSolvePretty(w io.Writer, results []driver.FileResult, quiet, multi bool) {
	p := message.NewPrinter(language.English)
	label := color.New(color.Bold)
	dim := color.New(color.Faint)
	for _, r := range results {
		ans := r.Answer
		if ans == nil {
			continue
		}
		if quiet {
			if ans.HasPart(1) {
				fmt.Fprintln(w, ans.Part1)
			}
			if ans.HasPart(2) {
				fmt.Fprintln(w, ans.Part2)
			}
			continue
		}
		if multi || r.Path == driver.StdinPath {
			label.Fprintln(w, displayPath(r.Path))
		}
		if ans.HasPart(1) {
			p.Fprintf(w, "part 1: %d", ans.Part1)
			dim.Fprint(w, p.Sprintf("  (%d pairs)", ans.Pairs))
			fmt.Fprintln(w)
		}
		if ans.HasPart(2) {
			p.Fprintf(w, "part 2: %d", ans.Part2)
			dim.Fprint(w, p.Sprintf("  (%d packets, dividers at %s)", ans.Packets, joinInts(ans.Ranks)))
			fmt.Fprintln(w)
		}
		if ans.Cached {
			dim.Fprintln(w, "(cached)")
		}
	}
}

func displayPath(path string) string {
	if path == driver.StdinPath {
		return "<stdin>"
	}
	return path
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}

type solveResultJSON struct {
	Path   string         `json:"path"`
	Answer *driver.Answer `json:"answer,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func writeSolveJSON(w io.Writer, results []driver.FileResult) error {
	payload := make([]solveResultJSON, len(results))
	for i, r := range results {
		payload[i] = solveResultJSON{Path: r.Path, Answer: r.Answer}
		if r.Err != nil {
			payload[i].Error = r.Err.Error()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
