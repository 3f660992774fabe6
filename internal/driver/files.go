package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"distress/internal/observ"
	"distress/internal/source"
	"distress/internal/trace"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// Load reads path into fs; "-" reads standard input.
func Load(fs *source.FileSet, path string) (*source.File, error) {
	if path == StdinPath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return fs.Get(fs.AddNormalized("<stdin>", data, source.FileVirtual)), nil
	}
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return fs.Get(id), nil
}

// FileResult is the outcome for one file of SolveFiles.
type FileResult struct {
	Path   string
	File   *source.File // nil, если файл не загрузился
	Answer *Answer
	Err    error
}

// SolveFiles solves every file on up to opts.Jobs workers. A failing file
// does not stop the others; its error is stored in its result. Files are
// loaded up front because a FileSet is not safe for concurrent use.
func SolveFiles(ctx context.Context, fs *source.FileSet, paths []string, opts Options, observe FileObserver) ([]FileResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "solve")
	defer span.End(fmt.Sprintf("%d files", len(paths)))

	results := make([]FileResult, len(paths))
	for i, path := range paths {
		results[i].Path = path
		file, err := Load(fs, path)
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].File = file
		observe.emit(FileEvent{Index: i, Path: path, Status: FileQueued})
	}

	jobs := opts.jobs()
	perFile := opts
	// Параллелим по файлам; внутри файла — один воркер, если файлов много.
	if len(paths) > 1 {
		perFile.Jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))

	for i := range results {
		res := &results[i]
		if res.Err != nil {
			observe.emit(FileEvent{Index: i, Path: res.Path, Status: FileFailed, Err: res.Err})
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			observe.emit(FileEvent{Index: i, Path: res.Path, Status: FileWorking})

			fileOpts := perFile
			fileOpts.Timer = observ.NewTimer()
			ans, err := Solve(gctx, res.File, fileOpts)
			res.Answer, res.Err = ans, err

			status := FileDone
			if err != nil {
				status = FileFailed
			}
			observe.emit(FileEvent{Index: i, Path: res.Path, Status: status, Elapsed: time.Since(started), Err: err})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
