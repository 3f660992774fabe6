package driver

import "time"

// FileStatus reports where a file is in a multi-file solve.
type FileStatus int

const (
	FileQueued FileStatus = iota
	FileWorking
	FileDone
	FileFailed
)

func (s FileStatus) String() string {
	switch s {
	case FileQueued:
		return "queued"
	case FileWorking:
		return "working"
	case FileDone:
		return "done"
	case FileFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileEvent describes a status change of one input file.
type FileEvent struct {
	Index   int
	Path    string
	Status  FileStatus
	Elapsed time.Duration
	Err     error
}

// FileObserver receives events emitted during SolveFiles. It is called from
// worker goroutines and must be safe for concurrent use.
type FileObserver func(FileEvent)

func (o FileObserver) emit(ev FileEvent) {
	if o != nil {
		o(ev)
	}
}
