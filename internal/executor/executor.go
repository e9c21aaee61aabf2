package executor

import (
	"context"

	"github.com/dbmapper/dbmapper/internal/types"
)

// TaskFunc runs detection for a single file and returns its findings.
// Implementations must contain their own failures: a file that cannot be
// processed yields an empty result, never an error that aborts the run.
type TaskFunc func(types.FileEntry) []types.Finding

// Runner executes one independent task per file and returns the
// concatenated findings. Collection happens in completion order, so the
// result ordering is strategy- and timing-dependent.
type Runner interface {
	Run(ctx context.Context, files []types.FileEntry, fn TaskFunc) []types.Finding
}

// Options carries cross-backend configuration: plugin names the process
// backend forwards to worker subprocesses, and an optional per-file
// completion callback. Progress may be invoked from multiple goroutines.
type Options struct {
	Plugins  []string
	Progress func()
}

// New returns the backend for the given strategy and worker bound.
func New(s Strategy, workers int, opts Options) Runner {
	switch s {
	case StrategyPool:
		return &poolRunner{workers: workers, progress: opts.Progress}
	case StrategyProcess, StrategyProcessWide:
		return &processRunner{workers: workers, plugins: opts.Plugins, progress: opts.Progress}
	default:
		return inlineRunner{progress: opts.Progress}
	}
}

// inlineRunner executes every task on the caller goroutine.
type inlineRunner struct {
	progress func()
}

func (r inlineRunner) Run(ctx context.Context, files []types.FileEntry, fn TaskFunc) []types.Finding {
	var out []types.Finding
	for _, f := range files {
		if ctx.Err() != nil {
			return out
		}
		out = append(out, fn(f)...)
		if r.progress != nil {
			r.progress()
		}
	}
	return out
}
