package executor

import (
	"context"
	"sync"

	"github.com/gammazero/workerpool"

	"github.com/dbmapper/dbmapper/internal/types"
)

// poolRunner executes tasks on a bounded shared-memory worker pool.
// Compiled detector patterns are read-only and shared safely across the
// pool; the only mutable state is the caller-owned accumulator, guarded
// by a mutex and appended to as tasks complete.
type poolRunner struct {
	workers  int
	progress func()
}

func (p *poolRunner) Run(ctx context.Context, files []types.FileEntry, fn TaskFunc) []types.Finding {
	wp := workerpool.New(p.workers)

	var mu sync.Mutex
	var out []types.Finding
	for _, f := range files {
		file := f
		wp.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			found := fn(file)
			if p.progress != nil {
				p.progress()
			}
			if len(found) == 0 {
				return
			}
			mu.Lock()
			out = append(out, found...)
			mu.Unlock()
		})
	}
	wp.StopWait()
	return out
}
