package executor

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dbmapper/dbmapper/internal/types"
)

// WorkerRequest is one detection task sent to a worker process, one JSON
// object per line on the worker's stdin.
type WorkerRequest struct {
	Path     string `json:"path"`
	Rel      string `json:"rel"`
	Size     int64  `json:"size"`
	Language string `json:"language"`
}

// WorkerResponse is the worker's reply for a single request, one JSON
// object per line on stdout. A non-empty Err means the file degraded to
// zero findings; it never aborts the run.
type WorkerResponse struct {
	Path     string          `json:"path"`
	Findings []types.Finding `json:"findings"`
	Err      string          `json:"error,omitempty"`
}

// processRunner fans tasks out to isolated worker subprocesses (the
// hidden "worker" subcommand of this binary). Each process holds an
// independent copy of the compiled detector patterns, re-initialized on
// start, so no detector state crosses process boundaries.
type processRunner struct {
	workers  int
	plugins  []string
	progress func()

	// exe and args override the spawned command in tests.
	exe  string
	args []string
}

func (p *processRunner) Run(ctx context.Context, files []types.FileEntry, fn TaskFunc) []types.Finding {
	exe := p.exe
	if exe == "" {
		var err error
		exe, err = os.Executable()
		if err != nil {
			log.Warn().Err(err).Msg("cannot resolve own binary, using in-process pool")
			return (&poolRunner{workers: p.workers, progress: p.progress}).Run(ctx, files, fn)
		}
	}
	args := p.args
	if args == nil {
		args = []string{"worker"}
		if len(p.plugins) > 0 {
			args = append(args, "--plugins", strings.Join(p.plugins, ","))
		}
	}

	workers := min(p.workers, len(files))
	tasks := make(chan types.FileEntry)

	var mu sync.Mutex
	var out []types.Finding
	collect := func(fs []types.Finding) {
		if p.progress != nil {
			p.progress()
		}
		if len(fs) == 0 {
			return
		}
		mu.Lock()
		out = append(out, fs...)
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := startWorker(ctx, exe, args)
			if err != nil {
				log.Warn().Err(err).Msg("worker spawn failed, draining in-process")
				for f := range tasks {
					collect(fn(f))
				}
				return
			}
			defer w.close()
			for f := range tasks {
				fs, err := w.detect(f)
				if err != nil {
					// broken pipe or malformed reply: finish this task and
					// the rest of the queue in-process so no file is dropped
					log.Warn().Err(err).Str("file", f.Rel).Msg("worker failed, draining in-process")
					collect(fn(f))
					for rest := range tasks {
						collect(fn(rest))
					}
					return
				}
				collect(fs)
			}
		}()
	}

	for _, f := range files {
		select {
		case tasks <- f:
		case <-ctx.Done():
			close(tasks)
			wg.Wait()
			return out
		}
	}
	close(tasks)
	wg.Wait()
	return out
}

// worker wraps one subprocess speaking the line-oriented JSON protocol.
type worker struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	enc   *json.Encoder
	sc    *bufio.Scanner
}

func startWorker(ctx context.Context, exe string, args []string) (*worker, error) {
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &worker{cmd: cmd, stdin: stdin, enc: json.NewEncoder(stdin), sc: sc}, nil
}

func (w *worker) detect(f types.FileEntry) ([]types.Finding, error) {
	req := WorkerRequest{Path: f.Path, Rel: f.Rel, Size: f.Size, Language: f.Language}
	if err := w.enc.Encode(req); err != nil {
		return nil, err
	}
	if !w.sc.Scan() {
		if err := w.sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.ErrUnexpectedEOF
	}
	var resp WorkerResponse
	if err := json.Unmarshal(w.sc.Bytes(), &resp); err != nil {
		return nil, err
	}
	if resp.Err != "" {
		// contained per-file failure inside the worker
		log.Debug().Str("file", f.Rel).Str("error", resp.Err).Msg("worker reported file failure")
		return nil, nil
	}
	return resp.Findings, nil
}

func (w *worker) close() {
	_ = w.stdin.Close()
	_ = w.cmd.Wait()
}
