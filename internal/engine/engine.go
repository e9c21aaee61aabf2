package engine

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dbmapper/dbmapper/internal/describe"
	"github.com/dbmapper/dbmapper/internal/detectors"
	"github.com/dbmapper/dbmapper/internal/discover"
	"github.com/dbmapper/dbmapper/internal/executor"
	"github.com/dbmapper/dbmapper/internal/git"
	"github.com/dbmapper/dbmapper/internal/types"
)

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root              string
	IncludeGlobs      []string
	ExcludeGlobs      []string
	Languages         []string
	Plugins           []string
	MinConfidence     float64
	Threads           int
	StableIDs         bool
	KeepLowConfidence bool
	DefaultExcludes   bool
	Progress          func()
}

// Result contains findings and basic scan statistics.
type Result struct {
	RunID        string
	Findings     []types.Finding
	FilesScanned int
	Strategy     executor.Strategy
	Workers      int
	Duration     time.Duration
	Repo         git.Metadata
}

// DefaultThreads is the worker hint used when the caller does not set one.
func DefaultThreads() int {
	return min(runtime.NumCPU(), 16)
}

// Scan runs a scan and returns only findings (without stats).
func Scan(ctx context.Context, cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats runs a full scan: discovery, strategy selection, parallel
// detection, aggregation, and description enrichment.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	started := time.Now()

	dets, err := detectors.WithPlugins(cfg.Plugins)
	if err != nil {
		return result, err
	}

	files, err := discover.Discover(discover.Config{
		Root:            cfg.Root,
		IncludePatterns: cfg.IncludeGlobs,
		ExcludePatterns: cfg.ExcludeGlobs,
		Languages:       cfg.Languages,
		DefaultExcludes: cfg.DefaultExcludes,
	})
	if err != nil {
		return result, err
	}
	result.FilesScanned = len(files)
	result.Repo = git.Describe(cfg.Root)

	threads := cfg.Threads
	if threads <= 0 {
		threads = DefaultThreads()
	}
	strategy, workers := executor.Select(len(files), threads)
	result.Strategy = strategy
	result.Workers = workers
	log.Debug().
		Int("files", len(files)).
		Stringer("strategy", strategy).
		Int("workers", workers).
		Msg("execution strategy selected")

	task := func(f types.FileEntry) []types.Finding {
		return DetectFile(f.Path, f.Rel, dets)
	}
	runner := executor.New(strategy, workers, executor.Options{Plugins: cfg.Plugins, Progress: cfg.Progress})
	findings := runner.Run(ctx, files, task)

	findings = aggregate(findings, cfg)
	describe.Enrich(ctx, findings)

	result.Findings = findings
	result.Duration = time.Since(started)
	return result, nil
}

// DetectFile reads one file and runs every detector against it. Failures
// are contained: an unreadable or oversized file yields no findings, and a
// panicking detector is logged and skipped rather than aborting the run.
// The worker subcommand calls this directly for each request.
func DetectFile(path, rel string, dets []detectors.Detector) (out []types.Finding) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("file", rel).Interface("panic", r).Msg("detector panicked, file skipped")
			out = nil
		}
	}()

	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() || fi.Size() > discover.MaxFileSize {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug().Err(err).Str("file", rel).Msg("unreadable file skipped")
		return nil
	}

	found := detectors.Run(dets, path, data)
	for i := range found {
		found[i].Path = rel
	}
	return found
}
