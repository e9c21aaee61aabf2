package core

import (
	"context"

	"github.com/dbmapper/dbmapper/internal/detectors"
	"github.com/dbmapper/dbmapper/internal/engine"
	"github.com/dbmapper/dbmapper/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Finding = types.Finding
type Result = engine.Result

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg Config) ([]Finding, error) {
	return engine.Scan(ctx, cfg)
}

// ScanWithStats runs a scan and returns findings along with run statistics.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanWithStats(ctx, cfg)
}

// DetectorNames returns the names of the built-in detectors in execution
// order. Plugin detectors are listed by PluginNames.
func DetectorNames() []string { return detectors.Names(detectors.Defaults()) }

// PluginNames returns the available plugin detector names.
func PluginNames() []string { return detectors.PluginNames() }
