// Package engine orchestrates a scan end to end: file discovery, strategy
// selection, parallel detection, aggregation and description enrichment.
// This package is internal; external consumers should use the stable facade
// in pkg/core.
package engine
