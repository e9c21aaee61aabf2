// Package core provides a small, stable facade over dbmapper's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so third-party tools can depend on a stable import path without
// exposing internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: ".", MinConfidence: 0.5, DefaultExcludes: true}
//	findings, err := core.Scan(context.Background(), cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
