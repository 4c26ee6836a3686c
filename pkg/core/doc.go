// Package core provides a small, stable facade over stackaudit's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so third-party tools can depend on a stable import path without
// exposing internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: "."}
//	result, err := core.ScanWithStats(context.Background(), cfg)
//	if err != nil { /* handle */ }
//	_ = core.WriteResult(os.Stdout, result)
package core
