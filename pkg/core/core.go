package core

import (
	"context"

	"github.com/stackaudit/stackaudit/internal/engine"
	"github.com/stackaudit/stackaudit/internal/rules"
	"github.com/stackaudit/stackaudit/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type (
	Config    = engine.Config
	Result    = engine.Result
	Finding   = types.Finding
	Warning   = types.Warning
	Severity  = types.Severity
	ProfileID = types.ProfileID
)

// Scan runs a full scan with the default rule catalog and returns the
// deduplicated, redacted findings.
func Scan(ctx context.Context, cfg Config) ([]Finding, error) {
	res, err := ScanWithStats(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats is Scan plus warnings, detected profiles and counters.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	reg, err := rules.Default()
	if err != nil {
		return Result{}, err
	}
	return engine.Scan(ctx, cfg, reg)
}

// RuleIDs returns the IDs of every rule in the default catalog.
// This is exposed for convenience to avoid importing internals directly.
func RuleIDs() []string {
	reg, err := rules.Default()
	if err != nil {
		return nil
	}
	all := reg.All()
	ids := make([]string, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	return ids
}
