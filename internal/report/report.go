// Package report turns raw engine results into a deduplicated, severity
// ordered ScanReport and renders it as text, a table, JSON, or SARIF.
package report

import (
	"sort"
	"time"

	"github.com/stackaudit/stackaudit/internal/engine"
	"github.com/stackaudit/stackaudit/internal/types"
)

// severityOrder lists severities from worst to least for section rendering.
var severityOrder = []types.Severity{
	types.SevCritical, types.SevHigh, types.SevMedium, types.SevLow, types.SevInfo,
}

// Report is the immutable summary of one scan: findings partitioned by
// severity (descending), recoverable warnings, and an exit-status signal.
type Report struct {
	Findings     []types.Finding
	Warnings     []types.Warning
	Counts       map[types.Severity]int
	Total        int
	IssuesFound  bool
	FilesScanned int
	Duration     time.Duration
	Cancelled    bool
	Profiles     []types.ProfileID
}

// Summarize deduplicates findings on (path, line, category), sorts them by
// severity descending and then by location, and computes the summary
// counters. Worker completion order never influences the output.
func Summarize(res engine.Result) Report {
	type key struct {
		path     string
		line     int
		category types.Category
	}
	seen := map[key]int{}
	var deduped []types.Finding
	for _, f := range res.Findings {
		k := key{f.Path, f.Line, f.Category}
		if i, dup := seen[k]; dup {
			// Keep the worse of the two colliding findings.
			if f.Severity.Rank() > deduped[i].Severity.Rank() {
				deduped[i] = f
			}
			continue
		}
		seen[k] = len(deduped)
		deduped = append(deduped, f)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})

	counts := map[types.Severity]int{}
	for _, f := range deduped {
		counts[f.Severity]++
	}

	warnings := append([]types.Warning(nil), res.Warnings...)
	sort.Slice(warnings, func(i, j int) bool {
		if warnings[i].Path != warnings[j].Path {
			return warnings[i].Path < warnings[j].Path
		}
		return warnings[i].Rule < warnings[j].Rule
	})

	return Report{
		Findings:     deduped,
		Warnings:     warnings,
		Counts:       counts,
		Total:        len(deduped),
		IssuesFound:  len(deduped) > 0,
		FilesScanned: res.FilesScanned,
		Duration:     res.Duration,
		Cancelled:    res.Cancelled,
		Profiles:     res.Profiles,
	}
}

// ExitCode maps a report to the process exit status: 1 when any finding is
// present, 0 otherwise. Fatal errors exit 2 at the CLI layer before a
// report exists. Cancellation does not change the code.
func ExitCode(r Report) int {
	if r.IssuesFound {
		return 1
	}
	return 0
}
