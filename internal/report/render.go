package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/stackaudit/stackaudit/internal/types"
)

// PrintOptions controls text rendering.
type PrintOptions struct {
	NoColor bool
}

// Render writes the human-readable report: a header, one section per
// severity band, a warnings section, and a summary line. The layout is
// deterministic for a given report.
func Render(w io.Writer, r Report, opts PrintOptions) {
	fmt.Fprintln(w, "stackaudit scan report")
	if len(r.Profiles) > 0 {
		ids := make([]string, len(r.Profiles))
		for i, p := range r.Profiles {
			ids[i] = string(p)
		}
		fmt.Fprintf(w, "profiles: %s\n", strings.Join(ids, ", "))
	}
	fmt.Fprintln(w)

	if r.Total == 0 {
		fmt.Fprintln(w, "No issues found.")
	}
	for _, sev := range severityOrder {
		if r.Counts[sev] == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d)\n", severityLabel(sev, opts.NoColor), r.Counts[sev])
		for _, f := range r.Findings {
			if f.Severity != sev {
				continue
			}
			title := f.Title
			if title == "" {
				title = f.Rule
			}
			fmt.Fprintf(w, "  %s  %s  %s\n", location(f), title, f.Snippet)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "warnings (%d, coverage incomplete)\n", len(r.Warnings))
		for _, wr := range r.Warnings {
			if wr.Rule != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", wr.Path, wr.Rule, wr.Reason)
				continue
			}
			fmt.Fprintf(w, "  %s: %s\n", wr.Path, wr.Reason)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Findings: %d (critical: %d, high: %d, medium: %d, low: %d, info: %d)\n",
		r.Total, r.Counts[types.SevCritical], r.Counts[types.SevHigh],
		r.Counts[types.SevMedium], r.Counts[types.SevLow], r.Counts[types.SevInfo])
	if r.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", r.FilesScanned)
	}
	if r.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", float64(r.Duration)/float64(time.Second))
	}
	if r.Cancelled {
		fmt.Fprintln(w, "Scan cancelled: results are partial")
	}
}

func location(f types.Finding) string {
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d", f.Path, f.Line)
	}
	return f.Path
}

func severityLabel(s types.Severity, noColor bool) string {
	label := strings.ToUpper(string(s))
	if noColor {
		return label
	}
	switch s {
	case types.SevCritical:
		return "\x1b[35m" + label + "\x1b[0m" // magenta
	case types.SevHigh:
		return "\x1b[31m" + label + "\x1b[0m" // red
	case types.SevMedium:
		return "\x1b[33m" + label + "\x1b[0m" // yellow
	case types.SevLow:
		return "\x1b[36m" + label + "\x1b[0m" // cyan
	default:
		return label
	}
}
