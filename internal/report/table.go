package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// RenderTable writes the findings as a bordered table, followed by the same
// summary footer as the text renderer.
func RenderTable(w io.Writer, r Report, opts PrintOptions) {
	if r.Total == 0 {
		fmt.Fprintln(w, "No issues found.")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("SEVERITY", "CATEGORY", "LOCATION", "RULE", "SNIPPET")
		for _, f := range r.Findings {
			_ = table.Append(strings.ToUpper(string(f.Severity)), string(f.Category), location(f), f.Rule, f.Snippet)
		}
		_ = table.Render()
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d", r.Total)
	if r.Cancelled {
		fmt.Fprint(w, " (partial, scan cancelled)")
	}
	fmt.Fprintln(w)
	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "Warnings: %d (coverage incomplete)\n", len(r.Warnings))
	}
}
