package report

import (
	"encoding/json"
	"io"

	"github.com/stackaudit/stackaudit/internal/types"
)

// Meta is optional repository context attached to the JSON envelope.
type Meta struct {
	Repo   string `json:"repo,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
}

type jsonFinding struct {
	Path     string         `json:"path"`
	Line     *int           `json:"line"`
	Rule     string         `json:"rule"`
	Severity types.Severity `json:"severity"`
	Snippet  string         `json:"snippet"`
	Category types.Category `json:"category"`
}

type jsonSummary struct {
	Total        int            `json:"total"`
	BySeverity   map[string]int `json:"by_severity"`
	IssuesFound  bool           `json:"issues_found"`
	FilesScanned int            `json:"files_scanned"`
	DurationMS   int64          `json:"duration_ms"`
	Cancelled    bool           `json:"cancelled"`
	Profiles     []string       `json:"profiles"`
}

type jsonEnvelope struct {
	Findings []jsonFinding   `json:"findings"`
	Summary  jsonSummary     `json:"summary"`
	Warnings []types.Warning `json:"warnings"`
	Meta     *Meta           `json:"meta,omitempty"`
}

// WriteJSON emits the report as a findings array plus a summary object.
// Line is null for whole-file findings.
func WriteJSON(w io.Writer, r Report, meta *Meta) error {
	env := jsonEnvelope{
		Findings: []jsonFinding{},
		Warnings: []types.Warning{},
		Meta:     meta,
	}
	for _, f := range r.Findings {
		jf := jsonFinding{
			Path:     f.Path,
			Rule:     f.Rule,
			Severity: f.Severity,
			Snippet:  f.Snippet,
			Category: f.Category,
		}
		if f.Line > 0 {
			line := f.Line
			jf.Line = &line
		}
		env.Findings = append(env.Findings, jf)
	}
	env.Warnings = append(env.Warnings, r.Warnings...)

	bySev := map[string]int{}
	for sev, n := range r.Counts {
		if n > 0 {
			bySev[string(sev)] = n
		}
	}
	profiles := []string{}
	for _, p := range r.Profiles {
		profiles = append(profiles, string(p))
	}
	env.Summary = jsonSummary{
		Total:        r.Total,
		BySeverity:   bySev,
		IssuesFound:  r.IssuesFound,
		FilesScanned: r.FilesScanned,
		DurationMS:   r.Duration.Milliseconds(),
		Cancelled:    r.Cancelled,
		Profiles:     profiles,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
