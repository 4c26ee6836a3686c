package report

import (
	"encoding/json"
	"os"

	"github.com/stackaudit/stackaudit/internal/types"
)

// Baseline records accepted findings so repeat scans only surface new ones.
// Keys are path|rule|snippet; snippets are already redacted, so the file
// never stores secret material.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	buf, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(buf, &b); err != nil {
		return b, err
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[baselineKey(f)] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// FilterNew returns the findings absent from the baseline.
func FilterNew(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[baselineKey(f)] {
			out = append(out, f)
		}
	}
	return out
}

func baselineKey(f types.Finding) string {
	return f.Path + "|" + f.Rule + "|" + f.Snippet
}

// ShouldFail reports whether any finding is at or above the threshold
// severity. An unknown threshold falls back to medium.
func ShouldFail(findings []types.Finding, failOn types.Severity) bool {
	th := failOn.Rank()
	if !failOn.Known() {
		th = types.SevMedium.Rank()
	}
	for _, f := range findings {
		if f.Severity.Rank() >= th {
			return true
		}
	}
	return false
}
