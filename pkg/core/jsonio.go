package core

import (
	"encoding/json"
	"io"

	"github.com/stackaudit/stackaudit/internal/report"
)

// WriteResult renders a scan result in the same JSON envelope the CLI's
// --format json produces, so library callers and pipeline consumers parse
// one shape.
func WriteResult(w io.Writer, res Result) error {
	return report.WriteJSON(w, report.Summarize(res), nil)
}

// ReadFindings decodes the findings array back out of that envelope.
func ReadFindings(r io.Reader) ([]Finding, error) {
	var env struct {
		Findings []Finding `json:"findings"`
	}
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, err
	}
	return env.Findings, nil
}
