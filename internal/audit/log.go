// Package audit keeps an append-only JSONL history of scans so repeated runs
// can be compared over time. Records only carry counts and redacted snippets,
// never raw secret material.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stackaudit/stackaudit/internal/report"
	"github.com/stackaudit/stackaudit/internal/types"
)

type ScanRecord struct {
	Timestamp      time.Time        `json:"timestamp"`
	ScanID         string           `json:"scan_id"`
	Root           string           `json:"root"`
	Profiles       []string         `json:"profiles,omitempty"`
	TotalFindings  int              `json:"total_findings"`
	SeverityCounts map[string]int   `json:"severity_counts"`
	FilesScanned   int              `json:"files_scanned"`
	Duration       string           `json:"duration"`
	Cancelled      bool             `json:"cancelled,omitempty"`
	TopFindings    []FindingSummary `json:"top_findings,omitempty"`
}

type FindingSummary struct {
	Path     string `json:"path"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
}

type Log struct {
	path string
}

// NewLog stores the history inside .git when present so it never gets
// committed, otherwise as a dotfile in the scan root.
func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	path := filepath.Join(root, ".stackaudit_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		path = filepath.Join(gitDir, "stackaudit_audit.jsonl")
	}
	return &Log{path: path}
}

// History returns past records, newest first.
func (l *Log) History() ([]ScanRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec ScanRecord
		if err := dec.Decode(&rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Append writes one record. Owner-only permissions: the log names files that
// contained findings.
func (l *Log) Append(rec ScanRecord) error {
	if rec.ScanID == "" {
		rec.ScanID = fmt.Sprintf("scan_%d", time.Now().Unix())
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// NewRecord summarizes a finished scan for the log.
func NewRecord(root string, rep report.Report) ScanRecord {
	counts := make(map[string]int)
	for sev, n := range rep.Counts {
		if n > 0 {
			counts[string(sev)] = n
		}
	}

	var profiles []string
	for _, p := range rep.Profiles {
		profiles = append(profiles, string(p))
	}

	top := make([]FindingSummary, 0, 10)
	for i, f := range rep.Findings {
		if i >= 10 {
			break
		}
		top = append(top, summarize(f))
	}

	return ScanRecord{
		Timestamp:      time.Now(),
		Root:           root,
		Profiles:       profiles,
		TotalFindings:  rep.Total,
		SeverityCounts: counts,
		FilesScanned:   rep.FilesScanned,
		Duration:       rep.Duration.String(),
		Cancelled:      rep.Cancelled,
		TopFindings:    top,
	}
}

func summarize(f types.Finding) FindingSummary {
	return FindingSummary{
		Path:     f.Path,
		Rule:     f.Rule,
		Severity: string(f.Severity),
		Line:     f.Line,
	}
}
