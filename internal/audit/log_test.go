package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stackaudit/stackaudit/internal/report"
	"github.com/stackaudit/stackaudit/internal/types"
)

func TestAppendAndHistory(t *testing.T) {
	dir := t.TempDir()
	l := NewLog(dir)

	for _, id := range []string{"first", "second"} {
		if err := l.Append(ScanRecord{ScanID: id, Root: dir, TotalFindings: 1}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	records, err := l.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ScanID != "second" {
		t.Fatalf("expected newest first, got %q", records[0].ScanID)
	}
}

func TestLogPrefersGitDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	l := NewLog(dir)
	if err := l.Append(ScanRecord{Root: dir}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git", "stackaudit_audit.jsonl")); err != nil {
		t.Fatalf("expected log inside .git: %v", err)
	}
}

func TestNewRecord(t *testing.T) {
	rep := report.Report{
		Findings: []types.Finding{
			{Path: "a.env", Line: 2, Rule: "aws_access_key", Severity: types.SevCritical, Snippet: "AKIA...MPLE"},
		},
		Counts:       map[types.Severity]int{types.SevCritical: 1},
		Total:        1,
		FilesScanned: 4,
		Duration:     50 * time.Millisecond,
		Profiles:     []types.ProfileID{"docker"},
	}
	rec := NewRecord("/repo", rep)
	if rec.TotalFindings != 1 || rec.SeverityCounts["critical"] != 1 {
		t.Fatalf("unexpected counts: %#v", rec)
	}
	if len(rec.TopFindings) != 1 || rec.TopFindings[0].Rule != "aws_access_key" {
		t.Fatalf("unexpected top findings: %#v", rec.TopFindings)
	}
	if len(rec.Profiles) != 1 || rec.Profiles[0] != "docker" {
		t.Fatalf("unexpected profiles: %#v", rec.Profiles)
	}
}
