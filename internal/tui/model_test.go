package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stackaudit/stackaudit/internal/types"
)

func sampleFindings() []types.Finding {
	return []types.Finding{
		{Path: "a.env", Line: 1, Rule: "aws_access_key", Severity: types.SevCritical, Snippet: "AKIA...MPLE", Category: types.CatSecret},
		{Path: "Dockerfile", Line: 0, Rule: "dockerfile_root_user", Severity: types.SevMedium, Snippet: "USER root", Category: types.CatConfig},
		{Path: "app.js", Line: 7, Rule: "express_cors_wildcard", Severity: types.SevMedium, Snippet: "origin: '*'", Category: types.CatAuth},
	}
}

func TestNewModelShowsAllFindings(t *testing.T) {
	m := NewModel(sampleFindings())
	if len(m.visible) != 3 {
		t.Fatalf("expected 3 visible findings, got %d", len(m.visible))
	}
	if len(m.table.Rows()) != 3 {
		t.Fatalf("expected 3 table rows, got %d", len(m.table.Rows()))
	}
}

func TestCycleFilterNarrowsAndClears(t *testing.T) {
	m := NewModel(sampleFindings())
	m.cycleFilter() // critical
	if m.severityFilter != types.SevCritical {
		t.Fatalf("expected critical filter, got %q", m.severityFilter)
	}
	if len(m.visible) != 1 || m.visible[0].Rule != "aws_access_key" {
		t.Fatalf("expected only the critical finding, got %#v", m.visible)
	}
	for range filterCycle[1:] {
		m.cycleFilter()
	}
	if m.severityFilter != "" {
		t.Fatalf("expected filter to wrap to empty, got %q", m.severityFilter)
	}
	if len(m.visible) != 3 {
		t.Fatalf("expected all findings after clearing, got %d", len(m.visible))
	}
}

func TestLocationOmitsZeroLine(t *testing.T) {
	if got := location(types.Finding{Path: "Dockerfile"}); got != "Dockerfile" {
		t.Fatalf("whole-file location: got %q", got)
	}
	if got := location(types.Finding{Path: "a.env", Line: 4}); got != "a.env:4" {
		t.Fatalf("line location: got %q", got)
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(sampleFindings())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command for 'q'")
	}
}

func TestReadFileContext(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "settings.py")
	body := "import os\nDEBUG = True\nSECRET_KEY = 'x'\nALLOWED_HOSTS = []\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, start, err := readFileContext(p, 2, 1)
	if err != nil {
		t.Fatalf("readFileContext: %v", err)
	}
	if start != 1 || len(lines) != 3 {
		t.Fatalf("expected lines 1-3, got start=%d count=%d", start, len(lines))
	}
	if lines[1] != "DEBUG = True" {
		t.Fatalf("unexpected focus line: %q", lines[1])
	}
}

func TestReadFileContextVirtualPath(t *testing.T) {
	if _, _, err := readFileContext("redis:7::env", 1, 3); err == nil {
		t.Fatalf("virtual paths must not be opened")
	}
}
