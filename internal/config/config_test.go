package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "stackaudit.yaml", "workers: 4\nmax_file_size: 123\nformat: json\nexclude:\n  - '**/*.snap'\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Workers == nil || *cfg.Workers != 4 {
		t.Fatalf("expected workers=4, got %#v", cfg.Workers)
	}
	if cfg.MaxFileSize == nil || *cfg.MaxFileSize != 123 {
		t.Fatalf("expected max_file_size=123, got %#v", cfg.MaxFileSize)
	}
	if cfg.Format == nil || *cfg.Format != "json" {
		t.Fatalf("expected format=json, got %#v", cfg.Format)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "**/*.snap" {
		t.Fatalf("expected one exclude glob, got %#v", cfg.Exclude)
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "stackaudit.yaml", "workers: 1\n")
	writeTemp(t, dir, ".stackaudit.yaml", "workers: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Workers == nil || *cfg.Workers != 7 {
		t.Fatalf("expected workers=7 from .stackaudit.yaml, got %#v", cfg.Workers)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLocal(dir); err == nil {
		t.Fatal("expected error when no local config exists")
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "stackaudit")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(cfgDir, "config.yml")
	if err := os.WriteFile(p, []byte("workers: 9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Workers == nil || *cfg.Workers != 9 {
		t.Fatalf("expected workers=9 from global config, got %#v", cfg.Workers)
	}
}

func TestMerge_LocalOverGlobal(t *testing.T) {
	four, nine := 4, 9
	jsonFmt := "json"
	global := FileConfig{Workers: &nine, Format: &jsonFmt}
	local := FileConfig{Workers: &four, Exclude: []string{"dist/**"}}
	merged := global.Merge(local)
	if merged.Workers == nil || *merged.Workers != 4 {
		t.Fatalf("local workers should win, got %#v", merged.Workers)
	}
	if merged.Format == nil || *merged.Format != "json" {
		t.Fatalf("global format should survive, got %#v", merged.Format)
	}
	if len(merged.Exclude) != 1 {
		t.Fatalf("local exclude should apply, got %#v", merged.Exclude)
	}
}
