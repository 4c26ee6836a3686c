package stackaudit

import (
	"testing"

	"github.com/stackaudit/stackaudit/internal/types"
)

func TestPickHelpers(t *testing.T) {
	s := "file"
	if got := pickString("cli", &s); got != "cli" {
		t.Fatalf("CLI value should win, got %q", got)
	}
	if got := pickString("", &s); got != "file" {
		t.Fatalf("file value should apply when flag unset, got %q", got)
	}
	if got := pickString("", nil); got != "" {
		t.Fatalf("expected zero value, got %q", got)
	}

	n := 3
	if got := pickInt(0, &n); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	var sz int64 = 2048
	if got := pickInt64(4096, &sz); got != 4096 {
		t.Fatalf("expected 4096, got %d", got)
	}
	b := true
	if !pickBool(false, &b) {
		t.Fatalf("file true should apply")
	}
	if pickBool(false, nil) {
		t.Fatalf("expected false default")
	}
}

func TestForcedProfiles(t *testing.T) {
	ids, err := forcedProfiles("docker, django")
	if err != nil {
		t.Fatalf("forcedProfiles: %v", err)
	}
	if len(ids) != 2 || ids[0] != types.ProfileID("django") || ids[1] != types.ProfileID("docker") {
		t.Fatalf("expected sorted [django docker], got %v", ids)
	}

	if ids, err := forcedProfiles(""); err != nil || ids != nil {
		t.Fatalf("empty list should mean auto-detection, got %v %v", ids, err)
	}

	if _, err := forcedProfiles("rails"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestScanRootPositionalWinsOverFlag(t *testing.T) {
	old := flagPath
	defer func() { flagPath = old }()

	flagPath = "/from/flag"
	if got := scanRoot([]string{"/from/arg"}); got != "/from/arg" {
		t.Fatalf("positional should win, got %q", got)
	}
	if got := scanRoot(nil); got != "/from/flag" {
		t.Fatalf("flag should apply without positional, got %q", got)
	}
	if got := scanRoot([]string{""}); got != "/from/flag" {
		t.Fatalf("empty positional should fall back to flag, got %q", got)
	}
}

func TestScanCommandArgs(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"scan"})
	if err != nil {
		t.Fatalf("find scan: %v", err)
	}
	if err := cmd.Args(cmd, []string{"/repo"}); err != nil {
		t.Fatalf("one positional should be accepted: %v", err)
	}
	if err := cmd.Args(cmd, []string{"/repo", "/other"}); err == nil {
		t.Fatal("expected error for extra positionals")
	}
}

func TestProfilesValue(t *testing.T) {
	if profilesValue(nil) != nil {
		t.Fatal("empty slice should yield nil")
	}
	got := profilesValue([]string{"docker", "flask"})
	if got == nil || *got != "docker,flask" {
		t.Fatalf("expected docker,flask, got %v", got)
	}
}
