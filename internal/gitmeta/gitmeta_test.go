package gitmeta

import (
	"os/exec"
	"testing"
)

func TestResolveNonRepo(t *testing.T) {
	info := Resolve(t.TempDir())
	if info.Repo != "" || info.Commit != "" || info.Branch != "" {
		t.Fatalf("expected empty info outside a repo, got %#v", info)
	}
}

func TestResolveRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, string(out))
		}
	}
	run("init", ".")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "tester")
	run("remote", "add", "origin", "git@github.com:acme/widgets.git")
	run("commit", "--allow-empty", "-m", "init")

	info := Resolve(dir)
	if info.Commit == "" {
		t.Fatalf("expected non-empty commit")
	}
	if info.Branch == "" {
		t.Fatalf("expected non-empty branch")
	}
	if info.Repo != "acme/widgets" {
		t.Fatalf("expected acme/widgets, got %q", info.Repo)
	}
}

func TestShortRemote(t *testing.T) {
	cases := map[string]string{
		"git@github.com:acme/widgets.git":    "acme/widgets",
		"https://github.com/acme/widgets":    "acme/widgets",
		"ssh://git@example.com:org/repo.git": "org/repo",
	}
	for in, want := range cases {
		if got := shortRemote(in); got != want {
			t.Fatalf("shortRemote(%q) = %q, want %q", in, got, want)
		}
	}
}
