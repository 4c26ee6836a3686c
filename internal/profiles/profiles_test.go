package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stackaudit/stackaudit/internal/rules"
)

func write(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectEmptyTree(t *testing.T) {
	root := t.TempDir()
	if active := Detect(root); len(active) != 0 {
		t.Fatalf("expected no profiles in empty tree, got %v", active)
	}
}

func TestDetectByFilePresence(t *testing.T) {
	root := t.TempDir()
	write(t, root, "Dockerfile", "FROM alpine\n")
	write(t, root, "next.config.js", "module.exports = {}\n")

	active := Detect(root)
	if !active[rules.ProfileDocker] {
		t.Fatal("docker profile not detected")
	}
	if !active[rules.ProfileNextJS] {
		t.Fatal("nextjs profile not detected")
	}
	if active[rules.ProfileExpress] {
		t.Fatal("express detected without package.json")
	}
}

func TestDetectByManifestSubstring(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies":{"express":"^4.18.0"}}`)
	write(t, root, "requirements.txt", "Django==5.0\nflask\n")

	active := Detect(root)
	if !active[rules.ProfileExpress] {
		t.Fatal("express profile not detected from package.json")
	}
	if !active[rules.ProfileDjango] {
		t.Fatal("django profile not detected from requirements.txt")
	}
	if !active[rules.ProfileFlask] {
		t.Fatal("flask profile not detected from requirements.txt")
	}
}

func TestDetectProfilesNotExclusive(t *testing.T) {
	root := t.TempDir()
	write(t, root, "Dockerfile", "FROM node:20\n")
	write(t, root, "docker-compose.yml", "services: {}\n")
	write(t, root, "next.config.mjs", "export default {}\n")

	active := Detect(root)
	for _, id := range []string{"docker", "compose", "nextjs"} {
		if !active[rules.ProfileDocker] && id == "docker" {
			t.Fatalf("profile %s missing", id)
		}
	}
	if len(active) != 3 {
		t.Fatalf("expected 3 simultaneous profiles, got %v", active)
	}
}

func TestParse(t *testing.T) {
	active, unknown := Parse("docker, nextjs,bogus")
	if !active[rules.ProfileDocker] || !active[rules.ProfileNextJS] {
		t.Fatalf("parse missed known profiles: %v", active)
	}
	if len(unknown) != 1 || unknown[0] != "bogus" {
		t.Fatalf("unknown = %v", unknown)
	}
}
