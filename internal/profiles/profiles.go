// Package profiles detects which technology stacks are present in a project
// root by inspecting well-known files and dependency manifests.
package profiles

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/stackaudit/stackaudit/internal/rules"
	"github.com/stackaudit/stackaudit/internal/types"
)

// Profile binds a stack identifier to its detection predicate: any listed
// file existing under the root, or any substring appearing in the manifest
// file, activates the profile. Profiles are independent; several can be
// active at once.
type Profile struct {
	ID       types.ProfileID
	Label    string
	Files    []string
	Manifest string
	Contains []string
}

// All returns the known profiles in a stable order.
func All() []Profile {
	return []Profile{
		{ID: rules.ProfileDocker, Label: "Docker", Files: []string{"Dockerfile"}},
		{
			ID: rules.ProfileCompose, Label: "Docker Compose",
			Files: []string{"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"},
		},
		{
			ID: rules.ProfileNextJS, Label: "Next.js",
			Files: []string{"next.config.js", "next.config.mjs", "next.config.ts"},
		},
		{
			ID: rules.ProfileExpress, Label: "Express",
			Manifest: "package.json", Contains: []string{`"express"`},
		},
		{
			ID: rules.ProfileDjango, Label: "Django",
			Files: []string{"manage.py"}, Manifest: "requirements.txt", Contains: []string{"django"},
		},
		{
			ID: rules.ProfileFlask, Label: "Flask",
			Manifest: "requirements.txt", Contains: []string{"flask"},
		},
	}
}

// Detect evaluates every profile against root and returns the active set.
// Detection is side-effect-free; each manifest is read at most once per call.
// An empty result is normal and means only generic rules apply.
func Detect(root string) map[types.ProfileID]bool {
	active := map[types.ProfileID]bool{}
	manifests := map[string]string{}

	readManifest := func(name string) string {
		if cached, ok := manifests[name]; ok {
			return cached
		}
		b, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			manifests[name] = ""
			return ""
		}
		s := strings.ToLower(string(b))
		manifests[name] = s
		return s
	}

	for _, p := range All() {
		if profileActive(root, p, readManifest) {
			active[p.ID] = true
		}
	}
	return active
}

func profileActive(root string, p Profile, readManifest func(string) string) bool {
	for _, name := range p.Files {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	if p.Manifest == "" {
		return false
	}
	content := readManifest(p.Manifest)
	if content == "" {
		return false
	}
	for _, sub := range p.Contains {
		if strings.Contains(content, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// Parse maps a comma-separated list of profile IDs to the active set,
// reporting unknown names. Used by the --profiles override.
func Parse(list string) (map[types.ProfileID]bool, []string) {
	active := map[types.ProfileID]bool{}
	var unknown []string
	known := map[types.ProfileID]bool{}
	for _, p := range All() {
		known[p.ID] = true
	}
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id := types.ProfileID(part)
		if !known[id] {
			unknown = append(unknown, part)
			continue
		}
		active[id] = true
	}
	return active, unknown
}
