package rules

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stackaudit/stackaudit/internal/types"
)

var dockerfileGlobs = []string{"Dockerfile", "Dockerfile.*", "**/Dockerfile", "**/Dockerfile.*", "**/*.dockerfile"}

var composeGlobs = []string{
	"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml",
	"**/docker-compose.yml", "**/docker-compose.yaml", "**/compose.yml", "**/compose.yaml",
	"docker-compose.*.yml", "docker-compose.*.yaml",
}

func dockerRules() []Rule {
	return []Rule{
		{
			ID:          "dockerfile_env_secret",
			Title:       "Secret baked into image via ENV",
			Category:    types.CatSecret,
			Severity:    types.SevHigh,
			Globs:       dockerfileGlobs,
			Pattern:     `(?i)^\s*ENV\s+\w*(?:SECRET|TOKEN|PASSWORD|API_?KEY)\w*[= ]+["']?([^\s"'$]{8,})`,
			Profiles:    []types.ProfileID{ProfileDocker},
			Remediation: "Pass secrets at runtime (--env-file, secret mounts) instead of baking them into image layers.",
		},
		{
			ID:       "dockerfile_root_user",
			Title:    "Container runs as root",
			Category: types.CatConfig,
			Severity: types.SevMedium,
			Globs:    dockerfileGlobs,
			Pattern:  `(?i)^\s*USER\s+root\b`,
			Profiles: []types.ProfileID{ProfileDocker},
		},
		{
			ID:       "dockerfile_add_url",
			Title:    "ADD fetches remote content at build time",
			Category: types.CatConfig,
			Severity: types.SevLow,
			Globs:    dockerfileGlobs,
			Pattern:  `(?i)^\s*ADD\s+https?://\S+`,
			Profiles: []types.ProfileID{ProfileDocker},
		},
		{
			ID:       "dockerfile_latest_base",
			Title:    "Base image pinned to :latest",
			Category: types.CatConfig,
			Severity: types.SevInfo,
			Globs:    dockerfileGlobs,
			Pattern:  `(?i)^\s*FROM\s+[^\s:@]+:latest\b`,
			Profiles: []types.ProfileID{ProfileDocker},
		},
		{
			ID:          "compose_db_port_exposed",
			Title:       "Database port published to the host",
			Category:    types.CatNetwork,
			Severity:    types.SevCritical,
			Globs:       composeGlobs,
			Structural:  ComposeExposedDBPorts,
			Profiles:    []types.ProfileID{ProfileCompose},
			Remediation: "Remove the ports mapping or bind it to 127.0.0.1; services on the same compose network reach the database without publishing it.",
		},
		{
			ID:       "compose_privileged",
			Title:    "Service runs privileged",
			Category: types.CatConfig,
			Severity: types.SevHigh,
			Globs:    composeGlobs,
			Pattern:  `^\s*privileged:\s*true\b`,
			Profiles: []types.ProfileID{ProfileCompose},
		},
		{
			ID:       "compose_docker_sock",
			Title:    "Docker socket mounted into service",
			Category: types.CatConfig,
			Severity: types.SevHigh,
			Globs:    composeGlobs,
			Pattern:  `/var/run/docker\.sock`,
			Profiles: []types.ProfileID{ProfileCompose},
		},
		{
			ID:       "compose_env_secret",
			Title:    "Secret inlined in compose environment",
			Category: types.CatSecret,
			Severity: types.SevHigh,
			Globs:    composeGlobs,
			Pattern:  `(?i)^\s*-?\s*\w*(?:PASSWORD|SECRET|TOKEN|API_?KEY)\w*[:=]\s*["']?([^\s"'$]{8,})`,
			Profiles: []types.ProfileID{ProfileCompose},
		},
	}
}

// databasePorts are well-known ports whose exposure on the host almost always
// indicates an unintentionally published datastore.
var databasePorts = map[string]string{
	"5432":  "postgres",
	"3306":  "mysql",
	"6379":  "redis",
	"27017": "mongodb",
	"1433":  "sqlserver",
	"9200":  "elasticsearch",
	"5984":  "couchdb",
}

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	Image string `yaml:"image"`
	Ports []any  `yaml:"ports"`
}

// ComposeExposedDBPorts parses a compose file and reports every service that
// publishes a well-known database port to the host. Malformed YAML yields no
// matches; it is not this rule's job to lint syntax.
func ComposeExposedDBPorts(path string, data []byte) []Match {
	var doc composeFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil
	}
	var out []Match
	for name, svc := range doc.Services {
		for _, p := range svc.Ports {
			published, ok := publishedPort(p)
			if !ok {
				continue
			}
			if db, known := databasePorts[published]; known {
				out = append(out, Match{
					Text: fmt.Sprintf("service %q publishes %s port %s", name, db, published),
				})
			}
		}
	}
	return out
}

// publishedPort extracts the host-side port from a compose ports entry,
// covering the short string form ("5432:5432", "127.0.0.1:5432:5432"),
// bare numbers, and the long map form (published: 5432).
func publishedPort(entry any) (string, bool) {
	switch v := entry.(type) {
	case string:
		parts := strings.Split(v, ":")
		switch len(parts) {
		case 1:
			return strings.TrimSpace(parts[0]), true
		case 2:
			return strings.TrimSpace(parts[0]), true
		default:
			host := strings.TrimSpace(parts[0])
			if host == "127.0.0.1" || host == "localhost" {
				return "", false
			}
			return strings.TrimSpace(parts[1]), true
		}
	case int:
		return fmt.Sprintf("%d", v), true
	case map[string]any:
		if pub, ok := v["published"]; ok {
			return fmt.Sprintf("%v", pub), true
		}
	}
	return "", false
}
