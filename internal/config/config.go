package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for stackaudit. All
// fields are pointers so the CLI can tell "unset" apart from a zero value
// when merging flags over file values.
type FileConfig struct {
	Exclude     []string `yaml:"exclude"`
	MaxFileSize *int64   `yaml:"max_file_size"`
	Workers     *int     `yaml:"workers"`
	Format      *string  `yaml:"format"`
	Profiles    []string `yaml:"profiles"`
	NoColor     *bool    `yaml:"no_color"`
	NoCache     *bool    `yaml:"no_cache"`
	Baseline    *string  `yaml:"baseline"`
	FailOn      *string  `yaml:"fail_on"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .stackaudit.yml/.yaml and stackaudit.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".stackaudit.yml", ".stackaudit.yaml", "stackaudit.yml", "stackaudit.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "stackaudit", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Merge layers other over fc: fields set in other win, slices replace.
func (fc FileConfig) Merge(other FileConfig) FileConfig {
	out := fc
	if other.Exclude != nil {
		out.Exclude = other.Exclude
	}
	if other.MaxFileSize != nil {
		out.MaxFileSize = other.MaxFileSize
	}
	if other.Workers != nil {
		out.Workers = other.Workers
	}
	if other.Format != nil {
		out.Format = other.Format
	}
	if other.Profiles != nil {
		out.Profiles = other.Profiles
	}
	if other.NoColor != nil {
		out.NoColor = other.NoColor
	}
	if other.NoCache != nil {
		out.NoCache = other.NoCache
	}
	if other.Baseline != nil {
		out.Baseline = other.Baseline
	}
	if other.FailOn != nil {
		out.FailOn = other.FailOn
	}
	return out
}
