// Package artifacts scans container image metadata fetched from a remote
// registry. Only the image config blob is downloaded, never the layers, so
// the check stays cheap enough for CI.
package artifacts

import (
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"

	"github.com/stackaudit/stackaudit/internal/engine"
	"github.com/stackaudit/stackaudit/internal/rules"
	"github.com/stackaudit/stackaudit/internal/types"
)

// ScanImageEnv fetches the config for imageRef and runs the active rules over
// its environment variables and build history. Local Docker credentials
// (~/.docker/config.json) are used for authentication when present.
//
// Findings use virtual paths of the form image:tag::env and image:tag::history
// so they remain distinguishable from filesystem findings in reports.
func ScanImageEnv(imageRef string, active []rules.CompiledRule) ([]types.Finding, []types.Warning, error) {
	ref, err := name.ParseReference(imageRef)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid image reference %q: %w", imageRef, err)
	}

	img, err := remote.Image(ref, remote.WithAuthFromKeychain(authn.DefaultKeychain))
	if err != nil {
		return nil, nil, fmt.Errorf("fetch image metadata for %q: %w", imageRef, err)
	}
	cfg, err := img.ConfigFile()
	if err != nil {
		return nil, nil, fmt.Errorf("fetch image config for %q: %w", imageRef, err)
	}

	// ARG values leak into history as literal RUN/ENV instructions.
	var hist []string
	for _, h := range cfg.History {
		if h.CreatedBy != "" {
			hist = append(hist, h.CreatedBy)
		}
	}

	findings, warnings := scanConfigDocs(imageRef, cfg.Config.Env, hist, active)
	return findings, warnings, nil
}

func scanConfigDocs(imageRef string, env, history []string, active []rules.CompiledRule) ([]types.Finding, []types.Warning) {
	var findings []types.Finding
	var warnings []types.Warning
	if len(env) > 0 {
		fs, ws := engine.ApplyRules(imageRef+"::env", []byte(strings.Join(env, "\n")), active)
		findings = append(findings, fs...)
		warnings = append(warnings, ws...)
	}
	if len(history) > 0 {
		fs, ws := engine.ApplyRules(imageRef+"::history", []byte(strings.Join(history, "\n")), active)
		findings = append(findings, fs...)
		warnings = append(warnings, ws...)
	}
	return findings, warnings
}
