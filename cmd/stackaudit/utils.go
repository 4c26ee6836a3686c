package stackaudit

import (
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	// Update from GitHub Releases: stackaudit/stackaudit
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "stackaudit/stackaudit")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

// pick helpers resolve flag-vs-file precedence: a set CLI flag wins, then the
// merged config file value, then the zero value.

func pickString(cli string, file *string) string {
	if cli != "" {
		return cli
	}
	if file != nil {
		return *file
	}
	return ""
}

func pickInt(cli int, file *int) int {
	if cli != 0 {
		return cli
	}
	if file != nil {
		return *file
	}
	return 0
}

func pickInt64(cli int64, file *int64) int64 {
	if cli != 0 {
		return cli
	}
	if file != nil {
		return *file
	}
	return 0
}

func pickBool(cli bool, file *bool) bool {
	if cli {
		return true
	}
	if file != nil {
		return *file
	}
	return false
}
