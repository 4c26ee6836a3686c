package engine

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/stackaudit/stackaudit/internal/types"
)

// walk enumerates candidate files under cfg.Root in lexical order, honoring
// the fixed exclusion list, user exclude globs, and the project ignore file.
// Oversized files are reported as warnings, not emitted. Stops early once
// ctx is cancelled.
func walk(ctx context.Context, cfg Config, ign *ignore.GitIgnore, emit func(rel string), warn func(types.Warning)) {
	_ = filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(cfg.Root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if isExcludedFile(rel) {
			return nil
		}
		if excludedByGlobs(rel, cfg.ExcludeGlobs) {
			return nil
		}
		if ign != nil && ign.MatchesPath(rel) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			warn(types.Warning{Path: rel, Reason: "unreadable: " + infoErr.Error()})
			return nil
		}
		if info.Size() > cfg.MaxFileSize {
			warn(types.Warning{Path: rel, Reason: "skipped: exceeds max file size"})
			return nil
		}
		emit(rel)
		return nil
	})
}

func excludedByGlobs(rel string, globs []string) bool {
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

// looksBinary implements the cheap binary heuristic: a NUL byte within the
// first 512 bytes.
func looksBinary(b []byte) bool {
	n := 512
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}
