package engine

import "strings"

// Directories never descended into, regardless of flags: version control,
// dependency caches, and build output.
var excludedDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".next":        true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"coverage":     true,
}

// Suffixes of files that are noise for lexical scanning: minified bundles,
// media, archives, compiled artifacts.
var excludedFileSuffixes = []string{
	".min.js", ".map",
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico",
	".pdf", ".zip", ".gz", ".tar", ".tgz", ".7z",
	".jar", ".class", ".exe", ".dll", ".so",
	".wasm", ".pyc",
	".pb.go", ".gen.go",
}

var excludedFileNames = map[string]bool{
	"yarn.lock":         true,
	"package-lock.json": true,
	"pnpm-lock.yaml":    true,
	"composer.lock":     true,
	"poetry.lock":       true,
	".DS_Store":         true,
}

func isExcludedDir(name string) bool {
	return excludedDirs[name] || strings.HasPrefix(name, ".git")
}

func isExcludedFile(rel string) bool {
	lower := strings.ToLower(rel)
	if strings.HasSuffix(lower, ".lock") {
		return true
	}
	for _, s := range excludedFileSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	parts := strings.Split(rel, "/")
	return excludedFileNames[parts[len(parts)-1]]
}
