// Package gitmeta resolves repository context (remote, commit, branch) for
// report metadata. Everything here is best-effort: a scan target that is not
// a git repository yields empty values, never an error.
package gitmeta

import (
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Info describes the repository a scan ran against.
type Info struct {
	Repo   string
	Commit string
	Branch string
}

// Resolve inspects root (or any parent containing .git) and returns whatever
// repository context is available.
func Resolve(root string) Info {
	var info Info
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return info
	}
	if rem, err := repo.Remote("origin"); err == nil {
		urls := rem.Config().URLs
		if len(urls) > 0 {
			info.Repo = shortRemote(urls[0])
		}
	}
	head, err := repo.Head()
	if err != nil {
		return info
	}
	info.Commit = head.Hash().String()
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info
}

// shortRemote reduces a remote URL to owner/name where possible.
func shortRemote(url string) string {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.Index(s, "github.com/"); i >= 0 {
		return s[i+len("github.com/"):]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}
