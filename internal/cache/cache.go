// Package cache stores per-file scan results keyed by content hash so that
// unchanged files can be replayed instead of re-matched. Cached findings are
// already redacted; no raw secret text ever reaches disk.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/stackaudit/stackaudit/internal/types"
)

// Entry is the cached outcome for one file at one content hash.
type Entry struct {
	Hash     string          `json:"hash"`
	Findings []types.Finding `json:"findings,omitempty"`
}

// DB maps relative paths to cached entries. RulesSig fingerprints the active
// rule set; a cache written under a different rule set is ignored wholesale.
type DB struct {
	RulesSig string           `json:"rules_sig"`
	Entries  map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing under .git to avoid accidental commits.
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "stackauditcache.json")
	}
	return filepath.Join(root, ".stackauditcache.json")
}

// Load reads the cache for root. A missing or unreadable cache, or one
// written under a different rule signature, comes back empty.
func Load(root, rulesSig string) DB {
	empty := DB{RulesSig: rulesSig, Entries: map[string]Entry{}}
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return empty
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return empty
	}
	if db.RulesSig != rulesSig || db.Entries == nil {
		return empty
	}
	return db
}

// Save persists the cache for root.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0o644)
}

// Hash returns a short hex content fingerprint.
func Hash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// RulesSignature fingerprints a set of rule IDs independent of order.
func RulesSignature(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return Hash([]byte(strings.Join(sorted, ",")))
}
