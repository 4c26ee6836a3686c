// Package engine walks a directory tree and applies the active rule set to
// every candidate file using a bounded worker pool.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/stackaudit/stackaudit/internal/cache"
	"github.com/stackaudit/stackaudit/internal/profiles"
	"github.com/stackaudit/stackaudit/internal/redact"
	"github.com/stackaudit/stackaudit/internal/rules"
	"github.com/stackaudit/stackaudit/internal/types"
)

// IgnoreFileName is the project-local ignore file honored during walks.
const IgnoreFileName = ".stackauditignore"

// DefaultMaxFileSize caps how much of the tree a single file may cost.
const DefaultMaxFileSize = 1 << 20

// Config controls one scan invocation.
type Config struct {
	Root         string
	Profiles     []types.ProfileID // non-nil forces profiles instead of auto-detection
	ExcludeGlobs []string
	MaxFileSize  int64
	Workers      int
	NoCache      bool
	Progress     func()
}

// Result contains findings, recoverable warnings, and scan statistics.
// Findings arrive in worker completion order; the reporter re-sorts.
type Result struct {
	Findings     []types.Finding
	Warnings     []types.Warning
	Profiles     []types.ProfileID
	FilesScanned int
	Duration     time.Duration
	Cancelled    bool
}

// Scan runs the engine against cfg.Root. A missing root is a fatal
// InputError; everything else recoverable is surfaced as a Warning in the
// result. Cancelling ctx stops dispatching new files, lets in-flight files
// finish, and returns the partial result with Cancelled set.
func Scan(ctx context.Context, cfg Config, reg *rules.Registry) (Result, error) {
	var res Result
	st, err := os.Stat(cfg.Root)
	if err != nil {
		return res, &types.InputError{Path: cfg.Root, Err: err}
	}
	if !st.IsDir() {
		return res, &types.InputError{Path: cfg.Root, Err: errors.New("not a directory")}
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	active := map[types.ProfileID]bool{}
	if cfg.Profiles != nil {
		for _, p := range cfg.Profiles {
			active[p] = true
		}
	} else {
		active = profiles.Detect(cfg.Root)
	}
	for id := range active {
		res.Profiles = append(res.Profiles, id)
	}
	sort.Slice(res.Profiles, func(i, j int) bool { return res.Profiles[i] < res.Profiles[j] })

	activeRules := reg.RulesFor(active)
	ids := make([]string, len(activeRules))
	for i, cr := range activeRules {
		ids[i] = cr.ID
	}
	sig := cache.RulesSignature(ids)

	db := cache.DB{RulesSig: sig, Entries: map[string]cache.Entry{}}
	if !cfg.NoCache {
		db = cache.Load(cfg.Root, sig)
	}
	updated := map[string]cache.Entry{}

	var ign *ignore.GitIgnore
	if m, err := ignore.CompileIgnoreFile(filepath.Join(cfg.Root, IgnoreFileName)); err == nil {
		ign = m
	}

	started := time.Now()
	var mu sync.Mutex
	addFindings := func(fs []types.Finding) {
		mu.Lock()
		res.Findings = append(res.Findings, fs...)
		mu.Unlock()
	}
	addWarning := func(w types.Warning) {
		mu.Lock()
		res.Warnings = append(res.Warnings, w)
		mu.Unlock()
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				scanFile(cfg, rel, activeRules, db, updated, &mu, &res, addFindings, addWarning)
			}
		}()
	}

	walk(ctx, cfg, ign, func(rel string) {
		select {
		case jobs <- rel:
		case <-ctx.Done():
		}
	}, addWarning)
	close(jobs)
	wg.Wait()

	res.Cancelled = ctx.Err() != nil
	res.Duration = time.Since(started)

	if !cfg.NoCache && !res.Cancelled && len(updated) > 0 {
		db.Entries = updated
		_ = cache.Save(cfg.Root, db)
	}
	return res, nil
}

func scanFile(cfg Config, rel string, activeRules []rules.CompiledRule, db cache.DB, updated map[string]cache.Entry, mu *sync.Mutex, res *Result, addFindings func([]types.Finding), addWarning func(types.Warning)) {
	if cfg.Progress != nil {
		defer cfg.Progress()
	}

	data, err := os.ReadFile(filepath.Join(cfg.Root, rel))
	if err != nil {
		addWarning(types.Warning{Path: rel, Reason: "unreadable: " + err.Error()})
		return
	}
	if looksBinary(data) {
		addWarning(types.Warning{Path: rel, Reason: "skipped: binary file"})
		return
	}

	h := cache.Hash(data)
	if entry, ok := db.Entries[rel]; ok && entry.Hash == h {
		addFindings(entry.Findings)
		mu.Lock()
		res.FilesScanned++
		updated[rel] = entry
		mu.Unlock()
		return
	}

	findings, warns := ApplyRules(rel, data, activeRules)
	addFindings(findings)
	for _, w := range warns {
		addWarning(w)
	}
	mu.Lock()
	res.FilesScanned++
	updated[rel] = cache.Entry{Hash: h, Findings: findings}
	mu.Unlock()
}

// ApplyRules evaluates every glob-applicable rule against one file's content
// and returns redacted findings. Matcher failures are confined to their
// (file, rule) pair and reported as warnings. A rule with an escalation
// partner is raised when the partner also matched the same file.
func ApplyRules(path string, data []byte, active []rules.CompiledRule) ([]types.Finding, []types.Warning) {
	type hit struct {
		rule  rules.CompiledRule
		match rules.Match
	}
	var hits []hit
	var warns []types.Warning
	matched := map[string]bool{}

	for _, cr := range active {
		if !cr.AppliesTo(path) {
			continue
		}
		ms, err := safeMatch(cr, path, data)
		if err != nil {
			warns = append(warns, types.Warning{Path: path, Rule: cr.ID, Reason: "matcher failed: " + err.Error()})
			continue
		}
		if len(ms) > 0 {
			matched[cr.ID] = true
		}
		for _, m := range ms {
			hits = append(hits, hit{rule: cr, match: m})
		}
	}

	var out []types.Finding
	for _, h := range hits {
		sev := h.rule.Severity
		if h.rule.EscalateWith != "" && matched[h.rule.EscalateWith] {
			sev = h.rule.EscalateTo
		}
		out = append(out, types.Finding{
			Path:     path,
			Line:     h.match.Line,
			Rule:     h.rule.ID,
			Title:    h.rule.Title,
			Severity: sev,
			Snippet:  snippet(h.rule, h.match),
			Category: h.rule.Category,
		})
	}
	return out, warns
}

func safeMatch(cr rules.CompiledRule, path string, data []byte) (ms []rules.Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return cr.Match(path, data), nil
}

// snippet builds the display form of a match. Captured secrets always pass
// through the redactor; configuration matches show the matched text, capped.
func snippet(cr rules.CompiledRule, m rules.Match) string {
	if m.Secret != "" {
		return redact.Mask(m.Secret)
	}
	if cr.Category == types.CatSecret && m.Text != "" {
		return redact.Mask(m.Text)
	}
	t := strings.TrimSpace(m.Text)
	if len(t) > 120 {
		t = t[:117] + "..."
	}
	return t
}
