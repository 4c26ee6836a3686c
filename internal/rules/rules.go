// Package rules holds the detection rule catalog and the registry that
// selects which rules apply for a set of active stack profiles.
package rules

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/stackaudit/stackaudit/internal/types"
)

// StructuralFunc inspects a whole file and reports matches that a plain
// regular expression cannot express (e.g. parsed YAML structure, or the
// absence of an expected construct).
type StructuralFunc func(path string, data []byte) []Match

// Match is one raw hit produced by a rule's matcher. Text is the matched
// text for display; Secret is the captured secret span, empty when the rule
// does not capture one. Line is 1-based and zero for whole-file checks.
type Match struct {
	Line   int
	Text   string
	Secret string
}

// Rule is one immutable detection rule. Exactly one of Pattern or Structural
// must be set. Rules with no Profiles are generic and always active; rules
// with no Globs apply to every text file.
type Rule struct {
	ID          string
	Title       string
	Category    types.Category
	Severity    types.Severity
	Globs       []string
	Pattern     string
	MultiLine   bool
	Structural  StructuralFunc
	Profiles    []types.ProfileID
	Remediation string

	// EscalateWith names a rule whose match in the same file raises this
	// rule's findings to EscalateTo (e.g. a CORS wildcard is worse when the
	// credentials flag is also set).
	EscalateWith string
	EscalateTo   types.Severity
}

// CompiledRule is a Rule with its pattern compiled. Compiled rules are
// read-only after registry construction and safe for concurrent use.
type CompiledRule struct {
	Rule
	re *regexp.Regexp
}

// AppliesTo reports whether the rule should be evaluated against the given
// slash-separated relative path.
func (c CompiledRule) AppliesTo(rel string) bool {
	if len(c.Globs) == 0 {
		return true
	}
	rel = strings.ReplaceAll(rel, "\\", "/")
	for _, g := range c.Globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

// Match runs the rule's matcher against file content. Line-oriented rules
// scan per line; multi-line rules match the whole content with line numbers
// derived from the match offset. Structural rules delegate entirely.
func (c CompiledRule) Match(path string, data []byte) []Match {
	if c.Structural != nil {
		return c.Structural(path, data)
	}
	if c.MultiLine {
		return c.matchWhole(data)
	}
	return c.matchLines(data)
}

func (c CompiledRule) matchLines(data []byte) []Match {
	var out []Match
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		txt := sc.Text()
		for _, idx := range c.re.FindAllStringSubmatchIndex(txt, -1) {
			out = append(out, c.toMatch(txt, idx, line))
		}
	}
	return out
}

func (c CompiledRule) matchWhole(data []byte) []Match {
	var out []Match
	s := string(data)
	for _, idx := range c.re.FindAllStringSubmatchIndex(s, -1) {
		line := 1 + strings.Count(s[:idx[0]], "\n")
		out = append(out, c.toMatch(s, idx, line))
	}
	return out
}

func (c CompiledRule) toMatch(s string, idx []int, line int) Match {
	m := Match{Line: line, Text: s[idx[0]:idx[1]]}
	if len(idx) >= 4 && idx[2] >= 0 {
		m.Secret = s[idx[2]:idx[3]]
	} else if c.Category == types.CatSecret {
		m.Secret = m.Text
	}
	return m
}

// Registry holds the validated rule catalog in registration order.
type Registry struct {
	rules []CompiledRule
	byID  map[string]int
}

// NewRegistry compiles and validates a catalog. Any malformed rule (empty or
// duplicate ID, unknown severity or category, invalid regular expression,
// dangling escalation reference) fails with a ConfigError at load time.
func NewRegistry(catalog []Rule) (*Registry, error) {
	r := &Registry{byID: make(map[string]int, len(catalog))}
	for _, rule := range catalog {
		if rule.ID == "" {
			return nil, &types.ConfigError{Rule: rule.Title, Err: errors.New("empty rule id")}
		}
		if _, dup := r.byID[rule.ID]; dup {
			return nil, &types.ConfigError{Rule: rule.ID, Err: errors.New("duplicate rule id")}
		}
		if !rule.Severity.Known() {
			return nil, &types.ConfigError{Rule: rule.ID, Err: fmt.Errorf("unknown severity %q", rule.Severity)}
		}
		switch rule.Category {
		case types.CatSecret, types.CatConfig, types.CatAuth, types.CatNetwork:
		default:
			return nil, &types.ConfigError{Rule: rule.ID, Err: fmt.Errorf("unknown category %q", rule.Category)}
		}
		cr := CompiledRule{Rule: rule}
		if rule.Structural == nil {
			if rule.Pattern == "" {
				return nil, &types.ConfigError{Rule: rule.ID, Err: errors.New("rule has neither pattern nor structural matcher")}
			}
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, &types.ConfigError{Rule: rule.ID, Err: err}
			}
			cr.re = re
		}
		r.byID[rule.ID] = len(r.rules)
		r.rules = append(r.rules, cr)
	}
	for _, cr := range r.rules {
		if cr.EscalateWith == "" {
			continue
		}
		if _, ok := r.byID[cr.EscalateWith]; !ok {
			return nil, &types.ConfigError{Rule: cr.ID, Err: fmt.Errorf("escalation references unknown rule %q", cr.EscalateWith)}
		}
		if !cr.EscalateTo.Known() {
			return nil, &types.ConfigError{Rule: cr.ID, Err: fmt.Errorf("escalation to unknown severity %q", cr.EscalateTo)}
		}
	}
	return r, nil
}

// Default builds a registry from the builtin catalog.
func Default() (*Registry, error) {
	return NewRegistry(Catalog())
}

// RulesFor returns the generic rules plus every rule belonging to an active
// profile, in registration order. Repeated calls with the same set return
// the same sequence.
func (r *Registry) RulesFor(active map[types.ProfileID]bool) []CompiledRule {
	var out []CompiledRule
	for _, cr := range r.rules {
		if len(cr.Profiles) == 0 {
			out = append(out, cr)
			continue
		}
		for _, p := range cr.Profiles {
			if active[p] {
				out = append(out, cr)
				break
			}
		}
	}
	return out
}

// All returns every rule in registration order.
func (r *Registry) All() []CompiledRule {
	out := make([]CompiledRule, len(r.rules))
	copy(out, r.rules)
	return out
}
