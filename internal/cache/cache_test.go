package cache

import (
	"testing"

	"github.com/stackaudit/stackaudit/internal/types"
)

func TestRoundTrip(t *testing.T) {
	root := t.TempDir()
	db := DB{RulesSig: "sig1", Entries: map[string]Entry{
		"a.txt": {Hash: Hash([]byte("hello")), Findings: []types.Finding{{
			Path: "a.txt", Line: 1, Rule: "aws_access_key", Severity: types.SevCritical,
			Snippet: "AKIA...MPLE", Category: types.CatSecret,
		}}},
	}}
	if err := Save(root, db); err != nil {
		t.Fatal(err)
	}

	got := Load(root, "sig1")
	e, ok := got.Entries["a.txt"]
	if !ok || len(e.Findings) != 1 {
		t.Fatalf("cache did not round-trip: %+v", got)
	}

	// Different rule signature invalidates the whole cache.
	if got := Load(root, "sig2"); len(got.Entries) != 0 {
		t.Fatalf("stale cache accepted under new rule signature: %+v", got)
	}
}

func TestHashStable(t *testing.T) {
	if Hash([]byte("x")) != Hash([]byte("x")) {
		t.Fatal("hash not deterministic")
	}
	if Hash([]byte("x")) == Hash([]byte("y")) {
		t.Fatal("hash collision on trivial inputs")
	}
	if len(Hash([]byte("anything"))) != 16 {
		t.Fatal("hash width changed")
	}
}

func TestRulesSignatureOrderIndependent(t *testing.T) {
	a := RulesSignature([]string{"b", "a", "c"})
	b := RulesSignature([]string{"c", "b", "a"})
	if a != b {
		t.Fatalf("signature depends on order: %s vs %s", a, b)
	}
	if a == RulesSignature([]string{"a", "b"}) {
		t.Fatal("signature ignores membership")
	}
}
