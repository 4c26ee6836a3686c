package core

import (
	"bytes"
	"context"
	"testing"
)

func TestScan_Smoke(t *testing.T) {
	cfg := Config{Root: t.TempDir()}
	findings, err := Scan(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("empty tree should have no findings, got %d", len(findings))
	}
	ids := RuleIDs()
	if len(ids) == 0 {
		t.Fatal("expected non-empty rule IDs")
	}
}

func TestResultEnvelopeRoundTrip(t *testing.T) {
	res := Result{
		Findings:     []Finding{{Path: "a.env", Line: 1, Rule: "aws_access_key", Severity: "critical", Snippet: "AKIA...MPLE", Category: "secret"}},
		FilesScanned: 1,
	}
	var buf bytes.Buffer
	if err := WriteResult(&buf, res); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"summary"`)) {
		t.Fatalf("expected the full report envelope, got %s", buf.Bytes())
	}
	out, err := ReadFindings(&buf)
	if err != nil {
		t.Fatalf("ReadFindings: %v", err)
	}
	if len(out) != 1 || out[0].Rule != "aws_access_key" || out[0].Snippet != "AKIA...MPLE" {
		t.Fatalf("round trip mismatch: %#v", out)
	}
}
