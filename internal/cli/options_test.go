// internal/cli/options_test.go
package cli

import (
	"flag"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestLiteralPairOK(t *testing.T) {
	o := mustParse(t, "--query", "ACGT", "--target", "ACGT")
	if o.Query != "ACGT" || o.Target != "ACGT" || o.QueryFile != "" {
		t.Errorf("want literal pair only, got %+v", o)
	}
}

func TestFilePairOK(t *testing.T) {
	o := mustParse(t, "--query-file", "q.fa", "--target-file", "t.fa")
	if o.QueryFile != "q.fa" || o.TargetFile != "t.fa" || o.Query != "" {
		t.Errorf("want file pair only, got %+v", o)
	}
}

func TestScoringDefaults(t *testing.T) {
	o := mustParse(t, "--query", "A", "--target", "A")
	if o.Match != 2 || o.Mismatch != -3 || o.GapOpen != -5 || o.GapExtend != -2 {
		t.Errorf("bad scoring defaults %+v", o)
	}
	if o.MaxQueryLen != 2048 || o.MaxTargetLen != 8192 || o.BatchSize != 64 {
		t.Errorf("bad limit defaults %+v", o)
	}
	if o.Ends != EndsQuery || !o.Header {
		t.Errorf("bad policy/output defaults %+v", o)
	}
}

func TestChangedTracksExplicitFlags(t *testing.T) {
	o := mustParse(t, "--query", "A", "--target", "A", "--match", "2")
	if !o.Changed("match") {
		t.Errorf("match given explicitly but Changed is false")
	}
	if o.Changed("mismatch") {
		t.Errorf("mismatch left at default but Changed is true")
	}
}

func TestErrorMissingTarget(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"--query", "ACGT"})
	if err == nil {
		t.Fatalf("expected error when target not supplied")
	}
}

func TestErrorMutualExclusion(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--query", "ACGT", "--target", "ACGT", "--query-file", "q.fa",
	})
	if err == nil {
		t.Fatalf("expected mutual‑exclusion error")
	}
}

func TestErrorNoInput(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"--output", "json"})
	if err == nil {
		t.Fatalf("expected error with no sequence input")
	}
}

func TestErrorBadEnds(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--query", "A", "--target", "A", "--ends", "diagonal",
	})
	if err == nil {
		t.Fatalf("expected error for unknown ends policy")
	}
}

func TestErrorPrettyNeedsText(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--query", "A", "--target", "A", "--output", "json", "--pretty",
	})
	if err == nil {
		t.Fatalf("expected error for --pretty with json output")
	}
}
