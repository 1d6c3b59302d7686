// internal/writers/alignment_writer_test.go
package writers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"agal-core/cigar"

	"agal/internal/output"
	"agal/pkg/api"
)

func row(q, t string, score int) output.Alignment {
	return output.Alignment{
		QueryID: q, TargetID: t, Score: score,
		QueryEnd: 4, TargetEnd: 4, Cigar: "4M",
		QuerySeq: "ACGT", TargetSeq: "ACGT",
		Script: cigar.Cigar{{Op: cigar.Match, Len: 4}},
	}
}

func TestStartAlignmentWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartAlignmentWriter(&buf, "json", false, false, 4)
	in <- row("q1", "t1", 8)
	in <- row("q2", "t2", 6)
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}
	var got []api.AlignmentV1
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil || len(got) != 2 {
		t.Fatalf("json roundtrip: %v len=%d", err, len(got))
	}
	if got[0].QueryID != "q1" || got[1].Score != 6 {
		t.Fatalf("bad rows %+v", got)
	}
}

func TestStartAlignmentWriter_TextHeader(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartAlignmentWriter(&buf, "text", true, false, 4)
	in <- row("q1", "t1", 8)
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[0] != output.TSVHeader {
		t.Fatalf("want header plus row, got %q", buf.String())
	}
	if lines[1] != "q1\tt1\t8\t0\t4\t0\t4\t4M" {
		t.Fatalf("bad row line %q", lines[1])
	}
}

func TestStartAlignmentWriter_TextPretty(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartAlignmentWriter(&buf, "text", false, true, 4)
	in <- row("q1", "t1", 8)
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}
	if !strings.Contains(buf.String(), "# query  ACGT") {
		t.Fatalf("pretty block missing:\n%s", buf.String())
	}
}

func TestStartAlignmentWriter_Text_Golden(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartAlignmentWriter(&buf, "text", true, false, 4)
	in <- row("q1", "t1", 8)
	in <- row("q2", "t2", 6)
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}
	g := goldie.New(t)
	g.Assert(t, "text_table", buf.Bytes())
}

func TestStartAlignmentWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartAlignmentWriter(&buf, "xml", false, false, 1)
	close(in)
	if err := <-done; err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
