// internal/output/rows.go
package output

import (
	"fmt"

	"agal-core/batch"
	"agal-core/cigar"
)

// Alignment is one finished pairwise alignment plus the identifiers of
// the sequences that produced it. QuerySeq/TargetSeq and Script are
// carried for pretty rendering only and never appear in TSV or JSON.
type Alignment struct {
	QueryID     string
	TargetID    string
	Score       int
	QueryBegin  int
	QueryEnd    int
	TargetBegin int
	TargetEnd   int
	Cigar       string

	QuerySeq  string
	TargetSeq string
	Script    cigar.Cigar
}

// FromResult pairs an engine result with its sequence identifiers.
func FromResult(queryID, targetID string, r batch.Result) Alignment {
	return Alignment{
		QueryID:     queryID,
		TargetID:    targetID,
		Score:       r.Score,
		QueryBegin:  r.QueryBegin,
		QueryEnd:    r.QueryEnd,
		TargetBegin: r.TargetBegin,
		TargetEnd:   r.TargetEnd,
		Cigar:       r.Script.String(),
		Script:      r.Script.Clone(),
	}
}

// FormatRowTSV returns the 8 base columns (no trailing newline).
func FormatRowTSV(a Alignment) string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s",
		a.QueryID, a.TargetID, a.Score,
		a.QueryBegin, a.QueryEnd,
		a.TargetBegin, a.TargetEnd,
		a.Cigar,
	)
}
