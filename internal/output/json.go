// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"agal/pkg/api"
)

// ToAPIAlignment converts a domain Alignment to the stable wire schema (v1).
func ToAPIAlignment(a Alignment) api.AlignmentV1 {
	return api.AlignmentV1{
		QueryID:     a.QueryID,
		TargetID:    a.TargetID,
		Score:       a.Score,
		QueryBegin:  a.QueryBegin,
		QueryEnd:    a.QueryEnd,
		TargetBegin: a.TargetBegin,
		TargetEnd:   a.TargetEnd,
		Cigar:       a.Cigar,
	}
}

func toAPIAlignments(list []Alignment) []api.AlignmentV1 {
	out := make([]api.AlignmentV1, 0, len(list))
	for _, a := range list {
		out = append(out, ToAPIAlignment(a))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 alignments (pretty-indented).
func WriteJSON(w io.Writer, list []Alignment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toAPIAlignments(list))
}
