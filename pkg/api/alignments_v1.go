// pkg/api/alignments_v1.go
package api

// AlignmentV1 is the stable JSON schema for pairwise alignment rows.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type AlignmentV1 struct {
	QueryID     string `json:"query_id"`
	TargetID    string `json:"target_id"`
	Score       int    `json:"score"`
	QueryBegin  int    `json:"query_begin"`
	QueryEnd    int    `json:"query_end"`
	TargetBegin int    `json:"target_begin"`
	TargetEnd   int    `json:"target_end"`
	Cigar       string `json:"cigar"`
}
