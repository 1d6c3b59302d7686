// core/align/policy.go
package align

// FreeEnds declares, per sequence and per end, whether an unaligned
// overhang is penalty-free. A free head zeroes that sequence's leading
// DP boundary; a free tail adds the corresponding final row/column to
// the region searched for the optimum. With no free tails only the
// corner cell qualifies (fully global).
type FreeEnds struct {
	QueryHead  bool
	QueryTail  bool
	TargetHead bool
	TargetTail bool
}

// SemiGlobalQuery is the read-to-reference default: query overhangs are
// free on both ends, the target is consumed in full.
func SemiGlobalQuery() FreeEnds { return FreeEnds{QueryHead: true, QueryTail: true} }

// Global penalizes every overhang.
func Global() FreeEnds { return FreeEnds{} }

// Overlap suits dovetail joins: query head and target tail are free.
func Overlap() FreeEnds { return FreeEnds{QueryHead: true, TargetTail: true} }

// BothFree frees every end of both sequences.
func BothFree() FreeEnds {
	return FreeEnds{QueryHead: true, QueryTail: true, TargetHead: true, TargetTail: true}
}
