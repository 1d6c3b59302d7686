// core/scoring/scoring.go
package scoring

// Params holds the affine-gap scoring model (Gotoh). All four values
// are additive scores: penalties are negative numbers. A gap of length
// k scores GapOpen + (k-1)*GapExtend. Values are used exactly as
// given; nothing is clamped or sign-normalized.
type Params struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
}

// Default mirrors common short-read scoring.
var Default = Params{Match: 2, Mismatch: -3, GapOpen: -5, GapExtend: -2}

// Sub returns the substitution score for an equal/unequal base pair.
func (p Params) Sub(equal bool) int {
	if equal {
		return p.Match
	}
	return p.Mismatch
}

// Gap returns the score of a gap run of k symbols.
func (p Params) Gap(k int) int {
	if k <= 0 {
		return 0
	}
	return p.GapOpen + (k-1)*p.GapExtend
}
