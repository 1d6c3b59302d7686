// core/align/engine.go

// Package align implements the Gotoh three-matrix affine-gap recurrence
// with configurable free ends, and the traceback that turns the stored
// per-cell pointers into a run-length edit script.
package align

import (
	"math"

	"agal-core/batch"
	"agal-core/scoring"
	"agal-core/sequence"
)

// Config holds alignment parameters. Immutable after New; an Engine is
// safe for concurrent use across batches.
type Config struct {
	Params scoring.Params
	Ends   FreeEnds
}

// Engine computes optimal semi-global affine-gap alignments.
type Engine struct {
	cfg Config
}

// New creates a new Engine.
func New(c Config) *Engine { return &Engine{cfg: c} }

// Params returns the scoring model in use.
func (e *Engine) Params() scoring.Params { return e.cfg.Params }

// Ends returns the free-end policy in use.
func (e *Engine) Ends() FreeEnds { return e.cfg.Ends }

const negInf = math.MinInt / 4

// AlignSlot aligns one request of a populated batch and writes its
// result buffers. Slots are independent; callers may fan AlignSlot out
// over many goroutines.
func (e *Engine) AlignSlot(b *batch.Storage, slot int) {
	b.SetResult(slot, e.align(b.Query(slot), b.Target(slot)))
}

func (e *Engine) align(q, t sequence.Packed) batch.Result {
	m, n := q.Len(), t.Len()
	p := e.cfg.Params
	ends := e.cfg.Ends

	// Leading-overhang boundary scores.
	colInit := func(i int) int { // H[i][0]: i query bases, no target
		if ends.QueryHead {
			return 0
		}
		return p.Gap(i)
	}
	rowInit := func(j int) int { // H[0][j]: j target bases, no query
		if ends.TargetHead {
			return 0
		}
		return p.Gap(j)
	}

	hPrev := make([]int, n+1) // row i-1 of H
	hCur := make([]int, n+1)
	fCol := make([]int, n+1)    // F carried down each column
	lastCol := make([]int, m+1) // H[i][n]
	tb := newPointerMatrix(m, n)

	for j := 0; j <= n; j++ {
		hPrev[j] = rowInit(j)
		fCol[j] = negInf
	}
	lastCol[0] = hPrev[n]

	for i := 1; i <= m; i++ {
		hCur[0] = colInit(i)
		eRun := negInf
		qAmb := q.Ambiguous(i - 1)
		qCode := q.Code(i - 1)
		for j := 1; j <= n; j++ {
			var ptr uint8

			// E: gap in query, consumes target.
			if open := hCur[j-1] + p.GapOpen; eRun+p.GapExtend > open {
				eRun += p.GapExtend
				ptr |= flagInsExtend
			} else {
				eRun = open
			}
			// F: gap in target, consumes query.
			if open := hPrev[j] + p.GapOpen; fCol[j]+p.GapExtend > open {
				fCol[j] += p.GapExtend
				ptr |= flagDelExtend
			} else {
				fCol[j] = open
			}

			sub := p.Mismatch
			if !qAmb && !t.Ambiguous(j-1) && qCode == t.Code(j-1) {
				sub = p.Match
			}
			// Tie order fixed for determinism: diagonal, then gap in
			// query, then gap in target.
			h := hPrev[j-1] + sub
			if eRun > h {
				h = eRun
				ptr = ptr&^srcMask | srcIns
			}
			if fCol[j] > h {
				h = fCol[j]
				ptr = ptr&^srcMask | srcDel
			}
			hCur[j] = h
			tb.set(i, j, ptr)
		}
		lastCol[i] = hCur[n]
		hPrev, hCur = hCur, hPrev
	}
	// hPrev now holds row m.

	endI, endJ, best := e.findOptimum(hPrev, lastCol, m, n)
	beginI, beginJ, script := decode(tb, q, t, endI, endJ, ends)

	return batch.Result{
		Score:       best,
		QueryBegin:  beginI,
		QueryEnd:    endI,
		TargetBegin: beginJ,
		TargetEnd:   endJ,
		Script:      script,
	}
}

// findOptimum scans the boundary region the free-end policy permits,
// in order of increasing target index then increasing query index, so
// ties resolve to the leftmost-topmost cell.
func (e *Engine) findOptimum(rowM, lastCol []int, m, n int) (bi, bj, best int) {
	best = negInf
	bi, bj = m, n
	consider := func(i, j, score int) {
		if score > best {
			best, bi, bj = score, i, j
		}
	}
	ends := e.cfg.Ends
	switch {
	case ends.QueryTail && ends.TargetTail:
		for j := 0; j < n; j++ {
			consider(m, j, rowM[j])
		}
		for i := 0; i <= m; i++ {
			consider(i, n, lastCol[i])
		}
	case ends.QueryTail:
		for i := 0; i <= m; i++ {
			consider(i, n, lastCol[i])
		}
	case ends.TargetTail:
		for j := 0; j <= n; j++ {
			consider(m, j, rowM[j])
		}
	default:
		consider(m, n, rowM[n])
	}
	return bi, bj, best
}
