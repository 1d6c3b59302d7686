// core/align/traceback.go
package align

import (
	"agal-core/cigar"
	"agal-core/sequence"
)

// Per-cell pointer: two bits name where H came from, two flag bits say
// whether the E/F value at this cell extends an existing gap run rather
// than opening one. Together they cover the five tagged moves
// (diagonal, gap-in-query open/extend, gap-in-target open/extend) and
// never leave this package.
const (
	srcMask uint8 = 0b11
	srcDiag uint8 = 0
	srcIns  uint8 = 1 // H took E: gap in query
	srcDel  uint8 = 2 // H took F: gap in target

	flagInsExtend uint8 = 1 << 2
	flagDelExtend uint8 = 1 << 3
)

// pointerMatrix stores one pointer byte per interior DP cell.
type pointerMatrix struct {
	n     int
	cells []uint8
}

func newPointerMatrix(m, n int) pointerMatrix {
	return pointerMatrix{n: n, cells: make([]uint8, m*n)}
}

func (t pointerMatrix) set(i, j int, ptr uint8) { t.cells[(i-1)*t.n+(j-1)] = ptr }
func (t pointerMatrix) at(i, j int) uint8       { return t.cells[(i-1)*t.n+(j-1)] }

const (
	stH = iota
	stE
	stF
)

// decode walks pointers from the optimum cell back to a boundary cell
// where the free-end policy lets the alignment start for free, emitting
// one primitive op per step. Ops are collected in reverse and merged
// into runs as they arrive, so a final reversal of the run slice yields
// the edit script. The cell the walk stops at is the begin coordinate
// pair.
func decode(tb pointerMatrix, q, t sequence.Packed, endI, endJ int, ends FreeEnds) (beginI, beginJ int, script cigar.Cigar) {
	i, j := endI, endJ
	st := stH
	var rev cigar.Cigar

walk:
	for {
		switch st {
		case stH:
			if j == 0 {
				if !ends.QueryHead && i > 0 {
					rev = cigar.Append(rev, cigar.Deletion, i)
					i = 0
				}
				break walk
			}
			if i == 0 {
				if !ends.TargetHead {
					rev = cigar.Append(rev, cigar.Insertion, j)
					j = 0
				}
				break walk
			}
			switch tb.at(i, j) & srcMask {
			case srcDiag:
				op := cigar.Mismatch
				if !q.Ambiguous(i-1) && !t.Ambiguous(j-1) && q.Code(i-1) == t.Code(j-1) {
					op = cigar.Match
				}
				rev = cigar.Append(rev, op, 1)
				i--
				j--
			case srcIns:
				st = stE
			default:
				st = stF
			}
		case stE:
			ptr := tb.at(i, j)
			rev = cigar.Append(rev, cigar.Insertion, 1)
			j--
			if ptr&flagInsExtend == 0 {
				st = stH
			}
		case stF:
			ptr := tb.at(i, j)
			rev = cigar.Append(rev, cigar.Deletion, 1)
			i--
			if ptr&flagDelExtend == 0 {
				st = stH
			}
		}
	}

	// Reverse the run order; runs were merged while reversed, so equal
	// neighbors cannot reappear.
	for a, b := 0, len(rev)-1; a < b; a, b = a+1, b-1 {
		rev[a], rev[b] = rev[b], rev[a]
	}
	return i, j, rev
}
