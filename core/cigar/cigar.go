// core/cigar/cigar.go
package cigar

import (
	"fmt"
	"strings"
)

// Op is one primitive alignment operation. Insertion is a gap in the
// query (it consumes a target base); Deletion is a gap in the target
// (it consumes a query base).
type Op uint8

const (
	Match Op = iota
	Mismatch
	Insertion
	Deletion
)

var opLetter = [4]byte{'M', 'X', 'I', 'D'}

// Byte returns the single-letter code for o.
func (o Op) Byte() byte { return opLetter[o] }

func (o Op) String() string { return string(opLetter[o]) }

// Run is a run-length-encoded operation.
type Run struct {
	Op  Op
	Len int
}

// Cigar is an ordered edit script. Adjacent runs never share an Op.
type Cigar []Run

// Append adds n ops of kind op, merging into the trailing run when the
// kinds coincide.
func Append(c Cigar, op Op, n int) Cigar {
	if n <= 0 {
		return c
	}
	if k := len(c); k > 0 && c[k-1].Op == op {
		c[k-1].Len += n
		return c
	}
	return append(c, Run{Op: op, Len: n})
}

// Consumed reports how many query and target bases the script spans.
// Match/Mismatch consume one of each; Deletion consumes query only,
// Insertion target only.
func (c Cigar) Consumed() (query, target int) {
	for _, r := range c {
		switch r.Op {
		case Match, Mismatch:
			query += r.Len
			target += r.Len
		case Deletion:
			query += r.Len
		case Insertion:
			target += r.Len
		}
	}
	return query, target
}

// Clone returns an independent copy.
func (c Cigar) Clone() Cigar {
	if c == nil {
		return nil
	}
	return append(Cigar(nil), c...)
}

// String renders the SAM-style form, e.g. "3M1X2I".
func (c Cigar) String() string {
	var b strings.Builder
	for _, r := range c {
		fmt.Fprintf(&b, "%d%c", r.Len, r.Op.Byte())
	}
	return b.String()
}
