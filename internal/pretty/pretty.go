// internal/pretty/pretty.go
package pretty

import (
	"fmt"
	"strings"

	"agal-core/cigar"

	"agal/internal/output"
)

// Options control the ASCII rendering.
type Options struct {
	// Wrap width for the alignment lanes. If <=0, use default (60).
	Width int

	// Glyphs
	MatchGlyph    string // default "|"
	MismatchGlyph string // default "."
	GapGlyph      string // default "-"
}

// DefaultOptions keeps the current look & feel.
var DefaultOptions = Options{
	Width:         60,
	MatchGlyph:    "|",
	MismatchGlyph: ".",
	GapGlyph:      "-",
}

const linePrefix = "# "

func (o Options) matchGlyph() byte {
	if o.MatchGlyph != "" {
		return o.MatchGlyph[0]
	}
	return DefaultOptions.MatchGlyph[0]
}

func (o Options) mismatchGlyph() byte {
	if o.MismatchGlyph != "" {
		return o.MismatchGlyph[0]
	}
	return DefaultOptions.MismatchGlyph[0]
}

func (o Options) gapGlyph() byte {
	if o.GapGlyph != "" {
		return o.GapGlyph[0]
	}
	return DefaultOptions.GapGlyph[0]
}

// RenderAlignmentWithOptions prints an ASCII block with the aligned
// query lane, a mark lane, and the aligned target lane, replayed from
// the alignment script over the sanitized sequences.
func RenderAlignmentWithOptions(a output.Alignment, opt Options) string {
	if a.QuerySeq == "" && a.TargetSeq == "" {
		var b strings.Builder
		fmt.Fprintf(&b, "%s(pretty not available: sequences missing)\n#\n", linePrefix)
		return b.String()
	}

	width := opt.Width
	if width <= 0 {
		width = DefaultOptions.Width
	}

	var qLane, marks, tLane strings.Builder
	qi, ti := a.QueryBegin, a.TargetBegin
	for _, run := range a.Script {
		for k := 0; k < run.Len; k++ {
			switch run.Op {
			case cigar.Match, cigar.Mismatch:
				if qi >= len(a.QuerySeq) || ti >= len(a.TargetSeq) {
					return overrunBlock()
				}
				qLane.WriteByte(a.QuerySeq[qi])
				tLane.WriteByte(a.TargetSeq[ti])
				if run.Op == cigar.Match {
					marks.WriteByte(opt.matchGlyph())
				} else {
					marks.WriteByte(opt.mismatchGlyph())
				}
				qi++
				ti++
			case cigar.Insertion: // gap in the query lane
				if ti >= len(a.TargetSeq) {
					return overrunBlock()
				}
				qLane.WriteByte(opt.gapGlyph())
				marks.WriteByte(' ')
				tLane.WriteByte(a.TargetSeq[ti])
				ti++
			case cigar.Deletion: // gap in the target lane
				if qi >= len(a.QuerySeq) {
					return overrunBlock()
				}
				qLane.WriteByte(a.QuerySeq[qi])
				marks.WriteByte(' ')
				tLane.WriteByte(opt.gapGlyph())
				qi++
			}
		}
	}

	q, m, t := qLane.String(), marks.String(), tLane.String()
	var b strings.Builder
	for start := 0; start < len(q); start += width {
		end := start + width
		if end > len(q) {
			end = len(q)
		}
		fmt.Fprintf(&b, "%s%s %s\n", linePrefix, "query ", q[start:end])
		fmt.Fprintf(&b, "%s%s %s\n", linePrefix, "      ", m[start:end])
		fmt.Fprintf(&b, "%s%s %s\n", linePrefix, "target", t[start:end])
	}
	if len(q) == 0 {
		fmt.Fprintf(&b, "%s(empty alignment)\n", linePrefix)
	}
	b.WriteString("#\n")
	return b.String()
}

func overrunBlock() string {
	return linePrefix + "(pretty not available: script exceeds sequences)\n#\n"
}

// RenderAlignment keeps backward compat (uses DefaultOptions).
func RenderAlignment(a output.Alignment) string {
	return RenderAlignmentWithOptions(a, DefaultOptions)
}
