// core/sequence/pack.go
package sequence

// Bases are packed 4 per byte as 2-bit codes, least-significant pair
// first: base k of a sequence lives in byte k/4 at bit offset (k%4)*2.
// The engine reads codes with the same layout; keep packer and engine
// in lockstep.
const (
	basesPerByte = 4
	bitsPerBase  = 2
)

// 2-bit codes. There is no fifth code for N; ambiguous bases keep a
// placeholder code and set their bit in the ambiguity mask instead, so
// they can never satisfy an equality test (N never matches, not even N).
const (
	codeA = 0
	codeC = 1
	codeG = 2
	codeT = 3
)

var baseLetter = [basesPerByte]byte{'A', 'C', 'G', 'T'}

// PackedBytes returns the code-buffer length for n bases: ceil(n/4)
// bytes, rounded up to an 8-byte boundary.
func PackedBytes(n int) int {
	return ((n+basesPerByte-1)/basesPerByte + 7) / 8 * 8
}

// Packed is a sanitized, densely encoded nucleotide sequence.
type Packed struct {
	n     int
	codes []byte   // len == PackedBytes(n)
	ambig []uint64 // one bit per base, padding included; set for N
}

// Sanitize upper-cases raw and degrades anything outside {A,C,G,T,N}
// to 'N'. It never fails; noisy input stays alignable.
func Sanitize(raw string) []byte {
	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		switch c {
		case 'A', 'C', 'G', 'T', 'N':
			out[i] = c
		default:
			out[i] = 'N'
		}
	}
	return out
}

// Pack sanitizes raw and encodes it. Empty input yields a zero-length
// code buffer.
func Pack(raw string) Packed {
	san := Sanitize(raw)
	n := len(san)
	p := Packed{
		n:     n,
		codes: make([]byte, PackedBytes(n)),
		ambig: make([]uint64, ambigWords(PackedBytes(n))),
	}
	for i, c := range san {
		var code byte
		switch c {
		case 'A':
			code = codeA
		case 'C':
			code = codeC
		case 'G':
			code = codeG
		case 'T':
			code = codeT
		default: // 'N'
			p.setAmbig(i)
		}
		p.codes[i/basesPerByte] |= code << uint((i%basesPerByte)*bitsPerBase)
	}
	// Padding bases beyond n must never score as a match.
	for i := n; i < len(p.codes)*basesPerByte; i++ {
		p.setAmbig(i)
	}
	return p
}

// View wraps pre-packed storage without copying. The caller keeps
// ownership of codes and ambig and must not mutate them while the view
// is alive.
func View(n int, codes []byte, ambig []uint64) Packed {
	return Packed{n: n, codes: codes, ambig: ambig}
}

func ambigWords(packedBytes int) int {
	return (packedBytes*basesPerByte + 63) / 64
}

func (p *Packed) setAmbig(i int) { p.ambig[i/64] |= 1 << uint(i%64) }

// Len reports the logical number of bases.
func (p Packed) Len() int { return p.n }

// Bytes exposes the padded code buffer (shared, read-only).
func (p Packed) Bytes() []byte { return p.codes }

// Mask exposes the ambiguity bitmask (shared, read-only).
func (p Packed) Mask() []uint64 { return p.ambig }

// Code returns the 2-bit code of base i. Meaningless when Ambiguous(i).
func (p Packed) Code(i int) byte {
	return p.codes[i/basesPerByte] >> uint((i%basesPerByte)*bitsPerBase) & 0x3
}

// Ambiguous reports whether base i is an N (or padding).
func (p Packed) Ambiguous(i int) bool {
	return p.ambig[i/64]&(1<<uint(i%64)) != 0
}

// Base decodes base i back to its letter.
func (p Packed) Base(i int) byte {
	if p.Ambiguous(i) {
		return 'N'
	}
	return baseLetter[p.Code(i)]
}

// String is the logical unpack: the sanitized sequence, exactly.
func (p Packed) String() string {
	out := make([]byte, p.n)
	for i := 0; i < p.n; i++ {
		out[i] = p.Base(i)
	}
	return string(out)
}
