// core/batch/batch.go

// Package batch owns the packed-sequence arenas and result buffers for
// a group of alignment requests submitted together. A Storage is
// populated slot by slot, handed to the executor, drained, then Reset
// and reused; all buffers are allocated once at construction.
package batch

import (
	"errors"
	"fmt"
	"sync/atomic"

	"agal-core/cigar"
	"agal-core/sequence"
)

var (
	// ErrCapacityExceeded: every slot is taken; submit or Reset first.
	ErrCapacityExceeded = errors.New("batch capacity exceeded")
	// ErrLengthExceeded: a sequence is longer than the configured maximum.
	ErrLengthExceeded = errors.New("sequence length exceeds configured maximum")
	// ErrInFlight: the batch is owned by a pending execution handle.
	ErrInFlight = errors.New("batch is in flight")
)

// Result is the per-slot outcome of one alignment. Begin/End pairs are
// half-open coordinates on the original sequences.
type Result struct {
	Score       int
	QueryBegin  int
	QueryEnd    int
	TargetBegin int
	TargetEnd   int
	Script      cigar.Cigar
}

// Storage holds up to capacity requests. Slot i's packed bytes live at
// byte offset i*stride of the shared arena for each side; offsets are a
// pure function of insertion order and slot regions never alias.
type Storage struct {
	capacity     int
	maxQueryLen  int
	maxTargetLen int

	queryStride  int // padded bytes per query slot
	targetStride int

	queryArena  []byte
	targetArena []byte
	queryLen    []int
	targetLen   []int
	queryMask   [][]uint64
	targetMask  [][]uint64

	n        int
	inFlight atomic.Bool

	results []Result
}

// New allocates storage for capacity requests with the given per-side
// length limits.
func New(capacity, maxQueryLen, maxTargetLen int) *Storage {
	if capacity < 1 {
		capacity = 1
	}
	s := &Storage{
		capacity:     capacity,
		maxQueryLen:  maxQueryLen,
		maxTargetLen: maxTargetLen,
		queryStride:  sequence.PackedBytes(maxQueryLen),
		targetStride: sequence.PackedBytes(maxTargetLen),
		queryLen:     make([]int, capacity),
		targetLen:    make([]int, capacity),
		queryMask:    make([][]uint64, capacity),
		targetMask:   make([][]uint64, capacity),
		results:      make([]Result, capacity),
	}
	s.queryArena = make([]byte, capacity*s.queryStride)
	s.targetArena = make([]byte, capacity*s.targetStride)
	return s
}

func (s *Storage) Capacity() int     { return s.capacity }
func (s *Storage) Len() int          { return s.n }
func (s *Storage) MaxQueryLen() int  { return s.maxQueryLen }
func (s *Storage) MaxTargetLen() int { return s.maxTargetLen }

// QueryOffset returns slot i's byte offset into the query arena.
func (s *Storage) QueryOffset(i int) int { return i * s.queryStride }

// TargetOffset returns slot i's byte offset into the target arena.
func (s *Storage) TargetOffset(i int) int { return i * s.targetStride }

// Add appends one request, copying both packed sequences into the
// arenas at the next free offsets. On any error no slot state changes.
func (s *Storage) Add(query, target sequence.Packed) (int, error) {
	if s.inFlight.Load() {
		return 0, ErrInFlight
	}
	if s.n == s.capacity {
		return 0, fmt.Errorf("%w (capacity %d)", ErrCapacityExceeded, s.capacity)
	}
	if query.Len() > s.maxQueryLen {
		return 0, fmt.Errorf("%w: query %d > %d", ErrLengthExceeded, query.Len(), s.maxQueryLen)
	}
	if target.Len() > s.maxTargetLen {
		return 0, fmt.Errorf("%w: target %d > %d", ErrLengthExceeded, target.Len(), s.maxTargetLen)
	}

	slot := s.n
	qr := s.queryArena[s.QueryOffset(slot) : s.QueryOffset(slot)+s.queryStride]
	tr := s.targetArena[s.TargetOffset(slot) : s.TargetOffset(slot)+s.targetStride]
	clearBytes(qr)
	clearBytes(tr)
	copy(qr, query.Bytes())
	copy(tr, target.Bytes())
	s.queryLen[slot] = query.Len()
	s.targetLen[slot] = target.Len()
	s.queryMask[slot] = append(s.queryMask[slot][:0], query.Mask()...)
	s.targetMask[slot] = append(s.targetMask[slot][:0], target.Mask()...)
	s.results[slot] = Result{}
	s.n++
	return slot, nil
}

// Reset clears the slot count so the storage can be refilled. Buffers
// stay allocated. Not legal while in flight.
func (s *Storage) Reset() error {
	if s.inFlight.Load() {
		return ErrInFlight
	}
	s.n = 0
	return nil
}

// Query returns a read-only packed view of slot i's query.
func (s *Storage) Query(i int) sequence.Packed {
	off := s.QueryOffset(i)
	return sequence.View(s.queryLen[i], s.queryArena[off:off+s.queryStride], s.queryMask[i])
}

// Target returns a read-only packed view of slot i's target.
func (s *Storage) Target(i int) sequence.Packed {
	off := s.TargetOffset(i)
	return sequence.View(s.targetLen[i], s.targetArena[off:off+s.targetStride], s.targetMask[i])
}

// SetResult stores slot i's outcome. Called by the engine while the
// batch is in flight.
func (s *Storage) SetResult(i int, r Result) { s.results[i] = r }

// Result returns slot i's outcome. Valid once the owning handle is
// Done; the executor enforces that.
func (s *Storage) Result(i int) Result { return s.results[i] }

// Acquire marks the batch in flight; it fails if already pending.
func (s *Storage) Acquire() error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	return nil
}

// Release returns ownership to the caller.
func (s *Storage) Release() { s.inFlight.Store(false) }

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
