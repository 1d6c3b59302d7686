// core/aligner/aligner.go

// Package aligner is the convenience surface over sequence/batch/exec:
// construct once with a scoring model, then Align single pairs or
// AlignBatch many, with batching and the async protocol handled
// internally.
package aligner

import (
	"fmt"

	"agal-core/align"
	"agal-core/batch"
	"agal-core/exec"
	"agal-core/scoring"
	"agal-core/sequence"
)

const (
	DefaultMaxQueryLen   = 2048
	DefaultMaxTargetLen  = 8192
	DefaultBatchCapacity = 64
)

// Option adjusts construction defaults.
type Option func(*Aligner)

// WithMaxLens sets the per-side length limits.
func WithMaxLens(maxQuery, maxTarget int) Option {
	return func(a *Aligner) { a.maxQuery, a.maxTarget = maxQuery, maxTarget }
}

// WithBatchCapacity sets the internal mini-batch size used by AlignBatch.
func WithBatchCapacity(n int) Option {
	return func(a *Aligner) { a.capacity = n }
}

// WithFreeEnds overrides the default query-free semi-global policy.
func WithFreeEnds(ends align.FreeEnds) Option {
	return func(a *Aligner) { a.ends = ends }
}

// WithWorkers bounds the goroutines used per batch.
func WithWorkers(n int) Option {
	return func(a *Aligner) { a.workers = n }
}

// Aligner owns one reusable batch and one executor. It is not safe for
// concurrent use; callers wanting pipelining drive batch/exec directly.
type Aligner struct {
	maxQuery, maxTarget int
	capacity            int
	workers             int
	ends                align.FreeEnds

	ex *exec.Executor
	b  *batch.Storage
}

// New builds an Aligner for the given scoring model. All buffers are
// allocated here; nothing global is touched.
func New(match, mismatch, gapOpen, gapExtend int, opts ...Option) *Aligner {
	a := &Aligner{
		maxQuery:  DefaultMaxQueryLen,
		maxTarget: DefaultMaxTargetLen,
		capacity:  DefaultBatchCapacity,
		ends:      align.SemiGlobalQuery(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.capacity < 1 {
		a.capacity = 1
	}
	eng := align.New(align.Config{
		Params: scoring.Params{Match: match, Mismatch: mismatch, GapOpen: gapOpen, GapExtend: gapExtend},
		Ends:   a.ends,
	})
	a.ex = exec.New(eng, exec.Options{Workers: a.workers})
	a.b = batch.New(a.capacity, a.maxQuery, a.maxTarget)
	return a
}

// MaxQueryLen reports the configured query length limit.
func (a *Aligner) MaxQueryLen() int { return a.maxQuery }

// MaxTargetLen reports the configured target length limit.
func (a *Aligner) MaxTargetLen() int { return a.maxTarget }

// Align aligns one pair end to end: sanitize, pack, submit a
// single-slot batch, wait, extract. Length limits are checked before
// any packing or submission happens.
func (a *Aligner) Align(query, target string) (batch.Result, error) {
	if len(query) > a.maxQuery {
		return batch.Result{}, fmt.Errorf("%w: query %d > %d", batch.ErrLengthExceeded, len(query), a.maxQuery)
	}
	if len(target) > a.maxTarget {
		return batch.Result{}, fmt.Errorf("%w: target %d > %d", batch.ErrLengthExceeded, len(target), a.maxTarget)
	}
	rs, err := a.AlignBatch([]string{query}, []string{target})
	if err != nil {
		return batch.Result{}, err
	}
	return rs[0], nil
}

// AlignBatch aligns queries[i] against targets[i] for every i,
// preserving order. Pairs are processed in mini-batches of the
// configured capacity, reusing one batch across generations.
func (a *Aligner) AlignBatch(queries, targets []string) ([]batch.Result, error) {
	if len(queries) != len(targets) {
		return nil, fmt.Errorf("aligner: %d queries vs %d targets", len(queries), len(targets))
	}
	out := make([]batch.Result, 0, len(queries))
	for start := 0; start < len(queries); start += a.capacity {
		end := start + a.capacity
		if end > len(queries) {
			end = len(queries)
		}
		if err := a.b.Reset(); err != nil {
			return nil, err
		}
		for k := start; k < end; k++ {
			if _, err := a.b.Add(sequence.Pack(queries[k]), sequence.Pack(targets[k])); err != nil {
				return nil, fmt.Errorf("pair %d: %w", k, err)
			}
		}
		h, err := a.ex.Submit(a.b)
		if err != nil {
			return nil, err
		}
		if err := h.Wait(); err != nil {
			return nil, err
		}
		rs, err := h.Results()
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}
