// core/aligner/aligner_test.go
package aligner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agal-core/batch"
)

func TestAlignSinglePair(t *testing.T) {
	a := New(2, -1, -2, -1)
	r, err := a.Align("acgt", "ACGT")
	require.NoError(t, err)
	assert.Equal(t, 8, r.Score)
	assert.Equal(t, 0, r.QueryBegin)
	assert.Equal(t, 4, r.QueryEnd)
	assert.Equal(t, "4M", r.Script.String())
}

func TestLengthGuard(t *testing.T) {
	a := New(2, -1, -2, -1, WithMaxLens(4, 8))
	_, err := a.Align("ACGTA", "ACGT")
	require.ErrorIs(t, err, batch.ErrLengthExceeded)
	_, err = a.Align("ACGT", "ACGTACGTA")
	require.ErrorIs(t, err, batch.ErrLengthExceeded)
	_, err = a.Align("ACGT", "ACGTACGT")
	require.NoError(t, err)
}

// Batched results must equal the single-pair path, order preserved,
// including when the input spans several internal mini-batches.
func TestAlignBatchMatchesSingles(t *testing.T) {
	pairs := []struct{ q, tgt string }{
		{"ACGT", "ACGT"},
		{"ACGA", "ACGT"},
		{"ACGT", "ACAGT"},
		{"ACAGT", "ACGT"},
		{"ACGTACGT", "ACGT"},
		{"GATTACA", "GATTACA"},
		{"TTGACCA", "GATTACA"},
		{"AACCGGTT", "AANCGGTT"},
		{"GGGGCCCC", "GGGGACCCC"},
		{"A", "T"},
	}
	// Capacity 3 forces four generations over ten pairs.
	a := New(2, -1, -2, -1, WithBatchCapacity(3), WithWorkers(2))

	queries := make([]string, len(pairs))
	targets := make([]string, len(pairs))
	for i, p := range pairs {
		queries[i] = p.q
		targets[i] = p.tgt
	}

	batched, err := a.AlignBatch(queries, targets)
	require.NoError(t, err)
	require.Len(t, batched, len(pairs))

	for i, p := range pairs {
		single, err := a.Align(p.q, p.tgt)
		require.NoError(t, err, "pair %d", i)
		assert.Equal(t, single, batched[i], "pair %d (%s/%s)", i, p.q, p.tgt)
	}
}

func TestAlignBatchLengthMismatch(t *testing.T) {
	a := New(2, -1, -2, -1)
	_, err := a.AlignBatch([]string{"A"}, []string{"A", "C"})
	require.Error(t, err)
}

func TestAlignBatchEmpty(t *testing.T) {
	a := New(2, -1, -2, -1)
	rs, err := a.AlignBatch(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rs)
}
