// core/exec/executor_test.go
package exec

import (
	"errors"
	"testing"
	"time"

	"agal-core/align"
	"agal-core/batch"
	"agal-core/scoring"
	"agal-core/sequence"
)

// Compile-time check: the concrete engine satisfies the contract.
var _ SlotAligner = (*align.Engine)(nil)

// gateAligner blocks every slot until released; lets tests observe the
// Pending state deterministically.
type gateAligner struct {
	gate chan struct{}
}

func (g *gateAligner) AlignSlot(b *batch.Storage, slot int) {
	<-g.gate
	b.SetResult(slot, batch.Result{Score: 7})
}

type panicAligner struct{}

func (panicAligner) AlignSlot(b *batch.Storage, slot int) { panic("device lost") }

func fillBatch(t *testing.T, n int) *batch.Storage {
	t.Helper()
	b := batch.New(n, 16, 16)
	for i := 0; i < n; i++ {
		if _, err := b.Add(sequence.Pack("ACGT"), sequence.Pack("ACGT")); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	return b
}

func TestPollTransitionsOnce(t *testing.T) {
	g := &gateAligner{gate: make(chan struct{})}
	x := New(g, Options{Workers: 2})
	b := fillBatch(t, 3)

	h, err := x.Submit(b)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if h.ID == "" {
		t.Fatal("handle has no id")
	}
	if st := h.Poll(); st != Pending {
		t.Fatalf("state before release = %v", st)
	}
	if _, err := h.Result(0); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Result before Done: %v", err)
	}
	if _, err := h.Results(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Results before Done: %v", err)
	}

	close(g.gate)
	if err := h.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	// Polling after Done is idempotent.
	for k := 0; k < 3; k++ {
		if st := h.Poll(); st != Done {
			t.Fatalf("poll %d after Done = %v", k, st)
		}
	}
	rs, err := h.Results()
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(rs) != 3 || rs[0].Score != 7 || rs[2].Score != 7 {
		t.Fatalf("unexpected results: %+v", rs)
	}
}

func TestMutationGuardWhilePending(t *testing.T) {
	g := &gateAligner{gate: make(chan struct{})}
	x := New(g, Options{Workers: 1})
	b := fillBatch(t, 1)

	h, err := x.Submit(b)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := b.Add(sequence.Pack("A"), sequence.Pack("A")); !errors.Is(err, batch.ErrInFlight) {
		t.Fatalf("Add while pending: %v", err)
	}
	if err := b.Reset(); !errors.Is(err, batch.ErrInFlight) {
		t.Fatalf("Reset while pending: %v", err)
	}
	if _, err := x.Submit(b); !errors.Is(err, batch.ErrInFlight) {
		t.Fatalf("double submit: %v", err)
	}
	close(g.gate)
	if err := h.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	// Ownership returns at Done; the batch is reusable.
	if err := b.Reset(); err != nil {
		t.Fatalf("Reset after Done: %v", err)
	}
}

func TestBackendFailureInvalidatesBatch(t *testing.T) {
	x := New(panicAligner{}, Options{Workers: 2})
	b := fillBatch(t, 2)
	h, err := x.Submit(b)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := h.Wait(); !errors.Is(err, ErrBackendFailure) {
		t.Fatalf("want ErrBackendFailure, got %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := h.Result(i); !errors.Is(err, ErrBackendFailure) {
			t.Fatalf("slot %d should report the failure, got %v", i, err)
		}
	}
}

func TestRealEngineEndToEnd(t *testing.T) {
	eng := align.New(align.Config{
		Params: scoring.Params{Match: 2, Mismatch: -1, GapOpen: -2, GapExtend: -1},
		Ends:   align.SemiGlobalQuery(),
	})
	x := New(eng, Options{Workers: 4})
	b := batch.New(8, 32, 32)
	for i := 0; i < 8; i++ {
		if _, err := b.Add(sequence.Pack("ACGTACGT"), sequence.Pack("ACGTACGT")); err != nil {
			t.Fatal(err)
		}
	}
	h, err := x.Submit(b)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := h.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	rs, err := h.Results()
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range rs {
		if r.Score != 16 || r.Script.String() != "8M" {
			t.Errorf("slot %d: %+v", i, r)
		}
	}
}

func TestMultipleBatchesInFlight(t *testing.T) {
	g := &gateAligner{gate: make(chan struct{})}
	x := New(g, Options{Workers: 1, MaxInFlight: 2})

	var handles []*Handle
	for k := 0; k < 3; k++ {
		h, err := x.Submit(fillBatch(t, 1))
		if err != nil {
			t.Fatalf("submit %d: %v", k, err)
		}
		handles = append(handles, h)
	}
	// All pending while gated; the third queues behind MaxInFlight.
	time.Sleep(10 * time.Millisecond)
	for k, h := range handles {
		if st := h.Poll(); st != Pending {
			t.Fatalf("handle %d state = %v", k, st)
		}
	}
	close(g.gate)
	for k, h := range handles {
		if err := h.Wait(); err != nil {
			t.Fatalf("wait %d: %v", k, err)
		}
	}
}

func TestEmptyBatchCompletes(t *testing.T) {
	x := New(panicAligner{}, Options{})
	b := batch.New(2, 8, 8)
	h, err := x.Submit(b)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := h.Wait(); err != nil {
		t.Fatalf("empty batch should succeed: %v", err)
	}
	rs, err := h.Results()
	if err != nil || len(rs) != 0 {
		t.Fatalf("results: %v %v", rs, err)
	}
}
