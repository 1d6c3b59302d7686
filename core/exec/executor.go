// core/exec/executor.go

// Package exec runs populated batches asynchronously. Submission is
// non-blocking; completion is observed by polling a handle or blocking
// on Wait. Results for every slot of a batch become visible together,
// exactly when the handle flips Pending -> Done.
package exec

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"agal-core/batch"
)

var (
	// ErrNotReady: results were requested before the handle reached Done.
	ErrNotReady = errors.New("batch results not ready")
	// ErrBackendFailure: the computation faulted; no result of the batch
	// may be trusted. Resubmit or abandon; the executor never retries.
	ErrBackendFailure = errors.New("alignment backend failure")
)

// SlotAligner is the only contract the executor schedules. Implemented
// by align.Engine.
type SlotAligner interface {
	AlignSlot(b *batch.Storage, slot int)
}

// State of a submitted batch.
type State int

const (
	Pending State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "done"
	}
	return "pending"
}

// Options tunes the executor. Workers bounds goroutines per batch
// (default: NumCPU). MaxInFlight bounds concurrently computing batches
// (default 4); submissions beyond it queue without blocking Submit.
type Options struct {
	Workers     int
	MaxInFlight int
}

// Executor owns a worker budget and fans slot computations out over it.
type Executor struct {
	aln     SlotAligner
	workers int
	slots   chan struct{}
}

// New creates an Executor driving the given aligner.
func New(aln SlotAligner, o Options) *Executor {
	if o.Workers < 1 {
		o.Workers = runtime.NumCPU()
	}
	if o.MaxInFlight < 1 {
		o.MaxInFlight = 4
	}
	return &Executor{
		aln:     aln,
		workers: o.Workers,
		slots:   make(chan struct{}, o.MaxInFlight),
	}
}

// Handle is the opaque token for one submitted batch. It transitions
// Pending -> Done exactly once; polling after Done keeps returning the
// same results.
type Handle struct {
	ID string

	b    *batch.Storage
	done chan struct{}
	err  error
}

// Submit transfers ownership of b to the executor and returns
// immediately. The batch must not be mutated until the handle is Done.
func (x *Executor) Submit(b *batch.Storage) (*Handle, error) {
	if err := b.Acquire(); err != nil {
		return nil, err
	}
	h := &Handle{ID: uuid.NewString(), b: b, done: make(chan struct{})}
	go x.run(h)
	return h, nil
}

func (x *Executor) run(h *Handle) {
	x.slots <- struct{}{}
	defer func() { <-x.slots }()

	n := h.b.Len()
	workers := x.workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		failure error
	)
	work := make(chan int)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for slot := range work {
				if err := x.alignSlot(h, slot); err != nil {
					mu.Lock()
					if failure == nil {
						failure = err
					}
					mu.Unlock()
				}
			}
		}()
	}
	for slot := 0; slot < n; slot++ {
		work <- slot
	}
	close(work)
	wg.Wait()

	h.err = failure
	h.b.Release()
	close(h.done) // publishes every result write above
}

func (x *Executor) alignSlot(h *Handle, slot int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: batch %s slot %d: %v", ErrBackendFailure, h.ID, slot, r)
		}
	}()
	x.aln.AlignSlot(h.b, slot)
	return nil
}

// Poll reports the handle state without blocking or side effects.
func (h *Handle) Poll() State {
	select {
	case <-h.done:
		return Done
	default:
		return Pending
	}
}

// Wait blocks until Done and returns the batch-level error, if any.
// It parks on a channel; it never spins.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Result extracts one slot's result. ErrNotReady before Done;
// after a backend failure every slot reports the failure.
func (h *Handle) Result(slot int) (batch.Result, error) {
	select {
	case <-h.done:
	default:
		return batch.Result{}, fmt.Errorf("%w: batch %s", ErrNotReady, h.ID)
	}
	if h.err != nil {
		return batch.Result{}, h.err
	}
	return h.b.Result(slot), nil
}

// Results extracts every slot in submission order.
func (h *Handle) Results() ([]batch.Result, error) {
	select {
	case <-h.done:
	default:
		return nil, fmt.Errorf("%w: batch %s", ErrNotReady, h.ID)
	}
	if h.err != nil {
		return nil, h.err
	}
	out := make([]batch.Result, h.b.Len())
	for i := range out {
		out[i] = h.b.Result(i)
	}
	return out, nil
}
