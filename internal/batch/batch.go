// Package batch coalesces many small submissions into batches before
// handing them to a target queue: instead of batching arbitrary jobs for an
// external processor, it batches Operations for a target queue, running a
// whole batch as a single submission.
package batch

import (
	"sync"
	"time"

	"github.com/joeycumines/xdispatch2/internal/naive"
)

// DefaultMaxSize and DefaultFlushInterval are the batch size and flush
// latency used when New is given a zero value for either knob.
const (
	DefaultMaxSize       = 16
	DefaultFlushInterval = 50 * time.Millisecond
)

// Queue coalesces Async submissions into batches, flushing a batch to the
// target queue as a single operation once it reaches MaxSize operations or
// FlushInterval has elapsed since the first operation in the batch arrived,
// whichever comes first.
type Queue struct {
	target        naive.Asyncer
	maxSize       int
	flushInterval time.Duration

	mu      sync.Mutex
	pending []naive.Operation
	timer   *time.Timer
	closed  bool
}

// New constructs a batching queue over target. A negative maxSize disables
// the size-based flush trigger and a negative flushInterval disables the
// time-based one; a zero value selects DefaultMaxSize or
// DefaultFlushInterval respectively. New panics unless at least one of the
// two is positive.
func New(target naive.Asyncer, maxSize int, flushInterval time.Duration) *Queue {
	if maxSize <= 0 && flushInterval <= 0 {
		panic("batch: one of maxSize or flushInterval must be positive")
	}
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}
	if flushInterval == 0 {
		flushInterval = DefaultFlushInterval
	}
	return &Queue{target: target, maxSize: maxSize, flushInterval: flushInterval}
}

// Async appends op to the current batch, triggering an immediate flush if
// this fills the batch to MaxSize, or arming the flush timer if this is the
// first operation of a new batch.
func (q *Queue) Async(op naive.Operation) {
	if op == nil {
		panic(naive.ErrNilOperation)
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		op() // closed queues fall back to running synchronously, like a plain Async would
		return
	}
	q.pending = append(q.pending, op)
	switch {
	case q.maxSize > 0 && len(q.pending) >= q.maxSize:
		q.flushLocked()
	case q.flushInterval > 0 && len(q.pending) == 1:
		q.timer = time.AfterFunc(q.flushInterval, q.flush)
	}
	q.mu.Unlock()
}

// flush is the timer-triggered path.
func (q *Queue) flush() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.flushLocked()
}

// flushLocked moves the pending batch out and submits it to the target as a
// single operation. Caller must hold q.mu.
func (q *Queue) flushLocked() {
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	if len(q.pending) == 0 {
		return
	}
	batch := q.pending
	q.pending = nil
	q.target.Async(func() {
		for _, op := range batch {
			op()
		}
	})
}

// Flush forces any partial batch to be submitted immediately.
func (q *Queue) Flush() {
	q.mu.Lock()
	q.flushLocked()
	q.mu.Unlock()
}

// Close flushes any remaining partial batch and causes every subsequent
// Async call to run its operation synchronously instead of batching it,
// since there is no longer a timer loop left to flush it later.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.flushLocked()
	q.mu.Unlock()
}
