package xdispatch2

import (
	"runtime"
	"time"

	"github.com/joeycumines/xdispatch2/internal/naive"
)

// Queue is a user-facing handle onto a serial queue, a parallel queue, or
// the main queue. Handles are freely copyable; two handles are considered
// the same queue by the identity of their underlying implementation, not by
// value equality of the Queue struct itself.
type Queue struct {
	label   string
	asyncer naive.Asyncer
	owner   any
	pool    *naive.ThreadPool
}

// NewSerialQueue creates a new serial operation queue on the default pool,
// labelled label. The underlying implementation is registered with the
// process-wide queue manager and released only once every pending operation
// has drained and this handle (and any copy of it) has been garbage
// collected - Go's GC takes the place of manual reference counting here.
func NewSerialQueue(label string, priority Priority) *Queue {
	impl := naive.NewSerialQueue(label, priority, naive.DefaultPool)
	naive.Manager.Attach(impl)
	q := &Queue{label: label, asyncer: impl, owner: impl, pool: naive.DefaultPool}
	runtime.SetFinalizer(q, func(q *Queue) {
		naive.Manager.Detach(impl)
	})
	return q
}

// NewParallelQueue creates a new parallel queue on the default pool,
// labelled label. Parallel queues give no cross-operation ordering.
func NewParallelQueue(label string, priority Priority) *Queue {
	impl := naive.NewParallelQueue(label, priority, naive.DefaultPool)
	return &Queue{label: label, asyncer: impl, owner: impl, pool: naive.DefaultPool}
}

// MainQueue returns the distinguished serial queue whose backing thread is
// driven by the application calling Exec.
func MainQueue() *Queue {
	return &Queue{
		label:   naive.MainThread.Label(),
		asyncer: naive.MainThread,
		owner:   naive.MainThread,
		pool:    naive.DefaultPool,
	}
}

// GlobalQueue returns the shared parallel queue for priority p.
func GlobalQueue(p Priority) *Queue {
	impl := naive.GlobalQueue(p)
	return &Queue{label: impl.Label(), asyncer: impl, owner: impl, pool: naive.DefaultPool}
}

// Exec runs the main queue's manual thread on the calling goroutine until
// the process shuts it down. A typical program calls this once, from its own
// entry point, in place of (or alongside) a hand-rolled event loop.
func Exec() {
	naive.MainThread.Exec()
}

// Label returns the queue's label.
func (q *Queue) Label() string { return q.label }

// Async submits op for execution on this queue.
func (q *Queue) Async(op func()) {
	q.asyncer.Async(op)
}

// Apply submits n indexed operations and blocks the caller until every
// iteration has completed. Calling Apply from inside an operation already
// running on the same serial queue deadlocks; this is documented, not
// detected.
func (q *Queue) Apply(n int, f func(index int)) {
	naive.Apply(q.asyncer, n, f)
}

// After submits op for execution on this queue once delay has elapsed.
func (q *Queue) After(delay time.Duration, op func()) {
	naive.After(q.pool, delay, q.asyncer, op)
}

// IsCurrentQueue reports whether the calling goroutine is presently
// executing an operation dispatched through this queue.
func (q *Queue) IsCurrentQueue() bool {
	return naive.IsRunWithOwner(q.owner)
}
