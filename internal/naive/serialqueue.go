package naive

import "sync"

// SerialQueue is a strictly single-consumer FIFO: only one drain runs at a
// time, even though the pool that runs it is concurrent. A
// drain is scheduled onto the pool the first time the queue transitions from
// empty to non-empty; as long as the drain keeps finding more work, no
// further wakeup is needed.
type SerialQueue struct {
	mu          sync.Mutex
	label       string
	priority    Priority
	pool        *ThreadPool
	ops         []Operation
	activeDrain bool
	detached    bool // true once the queue manager has released this queue
}

// NewSerialQueue constructs a serial queue draining onto pool.
func NewSerialQueue(label string, priority Priority, pool *ThreadPool) *SerialQueue {
	return &SerialQueue{label: label, priority: priority, pool: pool}
}

// Label returns the queue's label.
func (q *SerialQueue) Label() string { return q.label }

// IsEmpty reports whether the queue currently has no pending operations.
// Used by the queue manager to decide whether a detach can complete
// immediately or must wait behind a trailing marker operation.
func (q *SerialQueue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops) == 0
}

// Detach suppresses future drain wakeups. Called by the queue manager only
// once every operation queued ahead of its detach has finished running:
// from inside the trailing detach marker, or directly if the queue was
// already empty.
func (q *SerialQueue) Detach() {
	q.mu.Lock()
	q.detached = true
	q.mu.Unlock()
}

// Async appends op to the queue, waking the pool to drain it if the queue
// was empty and is not detached.
func (q *SerialQueue) Async(op Operation) {
	if op == nil {
		panic(ErrNilOperation)
	}
	q.mu.Lock()
	wasEmpty := len(q.ops) == 0
	q.ops = append(q.ops, op)
	shouldWake := wasEmpty && !q.detached
	q.mu.Unlock()
	if shouldWake {
		q.pool.Execute(q.drain, q.priority)
	}
}

// drain runs on a pool worker. It executes operations one at a time, in
// submission order, never holding q.mu while user code runs. The front entry
// is deliberately left in the slice (not popped) until after it returns, so
// that a concurrent Async's "was the queue empty?" check cannot observe a
// momentarily-empty queue and issue a spurious extra wakeup that would race
// this still-running drain.
func (q *SerialQueue) drain() {
	q.mu.Lock()
	q.activeDrain = true
	for len(q.ops) > 0 {
		op := q.ops[0]
		q.mu.Unlock()

		RunWithOwner(q, op)

		q.mu.Lock()
		q.ops = q.ops[1:]
	}
	q.activeDrain = false
	q.mu.Unlock()
}
