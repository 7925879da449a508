package xdispatch2

import "github.com/joeycumines/xdispatch2/internal/naive"

// WaitableQueue wraps a Queue with the ability to wait for previously
// submitted operations to complete without risking deadlock when the inner
// queue happens to be serviced by the waiter's own goroutine: if nothing
// else has drained it yet, the wait performs the pending operation itself.
type WaitableQueue struct {
	*Queue
	impl *naive.WaitableQueue
}

// NewWaitableQueue wraps inner.
func NewWaitableQueue(inner *Queue) *WaitableQueue {
	impl := naive.NewWaitableQueue(inner.asyncer)
	return &WaitableQueue{
		Queue: &Queue{label: inner.label, asyncer: impl, owner: impl, pool: inner.pool},
		impl:  impl,
	}
}

// WaitForOne blocks until at least one pending operation has completed,
// returning immediately if there is nothing left to wait for.
func (q *WaitableQueue) WaitForOne() { q.impl.WaitForOne() }

// WaitForAll blocks until every pending operation has completed.
func (q *WaitableQueue) WaitForAll() { q.impl.WaitForAll() }
