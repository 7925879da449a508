package xdispatch2

import (
	"time"

	"github.com/joeycumines/xdispatch2/internal/naive"
)


// Timer drives a handler at a fixed interval on a target queue.
// Configuration methods are chainable, supporting a fluent
// `interval().handler().resume()` construction style.
type Timer struct {
	impl *naive.Timer
}

// NewTimer creates a timer labelled label, initially targeting the global
// default-priority queue. Configure it with Interval/Latency/Handler/
// TargetQueue before the first Resume.
func NewTimer(label string) *Timer {
	return &Timer{impl: naive.NewTimer(label, naive.GlobalQueue(PriorityDefault), naive.DefaultPool)}
}

// Interval sets the gap between successive handler invocations and returns
// the receiver, for chaining.
func (t *Timer) Interval(d time.Duration) *Timer {
	t.impl.SetInterval(d)
	return t
}

// Latency sets the (advisory) coalescing tolerance and returns the receiver.
func (t *Timer) Latency(l LatencyHint) *Timer {
	t.impl.SetLatency(l)
	return t
}

// Handler sets the operation invoked on each tick and returns the receiver.
func (t *Timer) Handler(op func()) *Timer {
	t.impl.SetHandler(op)
	return t
}

// TargetQueue sets the queue the handler is posted to and returns the
// receiver.
func (t *Timer) TargetQueue(q *Queue) *Timer {
	if q == nil {
		panic(naive.ErrForeignQueue)
	}
	t.impl.SetTargetQueue(q.asyncer)
	return t
}

// Resume starts (or restarts) the timer; calls nest, balanced with Suspend.
func (t *Timer) Resume() { t.impl.Resume() }

// Suspend pauses the timer once every Resume has been matched.
func (t *Timer) Suspend() { t.impl.Suspend() }

// Cancel terminates the timer, blocking until any in-flight handler
// invocation has returned.
func (t *Timer) Cancel() { t.impl.Cancel() }
