package xdispatch2

import "github.com/joeycumines/xdispatch2/internal/naive"

// SocketNotifier watches a file descriptor for read or write readiness and
// posts a handler to a target queue on each readiness event. Configuration
// methods are chainable, matching Timer's style.
type SocketNotifier struct {
	impl *naive.SocketNotifier
}

// NewSocketNotifier creates a notifier labelled label for fd in direction
// dir, initially targeting the global default-priority queue.
func NewSocketNotifier(label string, fd int, dir Direction) *SocketNotifier {
	return &SocketNotifier{
		impl: naive.NewSocketNotifier(label, fd, dir, naive.GlobalQueue(PriorityDefault), naive.DefaultPool),
	}
}

// Handler sets the operation invoked with the descriptor and direction on
// each readiness event, and returns the receiver.
func (n *SocketNotifier) Handler(fn func(fd int, dir Direction)) *SocketNotifier {
	n.impl.SetHandler(fn)
	return n
}

// TargetQueue sets the queue the handler is posted to, and returns the
// receiver.
func (n *SocketNotifier) TargetQueue(q *Queue) *SocketNotifier {
	if q == nil {
		panic(naive.ErrForeignQueue)
	}
	n.impl.SetTargetQueue(q.asyncer)
	return n
}

// Resume starts (or restarts) watching; calls nest, balanced with Suspend.
func (n *SocketNotifier) Resume() { n.impl.Resume() }

// Suspend pauses watching once every Resume has been matched.
func (n *SocketNotifier) Suspend() { n.impl.Suspend() }

// Cancel terminates the notifier, blocking until any in-flight handler
// invocation has returned.
func (n *SocketNotifier) Cancel() { n.impl.Cancel() }

// Socket returns the watched file descriptor.
func (n *SocketNotifier) Socket() int { return n.impl.Socket() }

// Type returns the watched readiness direction.
func (n *SocketNotifier) Type() Direction { return n.impl.Type() }
