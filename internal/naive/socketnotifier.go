package naive

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/joeycumines/xdispatch2/internal/xtrace"
)

// pollTimeout bounds each poll(2) call so the worker can periodically check
// for cancellation rather than blocking on the descriptor forever.
const pollTimeout = 5 * time.Second

// writeReadySpuriousDelay guards against a descriptor reported writable with
// no actual buffer space available: some poll(2) implementations can report
// POLLOUT readiness this way. There is no portable way to distinguish this
// from genuine writability, so the worker simply sleeps this long before
// dispatching the handler for a write-ready event. The same delay paces the
// retry after a failed poll(2) call.
const writeReadySpuriousDelay = 50 * time.Millisecond

// SocketNotifier watches a file descriptor for read or write readiness,
// dedicating a long-lived pool worker to poll(2) it.
type SocketNotifier struct {
	mu        sync.Mutex
	label     string
	fd        int
	direction Direction
	handler   func(fd int, dir Direction)
	target    Asyncer
	pool      *ThreadPool
	cancel    *Cancelable

	startCount int
	cancelled  bool
	generation int
}

// NewSocketNotifier returns a notifier for fd/dir, targeting target. The
// handler defaults to a no-op; configure with SetHandler/SetTargetQueue
// before Resume.
func NewSocketNotifier(label string, fd int, dir Direction, target Asyncer, pool *ThreadPool) *SocketNotifier {
	return &SocketNotifier{
		label:     label,
		fd:        fd,
		direction: dir,
		target:    target,
		pool:      pool,
		handler:   func(int, Direction) {},
		cancel:    NewCancelable(),
	}
}

func (n *SocketNotifier) Socket() int     { return n.fd }
func (n *SocketNotifier) Type() Direction { return n.direction }
func (n *SocketNotifier) Label() string   { return n.label }

// SetHandler sets the operation invoked with the descriptor and direction on
// each readiness event.
func (n *SocketNotifier) SetHandler(fn func(fd int, dir Direction)) {
	n.mu.Lock()
	n.handler = fn
	n.mu.Unlock()
}

// SetTargetQueue sets the queue the handler is posted to.
func (n *SocketNotifier) SetTargetQueue(target Asyncer) {
	n.mu.Lock()
	n.target = target
	n.mu.Unlock()
}

// Resume increments the start counter; on the 0->1 transition a dedicated
// poll worker is dispatched, declared blocked to the pool for its whole
// lifetime.
func (n *SocketNotifier) Resume() {
	n.mu.Lock()
	n.startCount++
	first := n.startCount == 1
	if first {
		n.generation++
		gen := n.generation
		n.cancel.Enable()
		n.mu.Unlock()
		n.pool.Execute(func() { n.run(gen) }, PriorityDefault)
		return
	}
	n.mu.Unlock()
}

// Suspend decrements the start counter; the worker exits on its next wake
// once it reaches zero.
func (n *SocketNotifier) Suspend() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.startCount <= 0 {
		panic(ErrUnbalancedSuspend)
	}
	n.startCount--
}

// Cancel disables the notifier, blocking until any in-flight handler
// invocation completes.
func (n *SocketNotifier) Cancel() {
	n.mu.Lock()
	n.cancelled = true
	n.mu.Unlock()
	n.cancel.Disable()
}

func (n *SocketNotifier) active(gen int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.generation == gen && n.startCount > 0 && !n.cancelled
}

func (n *SocketNotifier) snapshot() (func(int, Direction), Asyncer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.handler, n.target
}

// run is the dedicated poll worker: repeatedly poll(2) fd for readiness
// (with a bounded timeout so cancellation/suspend are observed promptly),
// and on readiness post the handler to the target queue, using the
// cancelable's single in-flight guard so one readiness event never overlaps
// a still-running handler invocation from a previous one.
func (n *SocketNotifier) run(gen int) {
	n.pool.NotifyThreadBlocked()
	defer n.pool.NotifyThreadUnblocked()

	events := int16(unix.POLLIN)
	if n.direction == DirectionWrite {
		events = unix.POLLOUT
	}

	for n.active(gen) {
		fds := []unix.PollFd{{Fd: int32(n.fd), Events: events}}
		count, err := unix.Poll(fds, int(pollTimeout/time.Millisecond))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if xtrace.Enabled() && xtrace.Allow("notifier.error") {
				xtrace.Logger().Err().Err(err).Str("notifier", n.label).Log("poll failed")
			}
			time.Sleep(writeReadySpuriousDelay)
			continue
		}
		if count == 0 {
			continue // timed out; loop back and re-check activity/cancellation
		}
		if fds[0].Revents&events == 0 {
			continue
		}
		if n.direction == DirectionWrite && fds[0].Revents&unix.POLLOUT != 0 {
			// guard against spuriously-writable descriptors with no actual
			// room.
			time.Sleep(writeReadySpuriousDelay)
		}

		handler, target := n.snapshot()
		fd, dir := n.fd, n.direction
		n.dispatchOnce(target, func() { handler(fd, dir) })
	}
}

// dispatchOnce posts fn to target and blocks this worker until that single
// invocation has returned, guaranteeing at most one handler invocation is
// ever in flight for this notifier at a time: the poll loop does not
// re-poll until the previous readiness has been fully handled.
func (n *SocketNotifier) dispatchOnce(target Asyncer, fn func()) {
	done := make(chan struct{})
	target.Async(func() {
		defer close(done)
		n.cancel.RunGuarded(fn)
	})
	<-done
}
