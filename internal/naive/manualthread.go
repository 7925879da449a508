package naive

import "sync"

// ManualThread is a serial, single-consumer FIFO whose drain is run by
// whichever goroutine the application calls Exec from, rather than by the
// thread pool. This is what backs the main queue: an application with a
// hand-rolled event loop can integrate xdispatch2 by calling Exec from its
// own loop thread.
type ManualThread struct {
	mu        sync.Mutex
	cond      *sync.Cond
	label     string
	ops       []Operation
	cancelled bool
}

// NewManualThread constructs a ManualThread with the given label.
func NewManualThread(label string) *ManualThread {
	t := &ManualThread{label: label}
	t.cond = sync.NewCond(&t.mu)
	return t
}

func (t *ManualThread) Label() string { return t.label }

// Async appends op and wakes Exec if it is blocked waiting for work.
func (t *ManualThread) Async(op Operation) {
	if op == nil {
		panic(ErrNilOperation)
	}
	t.mu.Lock()
	t.ops = append(t.ops, op)
	t.cond.Signal()
	t.mu.Unlock()
}

// Exec drains operations, in submission order, on the calling goroutine,
// until Cancel is called and the queue is empty. It is meant to be run from
// an application's own main/event loop; a typical caller never returns from
// it until shutdown.
func (t *ManualThread) Exec() {
	t.mu.Lock()
	for {
		for len(t.ops) == 0 && !t.cancelled {
			t.cond.Wait()
		}
		if len(t.ops) == 0 && t.cancelled {
			t.mu.Unlock()
			return
		}
		batch := t.ops
		t.ops = nil
		t.mu.Unlock()

		for _, op := range batch {
			RunWithOwner(t, op)
		}

		t.mu.Lock()
	}
}

// Cancel stops Exec once the queue drains, waking it if it is currently
// blocked waiting for work.
func (t *ManualThread) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	t.cond.Broadcast()
	t.mu.Unlock()
}
