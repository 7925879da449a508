package naive

import (
	"sync"
	"time"

	"github.com/joeycumines/xdispatch2/internal/xtrace"
)

// Timer drives a periodic handler from a dedicated, long-lived pool worker.
// Resume/Suspend are balanced like a counter; cancel is terminal.
type Timer struct {
	mu       sync.Mutex
	label    string
	interval time.Duration
	latency  LatencyHint
	handler  func()
	target   Asyncer
	pool     *ThreadPool
	cancel   *Cancelable

	startCount int
	cancelled  bool
	generation int
}

// NewTimer returns a Timer with the given target and a no-op handler;
// configure it with SetInterval/SetHandler/SetTargetQueue before Resume.
func NewTimer(label string, target Asyncer, pool *ThreadPool) *Timer {
	return &Timer{
		label:   label,
		target:  target,
		pool:    pool,
		handler: func() {},
		cancel:  NewCancelable(),
	}
}

// SetInterval sets the gap between successive handler invocations.
func (t *Timer) SetInterval(d time.Duration) {
	t.mu.Lock()
	t.interval = d
	t.mu.Unlock()
}

// SetLatency sets the (advisory only) coalescing tolerance.
func (t *Timer) SetLatency(l LatencyHint) {
	t.mu.Lock()
	t.latency = l
	t.mu.Unlock()
}

// SetHandler sets the operation invoked on each tick.
func (t *Timer) SetHandler(op Operation) {
	t.mu.Lock()
	t.handler = op
	t.mu.Unlock()
}

// SetTargetQueue sets the queue the handler is posted to on each tick.
func (t *Timer) SetTargetQueue(target Asyncer) {
	t.mu.Lock()
	t.target = target
	t.mu.Unlock()
}

// Resume increments the start counter. On the 0->1 transition it enables the
// cancelable (in case of a prior Suspend-to-zero-then-Resume cycle) and
// dispatches a dedicated worker to the pool, declared blocked so the pool's
// concurrency budget compensates for the worker it ties up for the timer's
// entire lifetime.
func (t *Timer) Resume() {
	t.mu.Lock()
	t.startCount++
	first := t.startCount == 1
	if first {
		t.generation++
		gen := t.generation
		t.cancel.Enable()
		t.mu.Unlock()
		t.pool.Execute(func() { t.run(gen) }, PriorityDefault)
		return
	}
	t.mu.Unlock()
}

// Suspend decrements the start counter. On the 1->0 transition, the worker
// notices on its next wake and exits without a further invocation.
func (t *Timer) Suspend() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.startCount <= 0 {
		panic(ErrUnbalancedSuspend)
	}
	t.startCount--
}

// Cancel disables the cancelable (terminal) and blocks until any in-flight
// handler invocation has exited.
func (t *Timer) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	t.mu.Unlock()
	t.cancel.Disable()
}

func (t *Timer) running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startCount > 0 && !t.cancelled
}

func (t *Timer) snapshot() (time.Duration, func(), Asyncer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval, t.handler, t.target
}

// run is the dedicated worker body: it sleeps interval, then loops posting
// the handler to the target queue and sleeping again, until Suspend drops
// the start counter to zero or Cancel disables the timer. gen guards against
// a stale worker from a prior Resume cycle racing a fresh one.
func (t *Timer) run(gen int) {
	t.pool.NotifyThreadBlocked()
	defer t.pool.NotifyThreadUnblocked()

	for {
		interval, _, _ := t.snapshot()
		if interval <= 0 {
			interval = time.Millisecond
		}
		time.Sleep(interval)

		t.mu.Lock()
		if t.generation != gen || t.startCount <= 0 || t.cancelled {
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()

		_, handler, target := t.snapshot()
		target.Async(func() {
			ran := t.cancel.RunGuarded(handler)
			if !ran && xtrace.Enabled() && xtrace.Allow("timer.skip") {
				xtrace.Logger().Debug().Str("timer", t.label).Log("handler skipped, cancelled")
			}
		})

		if !t.running() {
			return
		}
	}
}
