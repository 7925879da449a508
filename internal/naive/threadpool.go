package naive

import (
	"runtime"
	"sync"

	"github.com/joeycumines/xdispatch2/internal/xtrace"
)

type pendingOp struct {
	fn       Operation
	priority Priority
}

// ThreadPool is a bounded, auto-scaling worker pool. Workers
// are spawned lazily as operations arrive and retired only at Shutdown;
// NotifyThreadBlocked/NotifyThreadUnblocked let a long-running worker (a
// timer, a socket notifier, a group's notify watcher) tell the pool it is
// parked on an external wait, so the pool can grow its concurrency budget to
// compensate without that worker counting against throughput.
type ThreadPool struct {
	mu          sync.Mutex
	cond        *sync.Cond
	maxThreads  int
	threads     int
	idleThreads int
	ops         []pendingOp
	cancelled   bool
	wg          sync.WaitGroup
}

// NewThreadPool returns a pool whose initial concurrency budget is
// maxThreads, or runtime.NumCPU() if maxThreads <= 0.
func NewThreadPool(maxThreads int) *ThreadPool {
	if maxThreads <= 0 {
		maxThreads = runtime.NumCPU()
	}
	p := &ThreadPool{maxThreads: maxThreads}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Execute enqueues fn for execution by some worker. priority is a hint only
// (see Priority); the naive pool preserves FIFO order regardless.
func (p *ThreadPool) Execute(fn Operation, priority Priority) {
	if fn == nil {
		panic(ErrNilOperation)
	}
	p.mu.Lock()
	p.ops = append(p.ops, pendingOp{fn: fn, priority: priority})
	p.schedule()
	p.mu.Unlock()
}

// NotifyThreadBlocked raises the concurrency budget by one. The caller
// promises to soon block on something outside the pool's own condition
// variable (a sleep, a poll, a consumable wait) and must pair this with
// exactly one later NotifyThreadUnblocked.
func (p *ThreadPool) NotifyThreadBlocked() {
	p.mu.Lock()
	p.maxThreads++
	p.schedule()
	p.mu.Unlock()
}

// NotifyThreadUnblocked reverses a prior NotifyThreadBlocked.
func (p *ThreadPool) NotifyThreadUnblocked() {
	p.mu.Lock()
	p.maxThreads--
	p.schedule()
	p.mu.Unlock()
}

// schedule implements the pool's dispatch policy; the caller must hold p.mu.
func (p *ThreadPool) schedule() {
	if len(p.ops) == 0 {
		return
	}
	if p.idleThreads > 0 {
		p.idleThreads--
		p.cond.Signal()
		return
	}
	if p.threads < p.maxThreads {
		p.threads++
		p.wg.Add(1)
		go p.worker()
		return
	}
	// No idle worker and no room to spawn one: whichever worker next becomes
	// idle will pick this operation up.
}

func (p *ThreadPool) worker() {
	defer p.wg.Done()
	p.mu.Lock()
	for {
		if p.cancelled {
			p.threads--
			p.mu.Unlock()
			return
		}
		if len(p.ops) == 0 {
			p.idleThreads++
			p.cond.Wait()
			continue
		}
		op := p.ops[0]
		p.ops = p.ops[1:]
		p.mu.Unlock()

		runOperation(op.fn)

		p.mu.Lock()
	}
}

// runOperation executes fn. A panic escaping fn is not recovered: a
// well-behaved caller must catch panics inside its own operation - an
// uncaught one is left to crash the process, which is exactly how Go
// already treats a panic that escapes a goroutine. The only addition is an
// optional trace line before it escapes, for XDISPATCH2_TRACE diagnostics.
func runOperation(fn Operation) {
	if xtrace.Enabled() {
		defer func() {
			if r := recover(); r != nil {
				xtrace.Logger().Err().Any("panic", r).Log("operation panicked")
				panic(r)
			}
		}()
	}
	fn()
}

// Shutdown cancels the pool, waking every idle worker so it exits, then
// waits for all workers to return.
func (p *ThreadPool) Shutdown() {
	p.mu.Lock()
	p.cancelled = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

// Stats returns a snapshot of the pool's bookkeeping, for tests and
// diagnostics.
func (p *ThreadPool) Stats() (maxThreads, threads, idleThreads, pending int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxThreads, p.threads, p.idleThreads, len(p.ops)
}
