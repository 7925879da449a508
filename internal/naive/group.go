package naive

import (
	"sync/atomic"
	"time"
)

// Group is a fan-out/fan-in join primitive built on Consumable. Its
// "current consumable" is atomically replaceable; Wait installs a fresh
// successor before waiting on the old one, so a concurrent Async can never
// be lost between "load current" and "swap in a new one".
type Group struct {
	current atomic.Pointer[Consumable]
}

// NewGroup returns a ready-to-use Group.
func NewGroup() *Group {
	g := &Group{}
	g.current.Store(NewConsumable(nil))
	return g
}

// Async adds one resource to the consumable presently in effect, then
// submits a wrapper around op to target that consumes it again once op
// returns - so a Wait racing this call either fully precedes or fully
// observes the submission, never half of it.
func (g *Group) Async(op Operation, target Asyncer) {
	c := g.current.Load()
	c.AddResource()
	target.Async(func() {
		defer c.ConsumeResource()
		op()
	})
}

// Wait blocks until every operation submitted before this call (on this or
// any other goroutine racing it) has completed. timeout follows Consumable's
// convention: < 0 infinite, == 0 non-blocking, > 0 bounded.
//
// Internally this installs a fresh consumable, chaining the old one in as
// its predecessor, before waiting - guaranteeing later Async calls are
// associated with the new consumable and cannot be mistaken for work this
// Wait was responsible for observing.
func (g *Group) Wait(timeout time.Duration) bool {
	for {
		old := g.current.Load()
		next := NewConsumable(old)
		if g.current.CompareAndSwap(old, next) {
			return old.WaitForConsumed(timeout)
		}
	}
}

// Notify submits a transient watcher to pool that blocks forever on the
// consumable presently in effect, then posts op to target exactly once that
// consumable is fully consumed. This worker is not fused into the
// consumable's completion path; it is a plain blocked pool thread, declared
// as such so the pool's concurrency budget accounts for it.
func (g *Group) Notify(op Operation, target Asyncer, pool *ThreadPool) {
	c := g.current.Load()
	pool.Execute(func() {
		pool.NotifyThreadBlocked()
		c.WaitForConsumed(-1)
		pool.NotifyThreadUnblocked()
		target.Async(op)
	}, PriorityDefault)
}
