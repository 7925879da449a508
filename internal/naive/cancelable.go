package naive

import (
	"sync"
	"sync/atomic"
)

type cancelableState int32

const (
	csDisabled cancelableState = iota
	csEnabled
	csRunning
)

// Cancelable is a three-state gate guarding a handler against being invoked
// after its owner declares it dead, while still allowing the handler to
// disable itself from within its own invocation without deadlocking. The
// zero value is not ready for use; construct with NewCancelable.
type Cancelable struct {
	mu    sync.Mutex // guards swapping br on Enable
	state atomic.Int32
	br    *Barrier
}

// NewCancelable returns a Cancelable starting in the enabled state.
func NewCancelable() *Cancelable {
	c := &Cancelable{br: &Barrier{}}
	c.state.Store(int32(csEnabled))
	return c
}

// Enable transitions disabled -> enabled, installing a fresh internal signal
// so a subsequent Disable correctly waits for the next running handler
// rather than observing a stale, already-completed one.
func (c *Cancelable) Enable() {
	c.mu.Lock()
	c.br = &Barrier{}
	c.mu.Unlock()
	c.state.Store(int32(csEnabled))
}

// Enter attempts enabled -> running, returning true only on success.
func (c *Cancelable) Enter() bool {
	return c.state.CompareAndSwap(int32(csEnabled), int32(csRunning))
}

// Leave transitions running -> enabled. If a concurrent Disable raced this
// handler invocation (the CAS fails), Leave signals the barrier Disable is
// blocked on.
func (c *Cancelable) Leave() {
	if !c.state.CompareAndSwap(int32(csRunning), int32(csEnabled)) {
		c.barrier().Complete()
	}
}

// Disable forces the disabled state. If called from a goroutine that is not
// currently inside this cancelable's guarded region (see RunGuarded), and a
// handler invocation was running, Disable blocks until that invocation calls
// Leave. If called from within the guarded region itself (a handler
// disabling itself), Disable returns immediately without blocking - the
// handler is, after all, still running on the very goroutine that would
// otherwise deadlock waiting for itself to finish.
func (c *Cancelable) Disable() {
	if enteredContains(c) {
		c.state.Store(int32(csDisabled))
		return
	}
	old := cancelableState(c.state.Swap(int32(csDisabled)))
	if old == csRunning {
		c.barrier().Wait()
	}
}

func (c *Cancelable) barrier() *Barrier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.br
}

// RunGuarded enters the cancelable, marks the calling goroutine as "inside"
// it for the duration of fn (so a nested Disable call - e.g. fn cancelling
// its own source - is recognised as self-disable rather than deadlocking),
// runs fn, then leaves. It reports whether fn ran.
func (c *Cancelable) RunGuarded(fn func()) bool {
	if !c.Enter() {
		return false
	}
	pushEntered(c)
	defer func() {
		popEntered(c)
		c.Leave()
	}()
	fn()
	return true
}
