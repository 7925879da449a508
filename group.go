package xdispatch2

import (
	"time"

	"github.com/joeycumines/xdispatch2/internal/naive"
)

// Group is a fan-out/fan-in join primitive: operations submitted through it
// are tracked by a chain of consumables so that Wait observes exactly the
// operations submitted before it was called.
type Group struct {
	impl *naive.Group
}

// NewGroup returns a ready-to-use Group.
func NewGroup() *Group {
	return &Group{impl: naive.NewGroup()}
}

// Async submits op to q, tracked by the group.
func (g *Group) Async(op func(), q *Queue) {
	if q == nil {
		panic(naive.ErrForeignQueue)
	}
	g.impl.Async(op, q.asyncer)
}

// Wait blocks until every operation submitted to the group before this call
// has completed, or until timeout elapses (whichever comes first), returning
// whether it completed. A zero timeout performs a non-blocking check; a
// negative timeout waits indefinitely.
func (g *Group) Wait(timeout time.Duration) bool {
	return g.impl.Wait(timeout)
}

// Notify submits op to q exactly once every operation submitted to the group
// before this call has completed. Unlike Wait, it does not block the
// caller - it dedicates a transient worker on the global pool to do the
// waiting.
func (g *Group) Notify(op func(), q *Queue) {
	if q == nil {
		panic(naive.ErrForeignQueue)
	}
	g.impl.Notify(op, q.asyncer, naive.DefaultPool)
}
