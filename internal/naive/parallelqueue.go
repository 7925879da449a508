package naive

// ParallelQueue is a thin shard on a ThreadPool: it gives no cross-operation
// ordering, forwarding every submission directly to the pool under its own
// priority and label.
type ParallelQueue struct {
	label    string
	priority Priority
	pool     *ThreadPool
}

// NewParallelQueue constructs a parallel queue over pool.
func NewParallelQueue(label string, priority Priority, pool *ThreadPool) *ParallelQueue {
	return &ParallelQueue{label: label, priority: priority, pool: pool}
}

func (p *ParallelQueue) Label() string { return p.label }

// Async forwards op to the pool, tagging the invocation with this queue's
// identity so IsCurrentQueue can recognise it.
func (p *ParallelQueue) Async(op Operation) {
	if op == nil {
		panic(ErrNilOperation)
	}
	p.pool.Execute(func() { RunWithOwner(p, op) }, p.priority)
}
