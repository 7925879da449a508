package naive

import "time"

// Apply submits n indexed operations to target, sharing a consumable seeded
// with n resources, and blocks the caller until every iteration has
// returned. Calling Apply from inside an operation already running on the
// same serial queue as target deadlocks; this is documented, not detected.
func Apply(target Asyncer, n int, f IndexedOperation) {
	if n <= 0 {
		return
	}
	c := NewConsumable(nil)
	for i := 0; i < n; i++ {
		c.AddResource()
	}
	for i := 0; i < n; i++ {
		index := i
		target.Async(func() {
			defer c.ConsumeResource()
			f(index)
		})
	}
	c.WaitForConsumed(-1)
}

// After submits op to target after delay elapses. On the naive engine this
// is implemented literally by holding a dedicated pool worker asleep for the
// whole delay: coarse, and wasteful of a pool slot for long delays, since
// the worker does not declare itself blocked the way a timer or notifier
// worker does.
func After(pool *ThreadPool, delay time.Duration, target Asyncer, op Operation) {
	pool.Execute(func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		target.Async(op)
	}, PriorityDefault)
}
