package naive

import "runtime"

// This file confines every process-wide singleton the naive engine needs to
// one place: the default thread pool, the five global priority queues, the
// main queue's manual thread, and the queue manager. All are intentionally
// never torn down during normal operation; Shutdown exists only for tests
// that want a clean process exit.

var (
	// DefaultPool backs every global queue and every serial queue created
	// without an explicit pool.
	DefaultPool = NewThreadPool(runtime.NumCPU())

	// Manager owns every serial queue's lifetime past its last handle.
	Manager = newQueueManager()

	// MainThread is the manual thread backing MainQueue; an application
	// drives it by calling Exec (exposed at the root package as
	// xdispatch2.Exec).
	MainThread = NewManualThread("xdispatch2.main")

	globalQueues = map[Priority]*ParallelQueue{
		PriorityUserInteractive: NewParallelQueue("xdispatch2.global.user-interactive", PriorityUserInteractive, DefaultPool),
		PriorityUserInitiated:   NewParallelQueue("xdispatch2.global.user-initiated", PriorityUserInitiated, DefaultPool),
		PriorityDefault:         NewParallelQueue("xdispatch2.global.default", PriorityDefault, DefaultPool),
		PriorityUtility:         NewParallelQueue("xdispatch2.global.utility", PriorityUtility, DefaultPool),
		PriorityBackground:      NewParallelQueue("xdispatch2.global.background", PriorityBackground, DefaultPool),
	}
)

func init() {
	go Manager.Run()
}

// GlobalQueue returns the shared parallel queue for priority p, falling back
// to PriorityDefault for any value outside the five recognised tags.
func GlobalQueue(p Priority) *ParallelQueue {
	if q, ok := globalQueues[p]; ok {
		return q
	}
	return globalQueues[PriorityDefault]
}
