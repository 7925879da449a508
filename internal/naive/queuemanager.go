package naive

import "sync"

// queueManager is the root owner keeping serial queue implementations alive
// until they have fully drained, even once every user-facing handle has gone
// out of scope. It is a process-wide singleton; see global.go.
//
// A serial queue handle can be dropped by the caller while operations are
// still in flight (queued from another goroutine, or queued recursively from
// within a still-running drain). The manager's registration table is what
// keeps the underlying *SerialQueue reachable - and its drain goroutine able
// to make forward progress - for exactly as long as that is still true.
type queueManager struct {
	thread *ManualThread

	mu       sync.Mutex
	registry map[*SerialQueue]struct{}
}

// newQueueManager constructs a queue manager with its own private driving
// thread. The manager's thread must be started by calling Run in a dedicated
// goroutine; the default global manager does this once, at package init.
func newQueueManager() *queueManager {
	return &queueManager{
		thread:   NewManualThread("xdispatch2.queuemanager"),
		registry: make(map[*SerialQueue]struct{}),
	}
}

// Run drives the manager's private thread until Shutdown is called. Intended
// to be invoked from a single dedicated goroutine for the lifetime of the
// process.
func (m *queueManager) Run() {
	m.thread.Exec()
}

// Shutdown stops the manager's private thread once it has drained.
func (m *queueManager) Shutdown() {
	m.thread.Cancel()
}

// Attach registers q, posting the registration onto the manager's own thread
// so that concurrent Attach/Detach calls serialize against each other without
// the manager needing its own separate lock discipline for the registry's
// happens-before ordering relative to in-flight detaches.
func (m *queueManager) Attach(q *SerialQueue) {
	m.thread.Async(func() {
		m.mu.Lock()
		m.registry[q] = struct{}{}
		m.mu.Unlock()
	})
}

// Detach unregisters q. The unregistration is posted onto the manager's own
// thread, behind any earlier Attach of q. If q is empty when it runs there,
// removal happens right away; otherwise a trailing marker operation is
// posted to q's own tail so the unregistration only happens after every
// operation queued before it has finished running - the handle may already
// be gone, but the implementation stays reachable (and keeps draining) until
// then.
func (m *queueManager) Detach(q *SerialQueue) {
	finish := func() {
		m.mu.Lock()
		delete(m.registry, q)
		m.mu.Unlock()
		q.Detach()
	}
	m.thread.Async(func() {
		if q.IsEmpty() {
			finish()
			return
		}
		q.Async(finish)
	})
}

// isRegistered reports whether q is currently registered, for tests.
func (m *queueManager) isRegistered(q *SerialQueue) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.registry[q]
	return ok
}
