package naive

// Priority is a scheduling hint attached to operations dispatched through a
// queue. The naive engine stores it but does not act on it: the pool runs
// operations in FIFO order whatever their priority, so it gives neither an
// ordering guarantee nor a throughput skew. Tests should not depend on
// priority for ordering.
type Priority int

const (
	PriorityUserInteractive Priority = iota
	PriorityUserInitiated
	PriorityDefault
	PriorityUtility
	PriorityBackground
)

func (p Priority) String() string {
	switch p {
	case PriorityUserInteractive:
		return "user-interactive"
	case PriorityUserInitiated:
		return "user-initiated"
	case PriorityDefault:
		return "default"
	case PriorityUtility:
		return "utility"
	case PriorityBackground:
		return "background"
	default:
		return "unknown"
	}
}

// LatencyHint configures a Timer's tolerance for coalescing with other
// system timers. The naive engine ignores it entirely - other back-ends may
// translate it to a native tolerance, so it is only stored here, for API
// parity with those.
type LatencyHint int

const (
	LatencyCoarse LatencyHint = iota
	LatencyDefault
	LatencyPrecise
)

// Direction identifies which readiness a SocketNotifier watches for.
type Direction int

const (
	DirectionRead Direction = iota
	DirectionWrite
)

func (d Direction) String() string {
	if d == DirectionWrite {
		return "write"
	}
	return "read"
}
