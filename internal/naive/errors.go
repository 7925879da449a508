package naive

import "errors"

// Programmer-error preconditions. These are reported by panicking rather
// than returned: a precondition violation (nil operation, unbalanced
// suspend/resume, cross-engine queue misuse) is a programmer error, not a
// recoverable condition.
var (
	ErrNilOperation       = errors.New("xdispatch2: nil operation")
	ErrUnbalancedSuspend  = errors.New("xdispatch2: suspend called more times than resume")
	ErrForeignQueue       = errors.New("xdispatch2: queue does not belong to this engine")
	ErrNotARegisteredItem = errors.New("xdispatch2: item is not registered with the queue manager")
)
