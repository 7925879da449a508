// Package xdispatch2 is a general-purpose task-dispatch runtime: application
// code submits operations to named queues, scheduled onto threads according
// to queue semantics (serial or parallel) and priority. It provides serial
// queues for single-threaded mutation, parallel queues backed by a shared
// worker pool, a cooperative main queue, delayed execution, repeating
// timers, grouped fan-out/fan-in, socket readiness notification, and a
// wait-safe queue wrapper that cannot deadlock callers.
//
// This module implements only the "naive" engine: a self-contained
// scheduling runtime built from goroutines, channels and sync primitives,
// with no dependency on any host scheduler.
package xdispatch2

import "github.com/joeycumines/xdispatch2/internal/naive"

// Priority is a scheduling hint attached to operations dispatched through a
// queue. Exact mapping to OS scheduling classes is advisory; this engine
// preserves FIFO order regardless of priority.
type Priority = naive.Priority

const (
	PriorityUserInteractive = naive.PriorityUserInteractive
	PriorityUserInitiated   = naive.PriorityUserInitiated
	PriorityDefault         = naive.PriorityDefault
	PriorityUtility         = naive.PriorityUtility
	PriorityBackground      = naive.PriorityBackground
)

// LatencyHint configures a Timer's tolerance for coalescing with other
// system timers. This engine ignores it entirely; it exists for API parity
// with backends that do honor it.
type LatencyHint = naive.LatencyHint

const (
	LatencyCoarse  = naive.LatencyCoarse
	LatencyDefault = naive.LatencyDefault
	LatencyPrecise = naive.LatencyPrecise
)

// Direction identifies which readiness a SocketNotifier watches for.
type Direction = naive.Direction

const (
	DirectionRead  = naive.DirectionRead
	DirectionWrite = naive.DirectionWrite
)
