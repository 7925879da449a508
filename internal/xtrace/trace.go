// Package xtrace provides the ambient structured-logging seam the naive
// engine threads through every component, gated by the XDISPATCH2_TRACE
// environment variable: a lazily-initialized global logger, safe to call
// before any explicit configuration.
package xtrace

import (
	"os"
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

var (
	once    sync.Once
	enabled bool
	logger  *logiface.Logger[*stumpy.Event]
	limiter *catrate.Limiter
)

func init() {
	enabled = os.Getenv("XDISPATCH2_TRACE") == "1"
}

// Enabled reports whether XDISPATCH2_TRACE=1 was set at process start.
func Enabled() bool {
	return enabled
}

// Logger returns the package-wide structured logger. The logger itself is
// not rate-limited; the 200 lines/second limit applies only to call sites
// that check Allow before logging. Safe to call even when tracing is disabled; the returned logger's level is
// simply set below anything callers log at, making every call a cheap no-op.
func Logger() *logiface.Logger[*stumpy.Event] {
	once.Do(func() {
		level := logiface.LevelInformational
		if !enabled {
			level = logiface.LevelDisabled
		}
		logger = stumpy.L.New(
			stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr)),
			stumpy.L.WithLevel(level),
		)
		limiter = catrate.NewLimiter(map[time.Duration]int{
			time.Second: 200,
		})
	})
	return logger
}

// Allow reports whether a trace line in category should be emitted right
// now, per the rate limiter. Call sites that log on a hot path (every
// operation invocation, every poll iteration) should guard with this in
// addition to Enabled(), so a tight loop cannot overwhelm stderr.
func Allow(category string) bool {
	if !Enabled() {
		return false
	}
	Logger() // ensure limiter is initialized
	_, ok := limiter.Allow(category)
	return ok
}
