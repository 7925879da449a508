package xdispatch2

import (
	"context"
	"time"

	"github.com/joeycumines/xdispatch2/internal/chansrc"
)

// ChannelSourceConfig configures the batching behaviour of a ChannelSource.
type ChannelSourceConfig struct {
	MaxSize        int
	MinSize        int
	PartialTimeout time.Duration
}

// ChannelSource bridges a plain Go channel into the dispatch runtime: each
// batch of values received from the channel is submitted as one operation to
// a target queue, via handler. Not part of the original scheduling engine; a
// supplemented bridge for ordinary channel-based producers.
type ChannelSource[T any] struct {
	impl *chansrc.Source[T]
}

// NewChannelSource constructs a source over ch, submitting each received
// batch to target by invoking handler with it. cfg may be nil for the
// documented defaults.
func NewChannelSource[T any](ch <-chan T, target *Queue, handler func(values []T), cfg *ChannelSourceConfig) *ChannelSource[T] {
	var c *chansrc.Config
	if cfg != nil {
		c = &chansrc.Config{MaxSize: cfg.MaxSize, MinSize: cfg.MinSize, PartialTimeout: cfg.PartialTimeout}
	}
	return &ChannelSource[T]{impl: chansrc.New(ch, target.asyncer, handler, c)}
}

// Run receives and forwards batches until ctx is cancelled or the channel
// closes. It is typically dispatched onto the global queue so it does not
// block the caller's own goroutine:
//
//	xdispatch2.GlobalQueue(xdispatch2.PriorityUtility).Async(func() {
//		_ = source.Run(ctx)
//	})
func (s *ChannelSource[T]) Run(ctx context.Context) error {
	return s.impl.Run(ctx)
}

// Stop cancels any in-progress Run and waits for it to return.
func (s *ChannelSource[T]) Stop() {
	s.impl.Stop()
}
