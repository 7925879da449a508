// Package chansrc bridges an ordinary Go channel into the dispatch runtime:
// instead of invoking a handler per received value inside the caller's own
// goroutine, it accumulates one batch of values per receive cycle and
// submits that batch as a single operation to a target queue, letting
// callers feed the runtime from channel-based producers without
// hand-rolling a forwarding goroutine.
package chansrc

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/joeycumines/xdispatch2/internal/naive"
)

// Config controls Source's batching knobs.
type Config struct {
	// MaxSize is the maximum number of values per batch. < 0 disables the
	// maximum. Defaults to 16, if 0.
	MaxSize int

	// MinSize is the target minimum number of values per batch, before
	// PartialTimeout forces an early, smaller batch. Defaults to 4, if 0.
	MinSize int

	// PartialTimeout bounds how long a batch waits to reach MinSize before
	// being submitted anyway. Defaults to 50ms, if 0.
	PartialTimeout time.Duration
}

// Source receives values from a channel and submits batches of them to a
// target queue.
type Source[T any] struct {
	ch      <-chan T
	target  naive.Asyncer
	handler func(values []T)
	cfg     Config

	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

// New constructs a Source over ch, submitting each received batch to target
// by calling handler with it. cfg may be nil for the documented defaults.
func New[T any](ch <-chan T, target naive.Asyncer, handler func(values []T), cfg *Config) *Source[T] {
	if ch == nil {
		panic("chansrc: nil channel")
	}
	if target == nil {
		panic(naive.ErrForeignQueue)
	}
	if handler == nil {
		panic(naive.ErrNilOperation)
	}
	s := &Source[T]{ch: ch, target: target, handler: handler, done: make(chan struct{})}
	if cfg != nil {
		s.cfg = *cfg
	}
	if s.cfg.MaxSize == 0 {
		s.cfg.MaxSize = 16
	}
	if s.cfg.MinSize == 0 {
		s.cfg.MinSize = 4
	}
	if s.cfg.PartialTimeout == 0 {
		s.cfg.PartialTimeout = 50 * time.Millisecond
	}
	return s
}

// Run receives batches until ctx is cancelled or the channel closes,
// submitting each one to the target queue. It blocks the calling goroutine;
// callers typically run it via the runtime's own thread pool (e.g. by
// dispatching it as a blocked pool worker) rather than a bare goroutine.
func (s *Source[T]) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer close(s.done)
	defer cancel()

	for {
		batch, err := s.receiveBatch(ctx)
		if len(batch) > 0 {
			s.target.Async(func() { s.handler(batch) })
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Stop cancels any in-progress Run and waits for it to return.
func (s *Source[T]) Stop() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
	<-s.done
}

// receiveBatch assembles one batch: first wait for MinSize values (or the
// first value, or PartialTimeout), then opportunistically drain more without
// blocking, until the batch holds MaxSize values.
func (s *Source[T]) receiveBatch(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maxSize, minSize, partialTimeout := s.cfg.MaxSize, s.cfg.MinSize, s.cfg.PartialTimeout

	var partialTimeoutCh <-chan time.Time
	if partialTimeout > 0 && minSize < 0 {
		timer := time.NewTimer(partialTimeout)
		defer timer.Stop()
		partialTimeoutCh = timer.C
	}

	var batch []T

minSizeLoop:
	for (maxSize < 0 || len(batch) < maxSize) && (len(batch) < minSize || (len(batch) == 0 && partialTimeoutCh != nil)) {
		select {
		case <-ctx.Done():
			return batch, ctx.Err()

		case <-partialTimeoutCh:
			if err := ctx.Err(); err != nil {
				return batch, err
			}
			break minSizeLoop

		case value, ok := <-s.ch:
			if !ok {
				return batch, io.EOF
			}
			batch = append(batch, value)
			if len(batch) == 1 && partialTimeout > 0 && partialTimeoutCh == nil {
				timer := time.NewTimer(partialTimeout)
				//nolint - reached at most once per call (on the first value); stopped when receiveBatch returns
				defer timer.Stop()
				partialTimeoutCh = timer.C
			}
		}

		if err := ctx.Err(); err != nil {
			return batch, err
		}
	}

maxSizeLoop:
	for maxSize < 0 || len(batch) < maxSize {
		select {
		case <-ctx.Done():
			return batch, ctx.Err()

		case value, ok := <-s.ch:
			if !ok {
				return batch, io.EOF
			}
			batch = append(batch, value)

		default:
			if err := ctx.Err(); err != nil {
				return batch, err
			}
			break maxSizeLoop
		}

		if err := ctx.Err(); err != nil {
			return batch, err
		}
	}

	return batch, nil
}
