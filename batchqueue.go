package xdispatch2

import (
	"time"

	"github.com/joeycumines/xdispatch2/internal/batch"
)

// BatchQueue coalesces many small Async submissions into batches before
// handing them to an underlying queue as single operations, trading latency
// for throughput when individual operations are cheap and frequent. Not
// part of the original scheduling engine; a supplemented extension of
// parallel/serial queues.
type BatchQueue struct {
	impl *batch.Queue
}

// NewBatchQueue wraps target, batching submissions up to maxSize operations
// or flushInterval, whichever comes first. A negative maxSize disables the
// size-based trigger and a negative flushInterval disables the time-based
// one; a zero value selects the default size or interval. It panics unless
// at least one of the two is positive.
func NewBatchQueue(target *Queue, maxSize int, flushInterval time.Duration) *BatchQueue {
	return &BatchQueue{impl: batch.New(target.asyncer, maxSize, flushInterval)}
}

// Async adds op to the current batch.
func (b *BatchQueue) Async(op func()) {
	b.impl.Async(op)
}

// Flush submits any partial batch immediately, without waiting for
// flushInterval to elapse.
func (b *BatchQueue) Flush() {
	b.impl.Flush()
}

// Close flushes any remaining partial batch and stops further batching;
// later Async calls run their operation synchronously.
func (b *BatchQueue) Close() {
	b.impl.Close()
}
