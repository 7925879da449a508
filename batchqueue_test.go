package xdispatch2

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBatchQueue_FlushesOnSizeAndManually(t *testing.T) {
	q := NewSerialQueue("batch-target", PriorityDefault)
	bq := NewBatchQueue(q, 4, time.Hour)

	var count atomic.Int64
	for i := 0; i < 4; i++ {
		bq.Async(func() { count.Add(1) })
	}
	require.Eventually(t, func() bool { return count.Load() == 4 }, time.Second, time.Millisecond)

	bq.Async(func() { count.Add(1) })
	bq.Flush()
	require.Eventually(t, func() bool { return count.Load() == 5 }, time.Second, time.Millisecond)
}

func TestBatchQueue_CloseRunsRemainder(t *testing.T) {
	q := NewSerialQueue("batch-target", PriorityDefault)
	bq := NewBatchQueue(q, 100, time.Hour)

	var ran atomic.Bool
	bq.Async(func() { ran.Store(true) })
	bq.Close()
	require.Eventually(t, ran.Load, time.Second, time.Millisecond)
}
