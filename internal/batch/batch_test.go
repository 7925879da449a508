package batch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joeycumines/xdispatch2/internal/naive"
)

type recordingAsyncer struct {
	calls atomic.Int64
}

func (r *recordingAsyncer) Async(op naive.Operation) {
	r.calls.Add(1)
	op()
}

func TestQueue_FlushesOnMaxSize(t *testing.T) {
	target := &recordingAsyncer{}
	q := New(target, 4, time.Hour)

	var ran atomic.Int64
	for i := 0; i < 4; i++ {
		q.Async(func() { ran.Add(1) })
	}

	require.EqualValues(t, 1, target.calls.Load())
	require.EqualValues(t, 4, ran.Load())
}

func TestQueue_FlushesOnInterval(t *testing.T) {
	target := &recordingAsyncer{}
	q := New(target, 100, 20*time.Millisecond)

	var ran atomic.Int64
	q.Async(func() { ran.Add(1) })

	require.Eventually(t, func() bool { return ran.Load() == 1 }, time.Second, time.Millisecond)
	require.EqualValues(t, 1, target.calls.Load())
}

func TestQueue_ManualFlush(t *testing.T) {
	target := &recordingAsyncer{}
	q := New(target, 100, time.Hour)

	var ran atomic.Int64
	q.Async(func() { ran.Add(1) })
	q.Async(func() { ran.Add(1) })
	require.EqualValues(t, 0, target.calls.Load())

	q.Flush()
	require.EqualValues(t, 1, target.calls.Load())
	require.EqualValues(t, 2, ran.Load())
}

func TestQueue_CloseRunsRemainderAndFallsBackSynchronously(t *testing.T) {
	target := &recordingAsyncer{}
	q := New(target, 100, time.Hour)

	var ran atomic.Int64
	q.Async(func() { ran.Add(1) })
	q.Close()
	require.EqualValues(t, 1, ran.Load())

	var afterClose atomic.Bool
	q.Async(func() { afterClose.Store(true) })
	require.True(t, afterClose.Load())
}

func TestNew_PanicsWithoutAnyTrigger(t *testing.T) {
	require.Panics(t, func() { New(&recordingAsyncer{}, 0, 0) })
}

func TestQueue_AsyncNilPanics(t *testing.T) {
	q := New(&recordingAsyncer{}, 4, time.Hour)
	require.PanicsWithValue(t, naive.ErrNilOperation, func() { q.Async(nil) })
}
