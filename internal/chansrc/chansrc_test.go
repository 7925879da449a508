package chansrc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joeycumines/xdispatch2/internal/naive"
)

type syncAsyncer struct{}

func (syncAsyncer) Async(op naive.Operation) { op() }

func TestSource_BatchesUpToMaxSize(t *testing.T) {
	ch := make(chan int)
	var mu sync.Mutex
	var batches [][]int
	s := New(ch, syncAsyncer{}, func(values []int) {
		mu.Lock()
		defer mu.Unlock()
		cp := append([]int(nil), values...)
		batches = append(batches, cp)
	}, &Config{MaxSize: 4, MinSize: 4, PartialTimeout: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	for i := 0; i < 8; i++ {
		ch <- i
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		total := 0
		for _, b := range batches {
			total += len(b)
		}
		return total == 8
	}, time.Second, time.Millisecond)

	mu.Lock()
	for _, b := range batches {
		require.LessOrEqual(t, len(b), 4)
	}
	mu.Unlock()

	cancel()
	<-done
}

func TestSource_PartialTimeoutForcesSmallBatch(t *testing.T) {
	ch := make(chan int)
	received := make(chan []int, 1)
	s := New(ch, syncAsyncer{}, func(values []int) {
		cp := append([]int(nil), values...)
		received <- cp
	}, &Config{MaxSize: 16, MinSize: 4, PartialTimeout: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	ch <- 1
	ch <- 2

	select {
	case batch := <-received:
		require.Equal(t, []int{1, 2}, batch)
	case <-time.After(time.Second):
		t.Fatal("partial batch never submitted")
	}

	cancel()
	<-done
}

func TestSource_StopReturnsPromptly(t *testing.T) {
	ch := make(chan int)
	s := New(ch, syncAsyncer{}, func([]int) {}, nil)

	go func() { _ = s.Run(context.Background()) }()
	time.Sleep(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Stop()
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop never returned")
	}
}

func TestSource_ClosedChannelEndsRunCleanly(t *testing.T) {
	ch := make(chan int)
	s := New(ch, syncAsyncer{}, func([]int) {}, nil)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()
	close(ch)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run never returned after channel close")
	}
}

func TestNew_NilArgumentsPanic(t *testing.T) {
	require.Panics(t, func() { New[int](nil, syncAsyncer{}, func([]int) {}, nil) })
	ch := make(chan int)
	require.Panics(t, func() { New[int](ch, nil, func([]int) {}, nil) })
	require.Panics(t, func() { New[int](ch, syncAsyncer{}, nil, nil) })
}
