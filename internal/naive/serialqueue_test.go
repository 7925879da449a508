package naive

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSerialQueue_OrdersOperations(t *testing.T) {
	p := NewThreadPool(4)
	defer p.Shutdown()
	q := NewSerialQueue("test", PriorityDefault, p)

	var (
		mu  sync.Mutex
		out []int
	)
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		i := i
		q.Async(func() {
			mu.Lock()
			out = append(out, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for i, v := range out {
		require.Equal(t, i, v)
	}
}

func TestSerialQueue_SingleConsumer(t *testing.T) {
	p := NewThreadPool(8)
	defer p.Shutdown()
	q := NewSerialQueue("test", PriorityDefault, p)

	var (
		mu      sync.Mutex
		running int
		maxSeen int
	)
	var wg sync.WaitGroup
	wg.Add(50)
	for i := 0; i < 50; i++ {
		q.Async(func() {
			mu.Lock()
			running++
			if running > maxSeen {
				maxSeen = running
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()
	require.Equal(t, 1, maxSeen)
}

func TestSerialQueue_IsCurrentQueue(t *testing.T) {
	p := NewThreadPool(2)
	defer p.Shutdown()
	q := NewSerialQueue("test", PriorityDefault, p)
	other := NewSerialQueue("other", PriorityDefault, p)

	done := make(chan struct{})
	q.Async(func() {
		defer close(done)
		require.True(t, IsRunWithOwner(q))
		require.False(t, IsRunWithOwner(other))
	})
	<-done
}

func TestSerialQueue_AsyncNilPanics(t *testing.T) {
	p := NewThreadPool(1)
	defer p.Shutdown()
	q := NewSerialQueue("test", PriorityDefault, p)
	require.PanicsWithValue(t, ErrNilOperation, func() { q.Async(nil) })
}
