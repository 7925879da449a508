package naive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarrier_WaitBeforeComplete(t *testing.T) {
	var b Barrier
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.True(t, b.Wait())
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before Complete")
	case <-time.After(20 * time.Millisecond):
	}

	b.Complete()
	<-done
}

func TestBarrier_CompleteBeforeWait(t *testing.T) {
	var b Barrier
	b.Complete()
	require.True(t, b.Wait())
}

func TestBarrier_CompleteIsIdempotent(t *testing.T) {
	var b Barrier
	b.Complete()
	b.Complete() // must not panic or block
	require.True(t, b.Wait())
}

func TestBarrier_WaitTimeout(t *testing.T) {
	var b Barrier
	require.False(t, b.WaitTimeout(10*time.Millisecond))
	b.Complete()
	require.True(t, b.WaitTimeout(time.Second))
}

func TestBarrier_WaitTimeoutNonBlocking(t *testing.T) {
	var b Barrier
	require.False(t, b.WaitTimeout(0))
	b.Complete()
	require.True(t, b.WaitTimeout(0))
}
