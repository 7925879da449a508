package naive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConsumable_NeverAddedCompletesImmediately(t *testing.T) {
	c := NewConsumable(nil)
	require.True(t, c.WaitForConsumed(0))
}

func TestConsumable_WaitsForAllResources(t *testing.T) {
	c := NewConsumable(nil)
	c.AddResource()
	c.AddResource()

	done := make(chan struct{})
	go func() {
		defer close(done)
		require.True(t, c.WaitForConsumed(-1))
	}()

	select {
	case <-done:
		t.Fatal("completed before resources were consumed")
	case <-time.After(20 * time.Millisecond):
	}

	c.ConsumeResource()
	c.ConsumeResource()
	<-done
}

func TestConsumable_ChainsThroughPredecessor(t *testing.T) {
	predecessor := NewConsumable(nil)
	predecessor.AddResource()

	c := NewConsumable(predecessor)
	c.AddResource()

	var order []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		require.True(t, c.WaitForConsumed(-1))
		order = append(order, "c")
	}()

	time.Sleep(10 * time.Millisecond)
	order = append(order, "predecessor")
	predecessor.ConsumeResource()
	c.ConsumeResource()
	<-done

	require.Equal(t, []string{"predecessor", "c"}, order)
}

func TestConsumable_WaitForConsumedTimeout(t *testing.T) {
	c := NewConsumable(nil)
	c.AddResource()
	require.False(t, c.WaitForConsumed(10*time.Millisecond))
	c.ConsumeResource()
	require.True(t, c.WaitForConsumed(time.Second))
}
