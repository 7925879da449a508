package naive

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWithOwner_Basic(t *testing.T) {
	owner := new(int)
	require.False(t, IsRunWithOwner(owner))
	RunWithOwner(owner, func() {
		require.True(t, IsRunWithOwner(owner))
	})
	require.False(t, IsRunWithOwner(owner))
}

func TestRunWithOwner_Nested(t *testing.T) {
	outer, inner := new(int), new(int)
	RunWithOwner(outer, func() {
		require.True(t, IsRunWithOwner(outer))
		RunWithOwner(inner, func() {
			require.True(t, IsRunWithOwner(inner))
			require.False(t, IsRunWithOwner(outer))
		})
		require.True(t, IsRunWithOwner(outer))
	})
}

func TestRunWithOwner_RestoresOnPanic(t *testing.T) {
	outer := new(int)
	RunWithOwner(outer, func() {
		func() {
			defer func() { recover() }()
			RunWithOwner(new(int), func() {
				panic("boom")
			})
		}()
		require.True(t, IsRunWithOwner(outer))
	})
}

func TestRunWithOwner_PerGoroutine(t *testing.T) {
	ownerA, ownerB := new(int), new(int)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		RunWithOwner(ownerA, func() {
			require.True(t, IsRunWithOwner(ownerA))
			require.False(t, IsRunWithOwner(ownerB))
		})
	}()
	go func() {
		defer wg.Done()
		RunWithOwner(ownerB, func() {
			require.True(t, IsRunWithOwner(ownerB))
			require.False(t, IsRunWithOwner(ownerA))
		})
	}()
	wg.Wait()
}
