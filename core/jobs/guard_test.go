package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuard_Lifecycle(t *testing.T) {
	g := NewMemoryGuard()
	ctx := context.Background()

	assert.Equal(t, Idle, g.State("lipseys/global"))

	ok, err := g.TryAcquire(ctx, "lipseys/global")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Running, g.State("lipseys/global"))

	ok, _ = g.TryAcquire(ctx, "lipseys/global")
	assert.False(t, ok, "second acquire must fail while running")

	ok, _ = g.TryAcquire(ctx, "lipseys/company-1")
	assert.True(t, ok, "keys are independent")

	require.NoError(t, g.Release(ctx, "lipseys/global"))
	assert.Equal(t, Idle, g.State("lipseys/global"))

	ok, _ = g.TryAcquire(ctx, "lipseys/global")
	assert.True(t, ok)
}

func TestMemoryGuard_ConcurrentAcquire(t *testing.T) {
	g := NewMemoryGuard()
	var winners atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := g.TryAcquire(context.Background(), "davidsons/global"); ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
}
