package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerWorkers(t *testing.T) {
	ctx := context.Background()
	c := NewController(Config{MaxWorkers: 2})

	assert.Equal(t, int64(2), c.WorkerSlots())

	require.NoError(t, c.AcquireWorker(ctx))
	require.NoError(t, c.AcquireWorker(ctx))
	assert.False(t, c.TryAcquireWorker(), "all slots taken")

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())

	c.ReleaseWorker()
	c.ReleaseWorker()
}

func TestControllerAcquireWorkerCanceled(t *testing.T) {
	c := NewController(Config{MaxWorkers: 1})
	require.NoError(t, c.AcquireWorker(context.Background()))
	defer c.ReleaseWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireWorker(ctx))
}

func TestControllerDefaults(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, int64(1), c.WorkerSlots())
	assert.True(t, c.TryAcquireWorker())
	assert.False(t, c.TryAcquireWorker())
	c.ReleaseWorker()
}

func TestControllerNilIsUnlimited(t *testing.T) {
	var c *Controller
	ctx := context.Background()

	assert.Equal(t, int64(1), c.WorkerSlots())
	assert.NoError(t, c.AcquireWorker(ctx))
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker()
	assert.NoError(t, c.AcquireIO(ctx, 1<<30))
}

func TestControllerAcquireIO(t *testing.T) {
	ctx := context.Background()

	t.Run("Unlimited", func(t *testing.T) {
		c := NewController(Config{MaxWorkers: 1})
		assert.NoError(t, c.AcquireIO(ctx, 1<<30))
	})

	t.Run("SplitsOversizedTransfers", func(t *testing.T) {
		// A transfer larger than the burst must still go through.
		c := NewController(Config{MaxWorkers: 1, IOLimitBytesPerSec: 1 << 20})
		assert.NoError(t, c.AcquireIO(ctx, (1<<20)+512))
	})

	t.Run("CanceledWait", func(t *testing.T) {
		c := NewController(Config{MaxWorkers: 1, IOLimitBytesPerSec: 16})
		tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		// Draining far more than a second of budget cannot finish in time.
		assert.Error(t, c.AcquireIO(tctx, 1<<10))
	})
}
