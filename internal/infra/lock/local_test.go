package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("Segundo acquire falha enquanto o primeiro segura", func(t *testing.T) {
		locker := NewLocalLocker(time.Minute)

		release, ok, err := locker.TryAcquire(ctx, "signing:cust-1")
		require.NoError(t, err)
		require.True(t, ok)

		_, ok, err = locker.TryAcquire(ctx, "signing:cust-1")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, _ = locker.TryAcquire(ctx, "signing:cust-2")
		assert.True(t, ok, "chaves diferentes não competem")

		release()
		_, ok, _ = locker.TryAcquire(ctx, "signing:cust-1")
		assert.True(t, ok)
	})

	t.Run("Lease expira pelo TTL", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		locker := NewLocalLocker(time.Minute)
		locker.now = func() time.Time { return now }

		oldRelease, ok, _ := locker.TryAcquire(ctx, "k")
		require.True(t, ok)

		now = now.Add(2 * time.Minute)
		_, ok, _ = locker.TryAcquire(ctx, "k")
		require.True(t, ok)

		// release do lease antigo não derruba o novo
		oldRelease()
		_, ok, _ = locker.TryAcquire(ctx, "k")
		assert.False(t, ok)
	})
}
