package kv_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-ticktick-mcp/internal/kv"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "a", "1", time.Minute))
		value, err := store.Get(ctx, "a")
		require.NoError(t, err)
		require.Equal(t, "1", value)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		require.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("expired key", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "short", "1", -time.Second))
		_, err := store.Get(ctx, "short")
		require.ErrorIs(t, err, kv.ErrNotFound)
	})
}

func TestMemory_GetDel(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	require.NoError(t, store.Set(ctx, "once", "payload", time.Minute))

	value, err := store.GetDel(ctx, "once")
	require.NoError(t, err)
	require.Equal(t, "payload", value)

	_, err = store.GetDel(ctx, "once")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	require.NoError(t, store.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, store.Delete(ctx, "a"))
	_, err := store.Get(ctx, "a")
	require.ErrorIs(t, err, kv.ErrNotFound)

	// Deleting a missing key is fine.
	require.NoError(t, store.Delete(ctx, "a"))
}
