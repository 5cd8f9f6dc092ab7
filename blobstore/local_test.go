package blobstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)

	t.Run("PutGet", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "snap/one", []byte("payload")))

		data, err := store.Get(ctx, "snap/one")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "snap/one", []byte("v2")))
		data, err := store.Get(ctx, "snap/one")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), data)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "snap/two", []byte("x")))
		require.NoError(t, store.Put(ctx, "other", []byte("y")))

		names, err := store.List(ctx, "snap/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snap/one", "snap/two"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"other", "snap/one", "snap/two"}, all)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "snap/one"))
		_, err := store.Get(ctx, "snap/one")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, store.Delete(ctx, "snap/one"))
	})
}
