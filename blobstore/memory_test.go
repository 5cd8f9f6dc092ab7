package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("PutGet", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/one", []byte("payload")))

		data, err := store.Get(ctx, "a/one")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
	})

	t.Run("GetCopiesData", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "copy", []byte("abc")))
		data, err := store.Get(ctx, "copy")
		require.NoError(t, err)
		data[0] = 'x'

		again, err := store.Get(ctx, "copy")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/one", []byte("v2")))
		data, err := store.Get(ctx, "a/one")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), data)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/two", []byte("x")))
		require.NoError(t, store.Put(ctx, "b/one", []byte("y")))

		names, err := store.List(ctx, "a/")
		require.NoError(t, err)
		assert.Equal(t, []string{"a/one", "a/two"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "a/one"))
		_, err := store.Get(ctx, "a/one")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, store.Delete(ctx, "a/one"), "deleting a missing blob is not an error")
	})
}
