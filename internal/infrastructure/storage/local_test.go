package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutAndDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("writes object under the root", func(t *testing.T) {
		key := "product-images/cover.jpg"

		err := store.Put(ctx, key, "image/jpeg", strings.NewReader("jpeg bytes"))
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(store.root, "product-images", "cover.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "jpeg bytes", string(data))
	})

	t.Run("deletes stored object", func(t *testing.T) {
		key := "product-thumbnails/cover.jpg"
		require.NoError(t, store.Put(ctx, key, "image/jpeg", strings.NewReader("thumb")))

		require.NoError(t, store.Delete(ctx, key))

		_, err := os.Stat(filepath.Join(store.root, "product-thumbnails", "cover.jpg"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("deleting a missing object is not an error", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "product-images/gone.jpg"))
	})

	t.Run("rejects keys escaping the root", func(t *testing.T) {
		err := store.Put(ctx, "../outside.jpg", "image/jpeg", strings.NewReader("x"))
		assert.Error(t, err)

		err = store.Delete(ctx, "/etc/passwd")
		assert.Error(t, err)
	})
}

func TestNewLocalStorage_RequiresRoot(t *testing.T) {
	_, err := NewLocalStorage("")
	assert.Error(t, err)
}
