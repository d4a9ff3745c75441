package authflow_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	authflow "github.com/rgillies/go-authflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	store := authflow.NewMemoryTokenStore()

	t.Run("empty store reads as absent", func(t *testing.T) {
		token, err := store.Read(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("last writer wins", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "first"))
		require.NoError(t, store.Write(ctx, "second"))

		token, err := store.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", token)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		require.NoError(t, store.Clear(ctx))

		token, err := store.Read(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}

func TestFileTokenStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fakeLocal.json")
	store := authflow.NewFileTokenStore(path)

	t.Run("missing file reads as absent", func(t *testing.T) {
		token, err := store.Read(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("round trips a token", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "abc.def.ghi"))

		token, err := store.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("persists with a Bearer prefix", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var raw map[string]string
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, "Bearer abc.def.ghi", raw["Authorization"])
	})

	t.Run("clear empties the slot on disk", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		require.NoError(t, store.Clear(ctx))

		token, err := store.Read(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var raw map[string]string
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Empty(t, raw["Authorization"])
	})
}
