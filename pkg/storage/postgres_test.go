package storage

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPostgresStore connects to the PostgreSQL instance named by POSTGRES_HOST
// or skips the test. Requires the pgvector extension to be installable.
func testPostgresStore(t *testing.T, dim int) *PostgresStore {
	t.Helper()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		t.Skip("POSTGRES_HOST not set, skipping integration test")
	}

	port := 5432
	if p := os.Getenv("POSTGRES_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		require.NoError(t, err)
		port = parsed
	}

	cfg := PostgresConfig{
		Host:         host,
		Port:         port,
		User:         envOr("POSTGRES_USER", "ai"),
		Password:     envOr("POSTGRES_PASSWORD", "ai"),
		Database:     envOr("POSTGRES_DB", "ai"),
		EmbeddingDim: dim,
	}

	store, err := NewPostgresStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = store.pool.Exec(ctx, `TRUNCATE documents, items`)
		_ = store.Close(ctx)
	})

	ctx := context.Background()
	_, err = store.pool.Exec(ctx, `TRUNCATE documents, items`)
	require.NoError(t, err)

	return store
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestPostgresStoreIntegration(t *testing.T) {
	ctx := context.Background()
	store := testPostgresStore(t, 3)

	t.Run("insert and list round trip", func(t *testing.T) {
		id, err := store.Insert(ctx, "hello", []float32{1, 0, 0})
		require.NoError(t, err)
		assert.Positive(t, id)

		docs, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, id, docs[0].ID)
		assert.Equal(t, "hello", docs[0].Content)
		assert.Equal(t, []float32{1, 0, 0}, docs[0].Embedding)
	})

	t.Run("dimension mismatch writes nothing", func(t *testing.T) {
		before, err := store.ListAll(ctx)
		require.NoError(t, err)

		_, err = store.Insert(ctx, "bad", []float32{1, 0})
		assert.ErrorIs(t, err, ErrDimensionMismatch)

		after, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("item crud", func(t *testing.T) {
		item, err := store.CreateItem(ctx, "widget", "a widget")
		require.NoError(t, err)
		assert.Positive(t, item.ID)

		items, err := store.ListItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)

		require.NoError(t, store.DeleteItem(ctx, item.ID))
		assert.ErrorIs(t, store.DeleteItem(ctx, item.ID), ErrItemNotFound)
	})
}
