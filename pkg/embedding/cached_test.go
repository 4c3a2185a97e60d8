package embedding

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data map[string]string
	sets int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.sets++
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

type countingEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (e *countingEmbedder) Embed(context.Context, string) ([]float32, error) {
	e.calls++
	return e.vector, e.err
}

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("second call is served from cache", func(t *testing.T) {
		next := &countingEmbedder{vector: []float32{1, 2, 3}}
		cache := newFakeRedis()
		e := NewCachedEmbedder(next, cache, "nomic-embed-text", time.Hour)

		first, err := e.Embed(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2, 3}, first)
		assert.Equal(t, 1, next.calls)
		assert.Equal(t, 1, cache.sets)

		second, err := e.Embed(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, next.calls)
	})

	t.Run("different texts use different keys", func(t *testing.T) {
		next := &countingEmbedder{vector: []float32{1, 2, 3}}
		e := NewCachedEmbedder(next, newFakeRedis(), "nomic-embed-text", time.Hour)

		_, err := e.Embed(ctx, "hello")
		require.NoError(t, err)
		_, err = e.Embed(ctx, "world")
		require.NoError(t, err)
		assert.Equal(t, 2, next.calls)
	})

	t.Run("embedder failure is not cached", func(t *testing.T) {
		next := &countingEmbedder{err: errors.New("model down")}
		cache := newFakeRedis()
		e := NewCachedEmbedder(next, cache, "nomic-embed-text", time.Hour)

		_, err := e.Embed(ctx, "hello")
		assert.Error(t, err)
		assert.Equal(t, 0, cache.sets)

		next.err = nil
		next.vector = []float32{1, 2, 3}

		vector, err := e.Embed(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2, 3}, vector)
		assert.Equal(t, 2, next.calls)
	})
}
