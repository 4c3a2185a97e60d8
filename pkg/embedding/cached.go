package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient is the slice of the go-redis API the cache needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedEmbedder serves repeated texts from Redis instead of re-calling the
// model. Embeddings are deterministic for a given model version, so the cache
// key is model + content hash. Cache failures are never fatal: any miss or
// Redis error falls through to the underlying embedder.
type CachedEmbedder struct {
	logger *slog.Logger
	next   Embedder
	client redisClient
	model  string
	ttl    time.Duration
}

var _ Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder wraps next with a Redis cache.
func NewCachedEmbedder(next Embedder, client redisClient, model string, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		logger: slog.Default().With("module", "embedding.cache"),
		next:   next,
		client: client,
		model:  model,
		ttl:    ttl,
	}
}

// Embed returns the cached vector when present, otherwise delegates and
// stores the result best-effort.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := e.cacheKey(text)

	if data, err := e.client.Get(ctx, key).Bytes(); err == nil {
		var vector []float32
		if err := json.Unmarshal(data, &vector); err == nil && len(vector) > 0 {
			return vector, nil
		}
	}

	vector, err := e.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vector); err == nil {
		if err := e.client.Set(ctx, key, data, e.ttl).Err(); err != nil {
			e.logger.Debug("cache write failed", "error", err)
		}
	}

	return vector, nil
}

func (e *CachedEmbedder) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("embed:%s:%x", e.model, sum)
}
