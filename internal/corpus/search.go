package corpus

import (
	"context"

	"github.com/pkg/errors"

	"docstore/internal/domain"
	"docstore/pkg/rank"
	"docstore/pkg/storage"
)

// Search embeds the query text exactly once, then ranks the full stored
// collection against it. k defaults to domain.DefaultTopK when non-positive.
// An empty collection yields an empty result. The query text itself is not
// validated; an empty string embeds and ranks like any other input.
func (c *Corpus) Search(ctx context.Context, query string, k int) ([]rank.Result, error) {
	if k <= 0 {
		k = domain.DefaultTopK
	}

	vector, err := c.embedder.Embed(ctx, query)
	if err != nil {
		return nil, errors.WithMessage(err, "embed query")
	}

	if len(vector) != c.store.Dimension() {
		return nil, errors.WithMessagef(storage.ErrDimensionMismatch,
			"query dimension %d, collection dimension %d", len(vector), c.store.Dimension())
	}

	docs, err := c.store.ListAll(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "list documents")
	}

	results, err := rank.TopK(vector, docs, k)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("search completed", "k", k, "collection", len(docs), "results", len(results))

	return results, nil
}
