package corpus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"docstore/internal/domain"
)

// Ingest embeds content exactly once and commits the (content, embedding)
// pair as a single insert. If embedding fails nothing is written; if the
// insert fails the vector is discarded and the caller re-submits the content
// to retry. There is no state in which the content exists without its vector.
func (c *Corpus) Ingest(ctx context.Context, content string) (int64, error) {
	vector, err := c.embedder.Embed(ctx, content)
	if err != nil {
		return 0, errors.WithMessage(err, "embed content")
	}

	id, err := c.store.Insert(ctx, content, vector)
	if err != nil {
		return 0, errors.WithMessage(err, "insert document")
	}

	c.logger.Info("document ingested", "id", id, "bytes", len(content))
	c.publishIngested(id, len(content))

	return id, nil
}

// publishIngested announces a committed document. Best-effort: the insert is
// already durable, so a publish failure is logged and swallowed.
func (c *Corpus) publishIngested(id int64, contentBytes int) {
	if c.queue == nil {
		return
	}

	event := domain.DocumentIngested{
		EventID:      uuid.NewString(),
		DocumentID:   id,
		ContentBytes: contentBytes,
		CreatedAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		c.logger.Warn("marshal ingested event failed", "id", id, "error", err)
		return
	}

	if err := c.queue.Publish(domain.TopicDocumentIngested, payload); err != nil {
		c.logger.Warn("publish ingested event failed", "id", id, "error", err)
	}
}
