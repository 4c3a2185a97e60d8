// Package corpus implements the two entry points into the document core: the
// ingestion pipeline (embed text, commit the pair atomically) and the query
// pipeline (embed text, rank the stored collection). The pipelines share the
// embedder and the store but never depend on each other.
package corpus

import (
	"log/slog"

	"docstore/pkg/embedding"
	"docstore/pkg/log"
	"docstore/pkg/mq"
	"docstore/pkg/storage"
)

// Corpus composes the embedding provider, the document store, and an optional
// event queue.
type Corpus struct {
	logger   *slog.Logger
	embedder embedding.Embedder
	store    storage.DocumentStore
	queue    mq.MessageQueue
}

// New creates a Corpus. queue may be nil; ingested events are then skipped.
func New(embedder embedding.Embedder, store storage.DocumentStore, queue mq.MessageQueue) *Corpus {
	return &Corpus{
		logger:   log.Logger("corpus"),
		embedder: embedder,
		store:    store,
		queue:    queue,
	}
}
