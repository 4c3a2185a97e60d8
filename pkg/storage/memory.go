package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/pkg/errors"
)

// MemoryStore is an in-memory DocumentStore and ItemStore for tests and
// simple deployments without PostgreSQL.
type MemoryStore struct {
	mu sync.RWMutex

	dim        int
	nextDocID  int64
	docs       []Document
	nextItemID int64
	items      []Item
}

var (
	_ DocumentStore = (*MemoryStore)(nil)
	_ ItemStore     = (*MemoryStore)(nil)
)

// NewMemoryStore creates an in-memory store with the given embedding dimension.
func NewMemoryStore(dim int) *MemoryStore {
	return &MemoryStore{dim: dim}
}

// Dimension returns the collection-wide embedding dimension.
func (s *MemoryStore) Dimension() int {
	return s.dim
}

// Insert stores a copy of the pair under a new monotone id.
func (s *MemoryStore) Insert(_ context.Context, content string, embedding []float32) (int64, error) {
	if len(embedding) != s.dim {
		return 0, errors.WithMessagef(ErrDimensionMismatch, "got %d, want %d", len(embedding), s.dim)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDocID++
	s.docs = append(s.docs, Document{
		ID:        s.nextDocID,
		Content:   content,
		Embedding: slices.Clone(embedding),
	})

	return s.nextDocID, nil
}

// ListAll returns copies of every stored document.
func (s *MemoryStore) ListAll(_ context.Context) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, len(s.docs))
	for i, doc := range s.docs {
		docs[i] = doc
		docs[i].Embedding = slices.Clone(doc.Embedding)
	}

	return docs, nil
}

// CreateItem stores a new item and returns it with the assigned id.
func (s *MemoryStore) CreateItem(_ context.Context, name, description string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextItemID++
	item := Item{ID: s.nextItemID, Name: name, Description: description}
	s.items = append(s.items, item)

	return item, nil
}

// ListItems returns copies of all items ordered by id.
func (s *MemoryStore) ListItems(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items), nil
}

// DeleteItem removes an item by id.
func (s *MemoryStore) DeleteItem(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = slices.Delete(s.items, i, i+1)
			return nil
		}
	}

	return errors.WithMessagef(ErrItemNotFound, "id %d", id)
}
