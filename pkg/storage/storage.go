package storage

import (
	"context"

	"github.com/pkg/errors"
)

// Sentinel errors shared by all storage backends.
var (
	// ErrUnavailable indicates the backing store could not be reached or a
	// read/write against it failed. The store never retries; retry policy
	// belongs to the caller.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrDimensionMismatch indicates a vector whose length disagrees with the
	// collection's fixed embedding dimension. Vectors are never truncated or
	// padded to fit.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrItemNotFound indicates an item id that does not exist.
	ErrItemNotFound = errors.New("item not found")
)

// Document is a stored (content, embedding) pair. The store assigns the id on
// insert; content and embedding are immutable afterwards.
type Document struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// Item is the plain relational entity managed alongside the document
// collection. No invariants beyond primary-key uniqueness.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DocumentStore persists documents together with their embedding vector.
type DocumentStore interface {
	// Insert writes the (content, embedding) pair as a single unit and returns
	// the newly assigned id. It fails with ErrDimensionMismatch when the
	// embedding length differs from the collection dimension, writing nothing.
	// The pair is visible to subsequent ListAll calls on the same store.
	Insert(ctx context.Context, content string, embedding []float32) (int64, error)

	// ListAll returns every stored document, embeddings included. Order is
	// unspecified. Callers receive copies, never references into store state.
	ListAll(ctx context.Context) ([]Document, error)

	// Dimension returns the collection-wide embedding dimension.
	Dimension() int
}

// ItemStore is basic CRUD for the item entity.
type ItemStore interface {
	CreateItem(ctx context.Context, name, description string) (Item, error)
	ListItems(ctx context.Context) ([]Item, error)
	DeleteItem(ctx context.Context, id int64) error
}
