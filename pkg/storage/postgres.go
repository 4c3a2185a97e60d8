package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
	"github.com/pkg/errors"
)

// Package-level singleton instance.
var pgInstance *PostgresStore

// Init initializes the storage package with config.
func Init(cfg PostgresConfig) error {
	store, err := NewPostgresStore(cfg)
	if err != nil {
		return err
	}

	pgInstance = store
	return nil
}

// NewStore returns the PostgresStore singleton instance.
func NewStore() *PostgresStore {
	return pgInstance
}

// Close closes the PostgresStore connection.
func Close(ctx context.Context) error {
	if pgInstance != nil {
		return pgInstance.Close(ctx)
	}
	return nil
}

// PostgresStore implements DocumentStore and ItemStore on PostgreSQL with the
// pgvector extension. Each operation acquires a connection from the pool and
// releases it on every exit path.
type PostgresStore struct {
	pool *pgxpool.Pool
	dim  int
}

var (
	_ DocumentStore = (*PostgresStore)(nil)
	_ ItemStore     = (*PostgresStore)(nil)
)

// NewPostgresStore connects to PostgreSQL and provisions the schema. A missing
// or unreachable backend surfaces as ErrUnavailable.
func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, errors.WithMessage(err, "parse postgres config")
	}

	// Register the pgvector codec on every new connection so []float32 round-trips
	// through the vector column type.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.WithMessagef(ErrUnavailable, "create pgx pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.WithMessagef(ErrUnavailable, "ping postgres: %v", err)
	}

	store := &PostgresStore{pool: pool, dim: cfg.EmbeddingDim}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, errors.WithMessagef(ErrUnavailable, "ensure schema: %v", err)
	}

	return store, nil
}

// ensureSchema provisions the vector extension and both tables. The embedding
// column dimension is fixed here for the lifetime of the collection.
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return err
	}

	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS items (
    id          BIGSERIAL PRIMARY KEY,
    name        VARCHAR(100) NOT NULL,
    description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS documents (
    id        BIGSERIAL PRIMARY KEY,
    content   TEXT NOT NULL,
    embedding VECTOR(%d) NOT NULL
);
`, s.dim)
	_, err := s.pool.Exec(ctx, ddl)
	return err
}

// Dimension returns the collection-wide embedding dimension.
func (s *PostgresStore) Dimension() int {
	return s.dim
}

// Insert writes the (content, embedding) pair in a single statement, so the
// pair is either fully visible or absent. Never a partial write.
func (s *PostgresStore) Insert(ctx context.Context, content string, embedding []float32) (int64, error) {
	if len(embedding) != s.dim {
		return 0, errors.WithMessagef(ErrDimensionMismatch, "got %d, want %d", len(embedding), s.dim)
	}

	var id int64
	query := `INSERT INTO documents (content, embedding) VALUES ($1, $2) RETURNING id`
	if err := s.pool.QueryRow(ctx, query, content, pgvector.NewVector(embedding)).Scan(&id); err != nil {
		return 0, errors.WithMessagef(ErrUnavailable, "insert document: %v", err)
	}

	return id, nil
}

// ListAll returns every stored document with its embedding.
func (s *PostgresStore) ListAll(ctx context.Context) ([]Document, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, content, embedding FROM documents`)
	if err != nil {
		return nil, errors.WithMessagef(ErrUnavailable, "list documents: %v", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			doc Document
			vec pgvector.Vector
		)
		if err := rows.Scan(&doc.ID, &doc.Content, &vec); err != nil {
			return nil, errors.WithMessagef(ErrUnavailable, "scan document: %v", err)
		}
		doc.Embedding = vec.Slice()
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithMessagef(ErrUnavailable, "list documents: %v", err)
	}

	return docs, nil
}

// CreateItem inserts a new item and returns it with the assigned id.
func (s *PostgresStore) CreateItem(ctx context.Context, name, description string) (Item, error) {
	item := Item{Name: name, Description: description}

	query := `INSERT INTO items (name, description) VALUES ($1, $2) RETURNING id`
	if err := s.pool.QueryRow(ctx, query, name, description).Scan(&item.ID); err != nil {
		return Item{}, errors.WithMessagef(ErrUnavailable, "create item: %v", err)
	}

	return item, nil
}

// ListItems returns all items ordered by id.
func (s *PostgresStore) ListItems(ctx context.Context) ([]Item, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, description FROM items ORDER BY id`)
	if err != nil {
		return nil, errors.WithMessagef(ErrUnavailable, "list items: %v", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description); err != nil {
			return nil, errors.WithMessagef(ErrUnavailable, "scan item: %v", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithMessagef(ErrUnavailable, "list items: %v", err)
	}

	return items, nil
}

// DeleteItem removes an item by id. Missing ids fail with ErrItemNotFound.
func (s *PostgresStore) DeleteItem(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return errors.WithMessagef(ErrUnavailable, "delete item %d: %v", id, err)
	}
	if tag.RowsAffected() == 0 {
		return errors.WithMessagef(ErrItemNotFound, "id %d", id)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close(_ context.Context) error {
	s.pool.Close()
	return nil
}
