package domain

import "time"

// DefaultTopK is the number of results returned when a search request omits k.
const DefaultTopK = 3

// TopicDocumentIngested carries one DocumentIngested event per stored document.
const TopicDocumentIngested = "documents.ingested"

// CreateItemRequest is the body of POST /api/v1/items.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddDocumentRequest is the body of POST /api/v1/documents/add.
type AddDocumentRequest struct {
	Content string `json:"content"`
}

// AddDocumentResponse returns the id assigned to an ingested document.
type AddDocumentResponse struct {
	ID int64 `json:"id"`
}

// SearchRequest is the body of POST /api/v1/documents/search. K defaults to
// DefaultTopK when omitted or non-positive.
type SearchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
}

// DocumentIngested is published after a document and its embedding are
// committed. Publishing is best-effort and never rolls back the insert.
type DocumentIngested struct {
	EventID      string    `json:"event_id"`
	DocumentID   int64     `json:"document_id"`
	ContentBytes int       `json:"content_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}
