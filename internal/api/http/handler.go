package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"docstore/internal/corpus"
	"docstore/internal/domain"
	"docstore/pkg/embedding"
	"docstore/pkg/log"
	"docstore/pkg/storage"
)

// Handler handles HTTP API requests
type Handler struct {
	logger *slog.Logger
	corpus *corpus.Corpus
	items  storage.ItemStore
}

// NewHandler creates a new HTTP handler
func NewHandler(corpus *corpus.Corpus, items storage.ItemStore) *Handler {
	return &Handler{
		logger: log.Logger("http.handler"),
		corpus: corpus,
		items:  items,
	}
}

// Response represents a standard API response
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Document operations
	mux.HandleFunc("POST /api/v1/documents/add", h.AddDocument)
	mux.HandleFunc("POST /api/v1/documents/search", h.SearchDocuments)

	// Item CRUD
	mux.HandleFunc("POST /api/v1/items", h.CreateItem)
	mux.HandleFunc("GET /api/v1/items", h.ListItems)
	mux.HandleFunc("DELETE /api/v1/items/{id}", h.DeleteItem)

	// Health check
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// AddDocument handles POST /api/v1/documents/add
func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	var req domain.AddDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Content == "" {
		h.writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	id, err := h.corpus.Ingest(r.Context(), req.Content)
	if err != nil {
		h.logger.Error("ingest failed", "error", err)
		h.writeError(w, statusFromError(err), err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    domain.AddDocumentResponse{ID: id},
	})
}

// SearchDocuments handles POST /api/v1/documents/search
func (h *Handler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	results, err := h.corpus.Search(r.Context(), req.Query, req.K)
	if err != nil {
		h.logger.Error("search failed", "error", err)
		h.writeError(w, statusFromError(err), err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    results,
	})
}

// CreateItem handles POST /api/v1/items
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	item, err := h.items.CreateItem(r.Context(), req.Name, req.Description)
	if err != nil {
		h.logger.Error("create item failed", "error", err)
		h.writeError(w, statusFromError(err), err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// ListItems handles GET /api/v1/items
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.ListItems(r.Context())
	if err != nil {
		h.logger.Error("list items failed", "error", err)
		h.writeError(w, statusFromError(err), err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// DeleteItem handles DELETE /api/v1/items/{id}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.items.DeleteItem(r.Context(), id); err != nil {
		h.logger.Error("delete item failed", "id", id, "error", err)
		h.writeError(w, statusFromError(err), err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]int64{"deleted": id},
	})
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]string{
			"status": "healthy",
		},
	})
}

// statusFromError maps the error taxonomy to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, storage.ErrDimensionMismatch):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, embedding.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, storage.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}
