package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddingsServer(t *testing.T, vector []float64, status int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/embeddings"))

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		resp := map[string]any{
			"object": "list",
			"model":  "nomic-embed-text",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": vector},
			},
			"usage": map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the model vector", func(t *testing.T) {
		srv := embeddingsServer(t, []float64{0.1, 0.2, 0.3}, http.StatusOK)
		defer srv.Close()

		e := NewOpenAIEmbedder(Config{BaseURL: srv.URL, Model: "nomic-embed-text", Dim: 3})

		vector, err := e.Embed(ctx, "hello")
		require.NoError(t, err)
		require.Len(t, vector, 3)
		assert.InDelta(t, 0.1, vector[0], 1e-6)
		assert.InDelta(t, 0.3, vector[2], 1e-6)
	})

	t.Run("server error surfaces as unavailable", func(t *testing.T) {
		srv := embeddingsServer(t, nil, http.StatusInternalServerError)
		defer srv.Close()

		e := NewOpenAIEmbedder(Config{BaseURL: srv.URL, Model: "nomic-embed-text", Dim: 3})

		_, err := e.Embed(ctx, "hello")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("empty response surfaces as unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"object":"list","model":"nomic-embed-text","data":[]}`))
		}))
		defer srv.Close()

		e := NewOpenAIEmbedder(Config{BaseURL: srv.URL, Model: "nomic-embed-text", Dim: 3})

		_, err := e.Embed(ctx, "hello")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := Config{BaseURL: "http://localhost:11434/v1", Model: "nomic-embed-text", Dim: 768}
	require.NoError(t, valid.Validate())

	t.Run("base_url required", func(t *testing.T) {
		cfg := valid
		cfg.BaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("model required", func(t *testing.T) {
		cfg := valid
		cfg.Model = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("dim must be positive", func(t *testing.T) {
		cfg := valid
		cfg.Dim = 0
		assert.Error(t, cfg.Validate())
	})
}
