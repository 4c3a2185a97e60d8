package embedding

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"
)

// Package-level singleton instance.
var embedderInstance Embedder

// Init initializes the embedding package with config.
func Init(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	embedderInstance = NewOpenAIEmbedder(cfg)
	return nil
}

// Default returns the configured embedder instance.
func Default() Embedder {
	return embedderInstance
}

// SetDefault replaces the default embedder. Used by the server bootstrap to
// install the cached decorator.
func SetDefault(e Embedder) {
	embedderInstance = e
}

// OpenAIEmbedder calls an OpenAI-compatible embeddings endpoint.
type OpenAIEmbedder struct {
	client openai.Client
	model  string
}

var _ Embedder = (*OpenAIEmbedder)(nil)

// NewOpenAIEmbedder creates an embedder against cfg.BaseURL.
func NewOpenAIEmbedder(cfg Config) *OpenAIEmbedder {
	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &OpenAIEmbedder{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Embed requests a single embedding for text. Transport failures and empty
// responses surface as ErrUnavailable.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, errors.WithMessagef(ErrUnavailable, "%v", err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.WithMessage(ErrUnavailable, "empty embedding response")
	}

	raw := resp.Data[0].Embedding
	vector := make([]float32, len(raw))
	for i, v := range raw {
		vector[i] = float32(v)
	}

	return vector, nil
}
