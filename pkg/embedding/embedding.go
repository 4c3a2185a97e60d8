// Package embedding provides the text embedding capability: mapping a text
// string to a fixed-length vector through an external model.
package embedding

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnavailable indicates the embedding computation failed: model
// unreachable, timed out, or returned a malformed response. The operation
// that needed the vector is aborted; nothing is written.
var ErrUnavailable = errors.New("embedding unavailable")

// Embedder maps a text string to a fixed-dimension vector. Deterministic for
// a given model version.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config holds embedding provider configuration. BaseURL points at any
// OpenAI-compatible endpoint; Ollama serves one at /v1.
type Config struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Dim     int    `toml:"dim"`
}

// Validate checks embedding configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Dim <= 0 {
		return fmt.Errorf("dim must be positive")
	}
	return nil
}
