// Package embedding provides clients for sentence-embedding backends.
package embedding

import (
	"context"
	"fmt"
)

// Embedder generates a fixed-length dense vector for a piece of text.
// Implementations must be safe for concurrent use: one instance is
// shared across all workers for the life of the process.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// Probe runs a single embedding call to verify the backend is usable.
// There is no degraded mode for semantic scoring, so a model that
// cannot be reached must fail startup before any documents are
// processed.
func Probe(ctx context.Context, e Embedder) error {
	if _, err := e.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("embedding model %q unavailable: %w", e.Model(), err)
	}
	return nil
}
