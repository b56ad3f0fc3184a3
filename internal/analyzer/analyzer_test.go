package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubEmbedder is a deterministic embedding backend. When vectors has
// an entry for the exact text it is returned, otherwise fixed is.
type stubEmbedder struct {
	vectors map[string][]float32
	fixed   []float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return s.fixed, nil
}

func (s *stubEmbedder) Model() string { return "stub-model" }

type stubOCR struct {
	pages []string
	err   error
}

func (s *stubOCR) RecognizePDF(context.Context, []byte, int) ([]string, error) {
	return s.pages, s.err
}

func newTestAnalyzer(t *testing.T, embedder *stubEmbedder, engine OCR) *Analyzer {
	t.Helper()
	a, err := New(Config{Embedder: embedder, OCR: engine})
	require.NoError(t, err)
	return a
}

func TestNewRequiresEmbedder(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestNewDefaultsOCRDPI(t *testing.T) {
	a, err := New(Config{Embedder: &stubEmbedder{fixed: []float32{1}}})
	require.NoError(t, err)
	require.Equal(t, DefaultOCRDPI, a.ocrDPI)
}
