package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases and strips punctuation",
			in:   "Hello, World! (Go)",
			want: "hello world go",
		},
		{
			name: "keeps hyphens",
			in:   "Co-op  Scikit-learn",
			want: "co-op scikit-learn",
		},
		{
			name: "collapses whitespace",
			in:   "a\t b\n\nc",
			want: "a b c",
		},
		{
			name: "punctuation only becomes blank",
			in:   "!!! ... ???",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

// Blank input on either side is 0.0 by definition and must not reach
// the embedding backend.
func TestSimilarityBlankInputs(t *testing.T) {
	stub := &stubEmbedder{err: errors.New("must not be called")}
	a := newTestAnalyzer(t, stub, nil)

	for _, pair := range [][2]string{
		{"", "some job description"},
		{"some resume", ""},
		{"   ", "x"},
		{"x", "!!!"},
	} {
		got, err := a.Similarity(context.Background(), pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	}
	assert.Equal(t, 0, stub.calls)
}

func TestSimilarityUsesNormalizedEmbeddings(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float32{
		"alpha": {1, 0},
		"beta":  {0, 1},
		"gamma": {1, 0},
	}}
	a := newTestAnalyzer(t, stub, nil)

	got, err := a.Similarity(context.Background(), "Alpha!", "Beta?")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-9)

	got, err = a.Similarity(context.Background(), "Alpha!", "Gamma.")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)
}

// Anti-correlated embeddings clamp to the [0, 1] contract instead of
// leaking a negative cosine.
func TestSimilarityClampsNegativeCosine(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float32{
		"alpha": {1, 0},
		"omega": {-1, 0},
	}}
	a := newTestAnalyzer(t, stub, nil)

	got, err := a.Similarity(context.Background(), "Alpha", "Omega")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestSimilarityEmbedderError(t *testing.T) {
	a := newTestAnalyzer(t, &stubEmbedder{err: errors.New("backend down")}, nil)
	_, err := a.Similarity(context.Background(), "resume", "job")
	require.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		x, y []float32
		want float64
	}{
		{name: "parallel", x: []float32{1, 2, 3}, y: []float32{2, 4, 6}, want: 1},
		{name: "orthogonal", x: []float32{1, 0}, y: []float32{0, 1}, want: 0},
		{name: "opposite", x: []float32{1, 0}, y: []float32{-1, 0}, want: -1},
		{name: "zero vector", x: []float32{0, 0}, y: []float32{1, 1}, want: 0},
		{name: "length mismatch", x: []float32{1}, y: []float32{1, 1}, want: 0},
		{name: "empty", x: nil, y: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.x, tt.y), 1e-9)
		})
	}
}
