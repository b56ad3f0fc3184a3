package analyzer

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	punctRe      = regexp.MustCompile(`[^\w\s\-]`)
)

// NormalizeText lowercases, strips punctuation (word characters,
// whitespace and hyphens survive) and collapses whitespace runs. Resume
// and job-description text go through the same normalization so scores
// stay comparable across calls.
func NormalizeText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = punctRe.ReplaceAllString(text, "")
	return strings.TrimSpace(strings.ToLower(text))
}

// Similarity returns the cosine similarity of the two texts' embeddings
// in [0, 1]. A blank input on either side is defined as 0.0 and makes
// no embedding call.
func (a *Analyzer) Similarity(ctx context.Context, textA, textB string) (float64, error) {
	textA = NormalizeText(textA)
	textB = NormalizeText(textB)
	if textA == "" || textB == "" {
		return 0, nil
	}

	vecA, err := a.embedder.Embed(ctx, textA)
	if err != nil {
		return 0, fmt.Errorf("embedding first text: %w", err)
	}
	vecB, err := a.embedder.Embed(ctx, textB)
	if err != nil {
		return 0, fmt.Errorf("embedding second text: %w", err)
	}
	// Cosine can be negative for unrelated texts; the contract is [0, 1].
	return math.Max(0, cosineSimilarity(vecA, vecB)), nil
}

func cosineSimilarity(x, y []float32) float64 {
	if len(x) == 0 || len(x) != len(y) {
		return 0
	}
	var dot, xx, yy float64
	for i := range x {
		dot += float64(x[i]) * float64(y[i])
		xx += float64(x[i]) * float64(x[i])
		yy += float64(y[i]) * float64(y[i])
	}
	if xx == 0 || yy == 0 {
		return 0
	}
	return dot / (math.Sqrt(xx) * math.Sqrt(yy))
}
