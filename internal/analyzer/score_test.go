package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJobDescription = "Looking for a Python developer with AWS and Docker experience"

func TestAnalyze(t *testing.T) {
	// Same vector for every text: semantic component is pinned at 100,
	// so the final score isolates the keyword math.
	stub := &stubEmbedder{fixed: []float32{1, 1}}
	a := newTestAnalyzer(t, stub, nil)

	resume := "Experienced Python engineer, used AWS Lambda and Docker containers daily"
	result, err := a.Analyze(context.Background(), resume, testJobDescription)
	require.NoError(t, err)

	// Keywords are {Looking, Python, Docker, Aws}; the resume matches
	// three of four: 0.60*100 + 0.40*75 = 90.0.
	assert.Equal(t, 90.0, result.OverallMatchScore)
	assert.Equal(t, 100.0, result.SemanticRelevance)
	assert.ElementsMatch(t, []string{"Python", "Aws", "Docker"}, result.KeywordsMatched)
	assert.NotEmpty(t, result.MatchedDisplay())
	assert.Equal(t, "Outstanding Match", result.Summary)
	assert.GreaterOrEqual(t, len(result.KeywordsMatched), 3)
	assert.Greater(t, result.OverallMatchScore, 50.0)
}

func TestAnalyzeScoreBounds(t *testing.T) {
	stub := &stubEmbedder{fixed: []float32{1, 1}}
	a := newTestAnalyzer(t, stub, nil)

	// Every keyword matched and full similarity still caps at 100.
	result, err := a.Analyze(context.Background(), "python docker", "Python Docker")
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.OverallMatchScore)
}

// An embedding backend reporting negative cosine for unrelated texts
// must not push any score below zero.
func TestAnalyzeNegativeCosineStaysInBounds(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float32{
		"python developer": {1, 0},
		"unrelated role":   {-1, 0},
	}}
	a := newTestAnalyzer(t, stub, nil)

	result, err := a.Analyze(context.Background(), "Python developer!", "unrelated role")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.OverallMatchScore, 0.0)
	assert.GreaterOrEqual(t, result.SemanticRelevance, 0.0)
	assert.Equal(t, 0.0, result.OverallMatchScore)
	assert.Equal(t, "Unsatisfactory", result.Summary)
}

func TestAnalyzeBlankResume(t *testing.T) {
	stub := &stubEmbedder{err: errors.New("must not be called")}
	a := newTestAnalyzer(t, stub, nil)

	result, err := a.Analyze(context.Background(), "", testJobDescription)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.OverallMatchScore)
	assert.Equal(t, 0.0, result.SemanticRelevance)
	assert.Empty(t, result.KeywordsMatched)
	assert.Equal(t, "Unsatisfactory", result.Summary)
	assert.Equal(t, 0, stub.calls)
}

func TestAnalyzeEmptyJobDescription(t *testing.T) {
	stub := &stubEmbedder{fixed: []float32{1}}
	a := newTestAnalyzer(t, stub, nil)

	result, err := a.Analyze(context.Background(), "some resume text", "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.OverallMatchScore)
	assert.Empty(t, result.KeywordsTotal)
}

func TestAnalyzeEmbedderError(t *testing.T) {
	a := newTestAnalyzer(t, &stubEmbedder{err: errors.New("backend down")}, nil)
	_, err := a.Analyze(context.Background(), "resume", "job")
	require.Error(t, err)
}

// Band boundaries are strict greater-than on the lower bound.
func TestSummaryLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Outstanding Match"},
		{80.1, "Outstanding Match"},
		{80.0, "Strong Match"},
		{65.1, "Strong Match"},
		{65.0, "Moderate Match"},
		{50.1, "Moderate Match"},
		{50.0, "Needs Improvement"},
		{35.1, "Needs Improvement"},
		{35.0, "Unsatisfactory"},
		{0, "Unsatisfactory"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, summaryLabel(tt.score), "summaryLabel(%v)", tt.score)
	}
}
