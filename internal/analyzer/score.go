package analyzer

import (
	"context"
	"math"
	"strings"
)

// MatchResult is the outcome of scoring one resume against one job
// description. Scores are in [0, 100], rounded to one decimal.
type MatchResult struct {
	OverallMatchScore float64  `json:"overall_match_score"`
	KeywordsMatched   []string `json:"keywords_matched"`
	KeywordsTotal     []string `json:"keywords_total"`
	SemanticRelevance float64  `json:"semantic_relevance"`
	Summary           string   `json:"summary"`
}

// Analyze scores a single resume text against the job description:
// embedding similarity weighted against keyword overlap. Blank resume
// text naturally yields zero on both components; callers screening
// batches should skip blank text and substitute a sentinel instead.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (MatchResult, error) {
	cleanResume := NormalizeText(resumeText)

	similarity, err := a.Similarity(ctx, resumeText, jobDescription)
	if err != nil {
		return MatchResult{}, err
	}
	semanticScore := similarity * 100

	keywords := ExtractKeywords(jobDescription, DefaultTopKeywords)
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(cleanResume, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	keywordScore := 0.0
	if len(keywords) > 0 {
		keywordScore = float64(len(matched)) / float64(len(keywords)) * 100
	}

	final := round1(math.Min(SemanticWeight*semanticScore+KeywordWeight*keywordScore, 100))

	return MatchResult{
		OverallMatchScore: final,
		KeywordsMatched:   matched,
		KeywordsTotal:     keywords,
		SemanticRelevance: round1(semanticScore),
		Summary:           summaryLabel(final),
	}, nil
}

// MatchedDisplay joins the matched keywords for tabular display.
func (m MatchResult) MatchedDisplay() string {
	return strings.Join(m.KeywordsMatched, ", ")
}

// summaryLabel bands a final score. Boundaries are strict: 80.0 is
// still "Strong Match".
func summaryLabel(score float64) string {
	switch {
	case score > 80:
		return "Outstanding Match"
	case score > 65:
		return "Strong Match"
	case score > 50:
		return "Moderate Match"
	case score > 35:
		return "Needs Improvement"
	default:
		return "Unsatisfactory"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
