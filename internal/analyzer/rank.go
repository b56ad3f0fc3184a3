package analyzer

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// SentinelSummary tags entries for documents that produced no text.
const SentinelSummary = "No content detected"

// Document is one resume to screen: the raw buffer plus its declared
// format. Err records an upstream fetch failure; such a document still
// produces a sentinel entry so every input yields exactly one output.
type Document struct {
	Name   string
	Format Format
	Data   []byte
	Err    error
}

// RankedEntry is one row of the screening table: match result, contact
// profile and the assigned rank.
type RankedEntry struct {
	FileName string           `json:"file_name"`
	Profile  CandidateProfile `json:"profile"`
	MatchResult
	Rank          int    `json:"rank"`
	IsErrorResult bool   `json:"is_error_result"`
	Error         string `json:"error,omitempty"`
}

// Rank screens every document against the job description and returns
// the entries sorted by overall score descending, with ranks assigned
// 1..N. Equal scores keep their input order and still receive distinct
// consecutive ranks. A document that cannot be read or yields no text
// becomes an error-tagged zero-score entry; it never halts the batch.
func (a *Analyzer) Rank(ctx context.Context, docs []Document, jobDescription string) []RankedEntry {
	entries := make([]RankedEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, a.screen(ctx, doc, jobDescription))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OverallMatchScore > entries[j].OverallMatchScore
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (a *Analyzer) screen(ctx context.Context, doc Document, jobDescription string) RankedEntry {
	if doc.Err != nil {
		a.logger.Warn("skipping unreadable document", zap.String("file", doc.Name), zap.Error(doc.Err))
		return sentinelEntry(doc.Name, "document fetch error: "+doc.Err.Error())
	}

	text := a.Extract(ctx, doc.Data, doc.Format)
	if strings.TrimSpace(text) == "" {
		a.logger.Warn("no text extracted", zap.String("file", doc.Name))
		return sentinelEntry(doc.Name, "no text extracted")
	}

	profile := ExtractFields(text)
	profile.FileName = doc.Name

	result, err := a.Analyze(ctx, text, jobDescription)
	if err != nil {
		a.logger.Warn("analysis failed", zap.String("file", doc.Name), zap.Error(err))
		entry := sentinelEntry(doc.Name, err.Error())
		entry.Summary = "Processing failed"
		entry.Profile = profile
		return entry
	}

	return RankedEntry{
		FileName:    doc.Name,
		Profile:     profile,
		MatchResult: result,
	}
}

func sentinelEntry(name, errMsg string) RankedEntry {
	profile := ExtractFields("")
	profile.FileName = name
	return RankedEntry{
		FileName:      name,
		Profile:       profile,
		MatchResult:   MatchResult{Summary: SentinelSummary},
		IsErrorResult: true,
		Error:         errMsg,
	}
}
