// Package analyzer is the resume screening engine: text extraction with
// OCR fallback, contact-field extraction, keyword extraction from job
// descriptions, embedding-based semantic similarity and the weighted
// scoring and ranking on top of them.
package analyzer

import (
	"errors"

	"go.uber.org/zap"

	"github.com/prabinkarki/resumerank/internal/embedding"
)

const (
	// SemanticWeight and KeywordWeight combine the two score components.
	// Tunable, but 60/40 is the shipped behavior.
	SemanticWeight = 0.60
	KeywordWeight  = 0.40

	// DefaultTopKeywords caps the keyword set taken from a job description.
	DefaultTopKeywords = 30

	// DefaultOCRDPI is the render resolution for the OCR fallback.
	DefaultOCRDPI = 200
)

// Analyzer scores resumes against a job description. The embedder is
// expensive to initialize, so one instance is created per process and
// shared; the Analyzer keeps no per-document state, which makes it safe
// for concurrent use by multiple workers.
type Analyzer struct {
	embedder embedding.Embedder
	ocr      OCR
	logger   *zap.Logger
	ocrDPI   int
}

// Config carries the analyzer dependencies. Embedder is required;
// without an OCR engine scanned PDFs degrade to empty text.
type Config struct {
	Embedder embedding.Embedder
	OCR      OCR
	Logger   *zap.Logger
	OCRDPI   int
}

func New(cfg Config) (*Analyzer, error) {
	if cfg.Embedder == nil {
		return nil, errors.New("analyzer: embedder is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.OCRDPI <= 0 {
		cfg.OCRDPI = DefaultOCRDPI
	}
	return &Analyzer{
		embedder: cfg.Embedder,
		ocr:      cfg.OCR,
		logger:   cfg.Logger,
		ocrDPI:   cfg.OCRDPI,
	}, nil
}
