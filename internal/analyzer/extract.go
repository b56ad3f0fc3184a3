package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

// Format tags the document encoding of a resume buffer.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
)

// OCR recognizes text in the pages of a rasterized PDF. Implementations
// return one string per page, in page order.
type OCR interface {
	RecognizePDF(ctx context.Context, data []byte, dpi int) ([]string, error)
}

// Extract turns a raw document buffer into plain text. It never fails:
// unsupported formats, corrupt files and missing OCR backends all
// degrade to an empty string with a logged warning, so one bad file
// cannot halt a batch.
func (a *Analyzer) Extract(ctx context.Context, data []byte, format Format) string {
	if len(data) == 0 {
		a.logger.Warn("empty document buffer")
		return ""
	}
	switch format {
	case FormatPDF:
		return a.extractPDF(ctx, data)
	case FormatDocx:
		return a.extractDocx(data)
	default:
		a.logger.Warn("unsupported document format", zap.String("format", string(format)))
		return ""
	}
}

func (a *Analyzer) extractPDF(ctx context.Context, data []byte) string {
	text, err := pdfLayerText(data)
	if err != nil {
		a.logger.Warn("pdf text extraction failed", zap.Error(err))
		return ""
	}
	if strings.TrimSpace(text) != "" {
		a.logger.Debug("extracted pdf text layer", zap.Int("chars", len(text)))
		return text
	}
	a.logger.Info("no text layer in pdf, trying ocr")
	return a.extractOCR(ctx, data)
}

func pdfLayerText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		if strings.TrimSpace(text) != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// extractOCR renders each pdf page to a grayscale raster and runs the
// OCR engine over it. Pages with no recognized text are skipped.
func (a *Analyzer) extractOCR(ctx context.Context, data []byte) string {
	if a.ocr == nil {
		a.logger.Warn("no ocr engine configured, skipping scanned pdf")
		return ""
	}
	pages, err := a.ocr.RecognizePDF(ctx, data, a.ocrDPI)
	if err != nil {
		a.logger.Warn("ocr failed", zap.Error(err))
		return ""
	}
	var b strings.Builder
	for i, pageText := range pages {
		if strings.TrimSpace(pageText) == "" {
			a.logger.Debug("ocr found no text on page", zap.Int("page", i+1))
			continue
		}
		fmt.Fprintf(&b, "Page %d:\n%s\n\n", i+1, pageText)
	}
	return strings.TrimSpace(b.String())
}

func (a *Analyzer) extractDocx(data []byte) string {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		a.logger.Warn("docx extraction failed", zap.Error(err))
		return ""
	}
	defer doc.Close()

	paragraphs := docxParagraphs(doc.Editable().GetContent())
	text := strings.Join(paragraphs, "\n")
	a.logger.Debug("extracted docx text", zap.Int("chars", len(text)))
	return text
}

var (
	docxParaRe = regexp.MustCompile(`(?s)<w:p[ >].*?</w:p>`)
	xmlTagRe   = regexp.MustCompile(`<[^>]+>`)
)

// docxParagraphs pulls the non-blank paragraph texts out of the raw
// document.xml content.
func docxParagraphs(content string) []string {
	var paragraphs []string
	for _, p := range docxParaRe.FindAllString(content, -1) {
		text := html.UnescapeString(xmlTagRe.ReplaceAllString(p, ""))
		if strings.TrimSpace(text) != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs
}
