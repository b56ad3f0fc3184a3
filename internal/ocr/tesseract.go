// Package ocr recognizes text in scanned PDF pages.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Tesseract rasterizes PDF pages with pdftoppm and recognizes each page
// with the tesseract CLI, the same backends the common
// pdf2image/pytesseract stack wraps. The zero value uses the binaries
// from PATH and English.
type Tesseract struct {
	PdftoppmPath  string
	TesseractPath string
	Lang          string
}

// RecognizePDF renders every page of the PDF to a grayscale PNG at the
// given DPI and returns the recognized text per page, in page order.
func (t *Tesseract) RecognizePDF(ctx context.Context, data []byte, dpi int) ([]string, error) {
	dir, err := os.MkdirTemp("", "resumerank-ocr-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pdfPath := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing temp pdf: %w", err)
	}

	// -gray renders single-channel images, which tesseract handles best.
	render := exec.CommandContext(ctx, t.pdftoppm(), "-png", "-gray", "-r", strconv.Itoa(dpi),
		pdfPath, filepath.Join(dir, "page"))
	if out, err := render.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(string(out)))
	}

	// pdftoppm zero-pads page numbers, so lexical order is page order.
	images, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(images)

	pages := make([]string, 0, len(images))
	for _, img := range images {
		var stdout, stderr bytes.Buffer
		recognize := exec.CommandContext(ctx, t.tesseract(), img, "stdout", "-l", t.lang())
		recognize.Stdout = &stdout
		recognize.Stderr = &stderr
		if err := recognize.Run(); err != nil {
			return nil, fmt.Errorf("tesseract %s: %w: %s", filepath.Base(img), err, strings.TrimSpace(stderr.String()))
		}
		pages = append(pages, stdout.String())
	}
	return pages, nil
}

func (t *Tesseract) pdftoppm() string {
	if t.PdftoppmPath != "" {
		return t.PdftoppmPath
	}
	return "pdftoppm"
}

func (t *Tesseract) tesseract() string {
	if t.TesseractPath != "" {
		return t.TesseractPath
	}
	return "tesseract"
}

func (t *Tesseract) lang() string {
	if t.Lang != "" {
		return t.Lang
	}
	return "eng"
}
