// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package loader opens a PDF document and exposes its pages as plain text.
package loader

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/specdex/pkg/types"
)

// ErrInvalidPDF marks container-level failures: the file exists and is
// readable but is not a usable PDF.
var ErrInvalidPDF = errors.New("not a valid PDF")

// Document is a loaded PDF with one extracted text string per page.
type Document struct {
	// Title is the file base name without extension.
	Title string

	// Path is the source file path.
	Path string

	// Pages holds extracted text, index 0 = page 1. A page that fails
	// text extraction holds an empty string.
	Pages []string
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Page returns the text of the 1-based page n, or "" when out of range.
func (d *Document) Page(n int) string {
	if n < 1 || n > len(d.Pages) {
		return ""
	}
	return d.Pages[n-1]
}

// Open loads the PDF at path and extracts text for every page. Text
// extraction is best-effort: a page whose content cannot be decoded is
// left empty rather than failing the load. All file handles are closed
// before Open returns, on success and on error.
func Open(path string, cfg types.LoaderConfig) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPDF, path, err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("%w: %s: zero pages", ErrInvalidPDF, path)
	}

	doc := &Document{
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:  path,
	}

	pages, nerr := extractNative(path, pageCount)
	if nerr != nil || allBlank(pages) {
		if cfg.FallbackPdftotext {
			if fallback, ferr := extractPdftotext(path, pageCount); ferr == nil {
				doc.Pages = fallback
				return doc, nil
			}
		}
		if nerr != nil {
			return nil, fmt.Errorf("extracting text from %s: %w", path, nerr)
		}
	}

	doc.Pages = pages
	return doc, nil
}

// extractNative pulls per-page text with the pure-Go PDF reader.
func extractNative(path string, pageCount int) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := make([]string, pageCount)
	for i := 1; i <= pageCount && i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages[i-1] = text
	}
	return pages, nil
}

// extractPdftotext shells out to pdftotext, which emits form feeds as
// page separators.
func extractPdftotext(path string, pageCount int) ([]string, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	split := strings.Split(string(out), "\f")
	pages := make([]string, pageCount)
	for i := 0; i < len(split) && i < pageCount; i++ {
		pages[i] = split[i]
	}
	return pages, nil
}

func allBlank(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return len(pages) > 0
}
