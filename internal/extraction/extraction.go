// Package extraction converts the positioned text of a court PDF into the
// annotated input format consumed by the grammars: one line per text
// segment, in-segment spacing markers, and a trailing property tuple with
// the segment's origin coordinates and font weight.
package extraction

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// expectedCreator is the report generator these document layouts come from.
// Other producers may place text differently and are worth a warning.
const expectedCreator = "Crystal Reports"

// Extractor reads court PDFs into annotated text.
type Extractor struct {
	// XTolerance is the horizontal threshold, in font-size units, beyond
	// which a positioning gap becomes a tab marker. It is also the raw
	// distance from a segment's left edge within which a downward move
	// counts as a text-box wrap.
	XTolerance float64
	// YTolerance is the vertical threshold, in text-space units, within
	// which two baselines count as the same line.
	YTolerance float64
	// MaxFileSize rejects larger files before reading. Zero disables the
	// check.
	MaxFileSize int64
}

// NewExtractor returns an extractor with the default tolerances.
func NewExtractor() *Extractor {
	return &Extractor{XTolerance: 0.3, YTolerance: 1}
}

// ExtractFile reads the PDF at path with default tolerances and returns its
// annotated text.
func ExtractFile(path string) (string, error) {
	return NewExtractor().Extract(path)
}

// Extract reads the PDF at path and returns its annotated text, all pages
// concatenated in order.
func (e *Extractor) Extract(path string) (string, error) {
	if e.MaxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("stat pdf: %w", err)
		}
		if info.Size() > e.MaxFileSize {
			return "", fmt.Errorf("pdf is %d bytes, larger than the %d byte limit", info.Size(), e.MaxFileSize)
		}
	}
	e.checkCreator(path)

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		segments, err := buildSegments(page.Content().Text, e.XTolerance, e.YTolerance)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageNum, err)
		}
		for _, segment := range segments {
			b.WriteString(segment.String())
		}
	}
	return b.String(), nil
}

// checkCreator warns when the document does not come from the report
// generator these layouts are calibrated for. Metadata trouble is never
// fatal; the parse itself decides whether the layout holds.
func (e *Extractor) checkCreator(path string) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		log.Printf("warning: cannot read pdf metadata from %s: %v", path, err)
		return
	}
	if err := api.ValidateContext(ctx); err != nil {
		log.Printf("warning: pdf metadata validation failed for %s: %v", path, err)
		return
	}
	if ctx.Creator != expectedCreator {
		log.Printf("warning: expected a %s document, found creator %q (producer %q)",
			expectedCreator, ctx.Creator, ctx.Producer)
	}
}
