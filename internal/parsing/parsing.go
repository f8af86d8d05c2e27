// Package parsing ties the pipeline together: document-type detection,
// page-break preprocessing, grammar selection and semantic reduction.
package parsing

import (
	"fmt"
	"strings"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/extraction"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/grammars"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/peg"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/visitor"
)

// DocumentType selects the grammar and visitor pair for a document.
type DocumentType string

const (
	Docket       DocumentType = "docket"
	CourtSummary DocumentType = "court summary"
)

// DetectDocumentType inspects the second segment of the annotated text,
// which names the report type on both document kinds.
func DetectDocumentType(text string) (DocumentType, error) {
	segments := strings.Split(text, tokens.Terminator)
	if len(segments) < 2 {
		return "", fmt.Errorf("cannot determine document type: fewer than two segments")
	}
	second := strings.ToLower(segments[1])
	switch {
	case strings.Contains(second, "docket"):
		return Docket, nil
	case strings.Contains(second, "court summary"):
		return CourtSummary, nil
	}
	return "", fmt.Errorf("cannot determine document type from segment %q", segments[1])
}

// Parse parses annotated text as the given document type and reduces the
// tree into a record. Court summaries are stripped of page breaks first;
// docket sheets carry a page-break rule in their grammar instead.
func Parse(text string, docType DocumentType) (visitor.Record, error) {
	var g *peg.Grammar
	var v *visitor.Visitor
	switch docType {
	case Docket:
		g, v = grammars.Docket(), visitor.Docket()
	case CourtSummary:
		text = RemoveSummaryPageBreaks(text)
		g, v = grammars.Summary(), visitor.Summary()
	default:
		return nil, fmt.Errorf("unknown document type %q", docType)
	}
	tree, err := g.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", docType, err)
	}
	value, err := v.Visit(tree)
	if err != nil {
		return nil, fmt.Errorf("reducing %s parse tree: %w", docType, err)
	}
	record, ok := value.(visitor.Record)
	if !ok {
		return nil, fmt.Errorf("reduction produced %T, not a record", value)
	}
	return record, nil
}

// ParseDocument detects the document type, then parses.
func ParseDocument(text string) (visitor.Record, DocumentType, error) {
	docType, err := DetectDocumentType(text)
	if err != nil {
		return nil, "", err
	}
	record, err := Parse(text, docType)
	return record, docType, err
}

// ParsePDF extracts annotated text from the PDF at path and parses it.
func ParsePDF(path string) (visitor.Record, DocumentType, error) {
	text, err := extraction.ExtractFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("extracting %s: %w", path, err)
	}
	return ParseDocument(text)
}
