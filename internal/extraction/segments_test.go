package extraction

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
)

func run(s string, x, y, w float64, font string) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, Font: font, FontSize: 10}
}

func contents(segments []TextSegment) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = s.Content
	}
	return out
}

func TestBuildSegmentsJoinsAdjacentRuns(t *testing.T) {
	segments, err := buildSegments([]pdf.Text{
		run("Docket", 10, 700, 30, "Arial"),
		run(" Number:", 40.1, 700, 40, "Arial"),
	}, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Docket Number:"}, contents(segments))
}

func TestBuildSegmentsInsertsTabOnWideGap(t *testing.T) {
	// The gap is 5 text-space units against a threshold of 0.3*10.
	segments, err := buildSegments([]pdf.Text{
		run("Grand Totals:", 10, 700, 60, "Arial"),
		run("$1,234.56", 75, 700, 40, "Arial"),
	}, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Grand Totals:" + tokens.Tab + "$1,234.56"}, contents(segments))
}

func TestBuildSegmentsInsertsComesBeforeOnLeftwardText(t *testing.T) {
	segments, err := buildSegments([]pdf.Text{
		run("second", 100, 700, 30, "Arial"),
		run("first", 20, 700, 25, "Arial"),
	}, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"second" + tokens.ComesBefore + "first"}, contents(segments))
}

func TestBuildSegmentsSplitsOnNewLine(t *testing.T) {
	segments, err := buildSegments([]pdf.Text{
		run("line one", 10, 700, 40, "Arial"),
		run("line two", 10, 688, 40, "Arial"),
	}, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"line one", "line two"}, contents(segments))
}

func TestBuildSegmentsMarksTextBoxWrap(t *testing.T) {
	// Downward movement back to the segment's left edge continues the same
	// logical field on the text box's next line.
	segments, err := buildSegments([]pdf.Text{
		run("123 Main St", 10, 700, 50, "Arial"),
		run("Philadelphia, PA", 10.1, 688, 70, "Arial"),
	}, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"123 Main St" + tokens.BoxWrap + "Philadelphia, PA"}, contents(segments))
}

func TestBuildSegmentsResumesLineAfterTextBox(t *testing.T) {
	// After a wrapped text box the cursor moves back up to the segment's
	// origin line; direction decides the marker.
	segments, err := buildSegments([]pdf.Text{
		run("Charge", 10, 700, 30, "Arial"),
		run("wrapped", 10.1, 688, 35, "Arial"),
		run("Grade", 80, 700, 25, "Arial"),
	}, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Charge" + tokens.BoxWrap + "wrapped" + tokens.Tab + "Grade"}, contents(segments))
}

func TestBuildSegmentsLargeDropIsNotAWrap(t *testing.T) {
	// Same left edge, but the drop spans several lines: a new segment, not
	// a text-box wrap.
	segments, err := buildSegments([]pdf.Text{
		run("first block", 10, 700, 40, "Arial"),
		run("second block", 10, 640, 50, "Arial"),
	}, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"first block", "second block"}, contents(segments))
}

func TestBuildSegmentsSplitsOnFontChange(t *testing.T) {
	segments, err := buildSegments([]pdf.Text{
		run("DOB:", 10, 700, 20, "Arial-BoldMT"),
		run("01/15/2000", 31, 700, 45, "Arial"),
	}, 0.3, 1)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, tokens.FontBold, segments[0].Weight)
	assert.Equal(t, tokens.FontNormal, segments[1].Weight)
}

func TestBuildSegmentsRejectsReservedMarkers(t *testing.T) {
	for _, marker := range tokens.SpecialCharacters() {
		_, err := buildSegments([]pdf.Text{
			run("bad"+marker+"text", 10, 700, 40, "Arial"),
		}, 0.3, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reserved marker character")
	}
}

func TestBuildSegmentsSkipsEmptyRuns(t *testing.T) {
	segments, err := buildSegments([]pdf.Text{
		run("", 10, 700, 0, "Arial"),
		run("text", 10, 700, 20, "Arial"),
	}, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"text"}, contents(segments))
}

func TestFontWeight(t *testing.T) {
	assert.Equal(t, tokens.FontBold, fontWeight("Arial-BoldMT"))
	assert.Equal(t, tokens.FontBold, fontWeight("TIMES BOLD"))
	assert.Equal(t, tokens.FontNormal, fontWeight("Arial"))
}

func TestSegmentString(t *testing.T) {
	s := TextSegment{Content: "Court Summary", X: 300, Y: 760.5, Weight: tokens.FontBold}
	assert.Equal(t, "Court Summary[300.00,760.50,bold]\n", s.String())
}

func TestNewExtractorDefaults(t *testing.T) {
	e := NewExtractor()
	assert.Equal(t, 0.3, e.XTolerance)
	assert.Equal(t, 1.0, e.YTolerance)
	assert.Zero(t, e.MaxFileSize)
}

func TestExtractRejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.pdf")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

	e := NewExtractor()
	e.MaxFileSize = 16
	_, err := e.Extract(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "byte limit")
}
