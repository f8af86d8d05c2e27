package extraction

import (
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
)

// TextSegment is one extracted run of document text with the origin
// coordinates and font weight of its first glyph.
type TextSegment struct {
	Content string
	X, Y    float64
	Weight  tokens.FontWeight
}

// String renders the segment in annotated form, property tuple and
// terminator included.
func (s TextSegment) String() string {
	props := tokens.Properties{X: s.X, Y: s.Y, Font: s.Weight}
	return s.Content + props.String() + tokens.Terminator
}

// buildSegments groups positioned text runs, in content order, into
// segments. Runs continue the current segment while the font is unchanged
// and the baseline stays within yTolerance of the current line. Movement
// down by one line and back to the segment's left edge is a text-box line
// wrap (box-wrap marker); movement back up to the segment's origin line resumes the line
// after a text box (tab or comes-before marker, by direction). On one line,
// a gap wider than xTolerance font-size units becomes a tab marker and text
// placed left of the previous run's start becomes a comes-before marker.
func buildSegments(runs []pdf.Text, xTolerance, yTolerance float64) ([]TextSegment, error) {
	var segments []TextSegment
	var current *TextSegment
	var prev pdf.Text
	lineY := 0.0

	terminate := func() {
		if current != nil && current.Content != "" {
			// A trailing box wrap carries no information.
			current.Content = strings.TrimSuffix(current.Content, tokens.BoxWrap)
			segments = append(segments, *current)
		}
		current = nil
	}
	start := func(run pdf.Text) {
		current = &TextSegment{Content: run.S, X: run.X, Y: run.Y, Weight: fontWeight(run.Font)}
		lineY = run.Y
	}

	for _, run := range runs {
		if run.S == "" {
			continue
		}
		if reserved := reservedMarkerIn(run.S); reserved != "" {
			return nil, fmt.Errorf("reserved marker character %q found in document text %q", reserved, run.S)
		}
		if current == nil {
			start(run)
			prev = run
			continue
		}

		dy := run.Y - lineY
		switch {
		case run.Font != prev.Font || run.FontSize != prev.FontSize:
			terminate()
			start(run)
		case dy < -yTolerance && dy > -2*run.FontSize && math.Abs(run.X-current.X) < xTolerance:
			// Left-justified text box wrapping to its next line. A wrap
			// drops a single line; a larger drop is a new segment.
			current.Content += tokens.BoxWrap + run.S
			lineY = run.Y
		case dy > yTolerance && math.Abs(run.Y-current.Y) < yTolerance:
			// Text box ended, cursor back up to the segment's line.
			if run.X < prev.X {
				current.Content += tokens.ComesBefore + run.S
			} else {
				current.Content += tokens.Tab + run.S
			}
			lineY = run.Y
		case math.Abs(dy) > yTolerance:
			terminate()
			start(run)
		case run.X < prev.X:
			current.Content += tokens.ComesBefore + run.S
		case run.X-(prev.X+prev.W) > xTolerance*run.FontSize:
			current.Content += tokens.Tab + run.S
		default:
			current.Content += run.S
		}
		prev = run
	}
	terminate()
	return segments, nil
}

func fontWeight(fontName string) tokens.FontWeight {
	if strings.Contains(strings.ToLower(fontName), "bold") {
		return tokens.FontBold
	}
	return tokens.FontNormal
}

func reservedMarkerIn(s string) string {
	for _, marker := range tokens.SpecialCharacters() {
		if strings.Contains(s, marker) {
			return marker
		}
	}
	return ""
}
