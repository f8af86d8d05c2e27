// Package grammars defines the two document grammars: the docket sheet
// (entry rule whole_docket) and the docket summary (entry rule
// whole_summary). Both are built from the peg interpreter's rule
// constructors and the tokens vocabulary, and both lean on coordinate-band
// lookahead: section and column identity cannot be determined from text
// alone (the same label text recurs on every page), so rules peek at the
// leading digits of the upcoming property tuple instead.
package grammars

import (
	"regexp"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/peg"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
)

// Coordinate bands. These encode layout assumptions of the source documents
// ("the page header always sits above y=700", "charge rows start in a fixed
// column") and are the most likely point of breakage if the court's report
// layout ever shifts. Keep them named; never inline the digits into a rule.
const (
	// yPageBand matches the y integer prefix of the repeating page
	// header/footer band (y >= 700).
	yPageBand = `7\d{2}`
	// yMidBand matches the conditional section-header band (600 <= y < 700).
	// A bold uppercase segment here is a section header only when the
	// preceding segment is normal-font; directly after another bold segment
	// it is page furniture.
	yMidBand = `6\d{2}`
	// yLowBand matches the unconditional section-header band (y < 600).
	yLowBand = `[0-5]\d{2}`
	// xChargeBand matches the x prefix of docket-sheet charge detail rows
	// (the sequence/description column starts near x=280).
	xChargeBand = `2\d{2}`
	// xSummaryChargeBand matches the x prefix of docket-summary charge rows.
	xSummaryChargeBand = `5\d{2}`
	// xLegalAidBand matches the x prefix of the "LA" financial marker, the
	// only bold segment tolerated inside summary case information.
	xLegalAidBand = `3\d{2}`
)

const (
	anyCoord = `\d{3}`
	anyFont  = `(?:bold|normal)`
)

// propsPattern builds the regex source for a property tuple whose x, y and
// font fields match the given sub-patterns.
func propsPattern(x, y, font string) string {
	return regexp.QuoteMeta(tokens.PropertiesOpen) +
		x + `\.\d{2},` + y + `\.\d{2},` + font +
		regexp.QuoteMeta(tokens.PropertiesClose)
}

// Property-tuple terminals. Each consumes the whole bracketed tuple.
func anyProps() peg.Expr    { return peg.Rx(propsPattern(anyCoord, anyCoord, anyFont)) }
func boldProps() peg.Expr   { return peg.Rx(propsPattern(anyCoord, anyCoord, `bold`)) }
func normalProps() peg.Expr { return peg.Rx(propsPattern(anyCoord, anyCoord, `normal`)) }

// Band-restricted property tuples, used both as terminals and inside
// lookahead predicates.
func topBandBoldProps() peg.Expr { return peg.Rx(propsPattern(anyCoord, yPageBand, `bold`)) }
func midBandBoldProps() peg.Expr { return peg.Rx(propsPattern(anyCoord, yMidBand, `bold`)) }
func lowBandBoldProps() peg.Expr { return peg.Rx(propsPattern(anyCoord, yLowBand, `bold`)) }
func midBandNormalProps() peg.Expr {
	return peg.Rx(propsPattern(anyCoord, yMidBand, `normal`))
}
func chargeBandProps() peg.Expr { return peg.Rx(propsPattern(xChargeBand, anyCoord, anyFont)) }
func summaryChargeBandProps() peg.Expr {
	return peg.Rx(propsPattern(xSummaryChargeBand, anyCoord, `normal`))
}
func legalAidBandProps() peg.Expr { return peg.Rx(propsPattern(xLegalAidBand, anyCoord, `bold`)) }
