package parsing

import (
	"regexp"
	"strings"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
)

// Court summary page breaks run from a "Printed:" footer line through the
// last "(Continued)" header line of the next page. Removing them up front
// keeps the summary grammar free of page-break rules.
var (
	notPropsOpen  = "[^" + regexp.QuoteMeta(tokens.PropertiesOpen) + "]*"
	notPropsClose = "[^" + regexp.QuoteMeta(tokens.PropertiesClose) + "]*"
	propsRegex    = regexp.QuoteMeta(tokens.PropertiesOpen) + notPropsClose +
		regexp.QuoteMeta(tokens.PropertiesClose)
	boldPropsRegex = regexp.QuoteMeta(tokens.PropertiesOpen) + notPropsClose +
		"bold" + regexp.QuoteMeta(tokens.PropertiesClose)

	printedDateLine = regexp.MustCompile(
		`^Printed:\s*\d{1,2}/\d{1,2}/\d{4}` + notPropsOpen + propsRegex)
	continuationLine = regexp.MustCompile(
		`^` + notPropsOpen + `\(Continued\)` + boldPropsRegex)
	// "(Continued)" rendered in a text box wraps onto the content below it.
	continuationTextbox = regexp.MustCompile(
		`^` + notPropsOpen + `\(Continued\)` + regexp.QuoteMeta(tokens.BoxWrap) +
			notPropsOpen + boldPropsRegex)
)

// RemoveSummaryPageBreaks drops every segment run between a "Printed:" date
// line and the last "(Continued)" line that follows it. Content wrapped into
// a "(Continued)" text box is spliced back in after the break.
func RemoveSummaryPageBreaks(text string) string {
	lines := strings.Split(text, tokens.Terminator)
	out := []string{lines[0]}
	inPageBreak := false
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		switch {
		case inPageBreak:
			if continuationLine.MatchString(lines[i-1]) && !continuationLine.MatchString(line) {
				inPageBreak = false
				if continuationTextbox.MatchString(line) {
					_, post, _ := strings.Cut(line, tokens.BoxWrap)
					out = append(out, post)
				} else {
					out = append(out, line)
				}
			}
		case printedDateLine.MatchString(line):
			inPageBreak = true
		default:
			out = append(out, line)
		}
	}
	if out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, tokens.Terminator) + tokens.Terminator
}
