// Package tokens defines the in-band marker characters and segment property
// tuples shared by the text extractor and the document grammars.
//
// Extracted text is a sequence of segments. Each segment carries literal
// document text, optional in-segment separators, and a trailing property
// tuple "[xxx.xx,yyy.yy,font]" immediately before its terminator. The marker
// characters below are reserved: they never occur in document text (the
// extractor rejects any document whose fonts can produce them).
package tokens

import (
	"fmt"
	"regexp"
	"strings"
)

// Reserved marker characters inserted by the extractor.
const (
	// Terminator ends every segment.
	Terminator = "\n"
	// Tab separates two values on the same line with meaningful horizontal
	// spacing between them.
	Tab = "_"
	// ComesBefore separates two adjacent values sharing a line without a tab,
	// where the second was placed to the left of the first's start.
	ComesBefore = "|"
	// PropertiesOpen and PropertiesClose bracket a segment's property tuple.
	PropertiesOpen  = "["
	PropertiesClose = "]"
	// BoxWrap marks a single logical field whose text wrapped across multiple
	// lines inside a text box.
	BoxWrap = "^"
)

// FontWeight distinguishes header/label text from content text.
type FontWeight string

const (
	FontBold   FontWeight = "bold"
	FontNormal FontWeight = "normal"
)

// Properties is the positional and font metadata attached to a segment. X and
// Y are PDF user-space coordinates of the segment's text baseline origin.
type Properties struct {
	X    float64
	Y    float64
	Font FontWeight
}

// String renders the tuple in the exact form the grammars expect:
// "[xxx.xx,yyy.yy,font]" with zero-padded three-digit integer parts.
func (p Properties) String() string {
	return PropertiesOpen + fmt.Sprintf("%06.2f,%06.2f,%s", p.X, p.Y, p.Font) + PropertiesClose
}

// SpecialCharacters returns every reserved marker character.
func SpecialCharacters() []string {
	return []string{Tab, Terminator, PropertiesOpen, PropertiesClose, ComesBefore, BoxWrap}
}

// ContentPattern returns a regular expression fragment matching any single
// character that is not a reserved marker, i.e. a character of document text.
func ContentPattern() string {
	return "[^" + regexp.QuoteMeta(strings.Join(SpecialCharacters(), "")) + "]"
}

// StripMarkers removes in-segment separators from matched text and trims
// surrounding whitespace, leaving only document text. Box wraps splice the
// wrapped halves back together; tabs and comes-before markers become single
// spaces. Reducers use this when a field value may span a separator that
// carries no meaning for the value.
func StripMarkers(s string) string {
	r := strings.NewReplacer(Tab, " ", ComesBefore, " ", BoxWrap, "")
	return strings.TrimSpace(r.Replace(s))
}
