package grammars

import (
	"regexp"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/peg"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
)

// Text-class regex fragments. Content text excludes every reserved marker;
// line text additionally admits the in-segment separators (tab, comes-before,
// box-wrap) so a whole line can be skipped in one terminal.
var (
	contentChar = tokens.ContentPattern()
	lineChar    = "[^" + regexp.QuoteMeta(
		tokens.Terminator+tokens.PropertiesOpen+tokens.PropertiesClose) + "]"
)

const datePattern = `\d{1,2}/\d{1,2}/\d{4}`

// moneyPattern matches "$1,234.56" and the parenthesized negative form
// "($ 123.45)".
const moneyPattern = `\(\$ ?[\d,]+\.\d{2}\)|\$[\d,]+\.\d{2}`

func terminator() peg.Expr { return peg.Lit(tokens.Terminator) }
func tab() peg.Expr        { return peg.Lit(tokens.Tab) }
func comesBefore() peg.Expr { return peg.Lit(tokens.ComesBefore) }
func boxWrap() peg.Expr    { return peg.Lit(tokens.BoxWrap) }

// ws matches optional spaces between a field label and its value.
func ws() peg.Expr { return peg.Rx(` *`) }

// lineText consumes the remainder of a segment's text up to its property
// tuple, separators included.
func lineText() peg.Expr { return peg.Rx(lineChar + `*`) }

// restOfLine consumes whatever is left of the current segment: trailing
// text, the property tuple, and the terminator.
func restOfLine() peg.Expr { return peg.Seq(lineText(), anyProps(), terminator()) }

// Whole-segment helpers.
func anySegment() peg.Expr    { return peg.Seq(lineText(), anyProps(), terminator()) }
func boldSegment() peg.Expr   { return peg.Seq(lineText(), boldProps(), terminator()) }
func normalSegment() peg.Expr { return peg.Seq(lineText(), normalProps(), terminator()) }

// labeled builds the common shape of a field segment: a literal label,
// optional spacing, a named value rule, and the rest of the line.
func labeled(label string, valueRule string) peg.Expr {
	return peg.Seq(peg.Lit(label), ws(), peg.Ref(valueRule), restOfLine())
}
