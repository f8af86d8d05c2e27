package grammars

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/peg"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
)

// seg renders one annotated segment the way the extractor would.
func seg(text string, x, y float64, font tokens.FontWeight) string {
	props := tokens.Properties{X: x, Y: y, Font: font}
	return text + props.String() + tokens.Terminator
}

// findNodes collects every node with the given rule name, in document order.
func findNodes(n *peg.Node, name string) []*peg.Node {
	var out []*peg.Node
	if n.Name == name {
		out = append(out, n)
	}
	for _, child := range n.Children {
		out = append(out, findNodes(child, name)...)
	}
	return out
}

func docketFixture() string {
	var b strings.Builder
	b.WriteString(seg("CRIMINAL DOCKET", 100, 750, tokens.FontBold))
	b.WriteString(seg("Docket Number: CP-51-CR-0001234-2020", 123.45, 740, tokens.FontBold))
	b.WriteString(seg("Commonwealth of Pennsylvania", 250, 660, tokens.FontBold))
	b.WriteString(seg("v.", 250, 650, tokens.FontBold))
	b.WriteString(seg("John Doe", 250, 640, tokens.FontBold))
	b.WriteString(seg("CASE INFORMATION", 100, 580, tokens.FontBold))
	b.WriteString(seg("Judge Assigned: Smith, Jane", 100, 560, tokens.FontNormal))
	b.WriteString(seg("OTN: U 1234567", 100, 550, tokens.FontNormal))
	b.WriteString(seg("STATUS INFORMATION", 100, 540, tokens.FontBold))
	b.WriteString(seg("Case Status: Closed", 100, 530, tokens.FontNormal))
	b.WriteString(seg("Complaint Date: 01/15/2020", 100, 520, tokens.FontNormal))
	b.WriteString(seg("DEFENDANT INFORMATION", 100, 500, tokens.FontBold))
	b.WriteString(seg("Date of Birth: 02/29/2000", 100, 480, tokens.FontNormal))
	b.WriteString(seg("Alias Name", 100, 470, tokens.FontBold))
	b.WriteString(seg("JOHNNY DOE", 100, 460, tokens.FontNormal))
	b.WriteString(seg("DISPOSITION SENTENCING/PENALTIES", 100, 440, tokens.FontBold))
	b.WriteString(seg("Guilty Plea", 100, 420, tokens.FontBold))
	b.WriteString(seg("Guilty Plea_03/15/2021_Final Disposition", 100, 400, tokens.FontNormal))
	b.WriteString(seg("1_Criminal Mischief_M2_18 § 3304", 280.5, 380, tokens.FontNormal))
	b.WriteString(seg("Guilty_M2_18 § 3304", 280.5, 370, tokens.FontNormal))
	b.WriteString(seg("CASE FINANCIAL INFORMATION", 100, 350, tokens.FontBold))
	b.WriteString(seg("Grand Totals:_$1,234.56_$500.00_($ 34.56)_$0.00_$700.00", 100, 330, tokens.FontNormal))
	return b.String()
}

func summaryFixture() string {
	var b strings.Builder
	b.WriteString(seg("First Judicial District", 300, 770, tokens.FontBold))
	b.WriteString(seg("Court Summary", 300, 760, tokens.FontBold))
	b.WriteString(seg("Doe, John", 50, 690, tokens.FontBold))
	b.WriteString(seg("123 Main St^Philadelphia, PA 19107", 50, 685, tokens.FontNormal))
	b.WriteString(seg("Aliases:", 50, 680, tokens.FontNormal))
	b.WriteString(seg("Johnny Doe^J Doe^WARRANT OUTSTANDING", 50, 670, tokens.FontNormal))
	b.WriteString(seg("DOB: 02/29/2000", 50, 660, tokens.FontNormal))
	b.WriteString(seg("Eyes: Brown", 50, 650, tokens.FontNormal))
	b.WriteString(seg("Active", 50, 600, tokens.FontBold))
	b.WriteString(seg("Philadelphia", 50, 580, tokens.FontBold))
	b.WriteString(seg("CP-51-CR-0001234-2020", 60, 560, tokens.FontBold))
	b.WriteString(seg("Proc Status: Active_DC No: 1234567_OTN: U 1234567", 60, 540, tokens.FontNormal))
	b.WriteString(seg("Arrest Dt: 03/01/2020", 60, 530, tokens.FontNormal))
	b.WriteString(seg("LA", 310, 520, tokens.FontBold))
	b.WriteString(seg("Seq No_Statute_Grade_Description", 60, 500, tokens.FontBold))
	b.WriteString(seg("1_Theft_123.45|A_Guilty", 510, 480, tokens.FontNormal))
	b.WriteString(seg("Closed", 50, 460, tokens.FontBold))
	b.WriteString(seg("Montgomery", 50, 440, tokens.FontBold))
	b.WriteString(seg("CP-46-CR-0005678-2019", 60, 420, tokens.FontBold))
	b.WriteString(seg("OTN: X 7654321_DC No: 9876543_Proc Status: Completed", 60, 400, tokens.FontNormal))
	b.WriteString(seg("Arrest Dt: 05/05/2019_Disp Date: 10/10/2019_Disp Judge: Brown, Amy", 60, 390, tokens.FontNormal))
	b.WriteString(seg("Archived", 50, 370, tokens.FontBold))
	b.WriteString(seg("MC-51-CR-0009999-2010", 60, 350, tokens.FontBold))
	b.WriteString(seg("Proc Status: Migrated", 60, 330, tokens.FontNormal))
	return b.String()
}

func TestDocketGrammarAcceptsFullDocument(t *testing.T) {
	tree, err := Docket().Parse(docketFixture())
	require.NoError(t, err)

	assert.Len(t, findNodes(tree, "section_case_info"), 1)
	assert.Len(t, findNodes(tree, "section_status_info"), 1)
	assert.Len(t, findNodes(tree, "section_defendant_info"), 1)
	assert.Len(t, findNodes(tree, "section_disposition"), 1)
	assert.Len(t, findNodes(tree, "section_financial_info"), 1)

	names := findNodes(tree, "defendant_name")
	require.Len(t, names, 1)
	assert.Equal(t, "John Doe", names[0].Text)
}

func TestDocketNumberSegment(t *testing.T) {
	input := "Docket Number: 1234-CR-2020" + "[123.45,740.00,bold]" + tokens.Terminator

	node, next, err := Docket().MatchRule("docket_number_segment", input, 0)
	require.NoError(t, err)
	assert.Equal(t, len(input), next)

	numbers := findNodes(node, "docket_number")
	require.Len(t, numbers, 1)
	assert.Equal(t, "1234-CR-2020", numbers[0].Text)
}

func TestMissingPageHeaderFailsAtStart(t *testing.T) {
	input := seg("Judge Assigned: Smith, Jane", 100, 560, tokens.FontNormal)

	_, err := Docket().Parse(input)
	var parseErr *peg.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 0, parseErr.Offset)
	assert.Equal(t, 0, parseErr.Segment)
	assert.Contains(t, parseErr.Candidates, "page_header")
}

// A bold header in the page band is repeating page furniture, never a
// section header, so a restated "CASE INFORMATION" at y=750 stays inside
// the section that is currently open.
func TestPageBandHeaderIsFurniture(t *testing.T) {
	var b strings.Builder
	b.WriteString(seg("CRIMINAL DOCKET", 100, 750, tokens.FontBold))
	b.WriteString(seg("Docket Number: CP-51-CR-0001234-2020", 123.45, 740, tokens.FontBold))
	b.WriteString(seg("CASE INFORMATION", 100, 580, tokens.FontBold))
	b.WriteString(seg("Judge Assigned: Smith, Jane", 100, 560, tokens.FontNormal))
	b.WriteString(seg("CASE INFORMATION", 100, 750, tokens.FontBold))
	b.WriteString(seg("OTN: U 1234567", 100, 550, tokens.FontNormal))

	tree, err := Docket().Parse(b.String())
	require.NoError(t, err)
	assert.Len(t, findNodes(tree, "section_case_info"), 1)
}

// A bold header in the mid band directly after a normal segment opens a new
// section; the same header directly after another bold segment is absorbed
// as furniture.
func TestMidBandHeaderDependsOnPrecedingFont(t *testing.T) {
	base := seg("CRIMINAL DOCKET", 100, 750, tokens.FontBold) +
		seg("Docket Number: CP-51-CR-0001234-2020", 123.45, 740, tokens.FontBold) +
		seg("STATUS INFORMATION", 100, 580, tokens.FontBold) +
		seg("Complaint Date: 01/15/2020", 100, 560, tokens.FontNormal)

	afterNormal := base +
		seg("CASE INFORMATION", 100, 650, tokens.FontBold) +
		seg("OTN: U 1234567", 100, 550, tokens.FontNormal)
	tree, err := Docket().Parse(afterNormal)
	require.NoError(t, err)
	assert.Len(t, findNodes(tree, "section_case_info"), 1,
		"mid-band header after normal text should open a section")

	afterBold := base +
		seg("COMMONWEALTH OF PENNSYLVANIA", 100, 700, tokens.FontBold) +
		seg("CASE INFORMATION", 100, 650, tokens.FontBold) +
		seg("Docket Type: Criminal", 100, 550, tokens.FontNormal)
	tree, err = Docket().Parse(afterBold)
	require.NoError(t, err)
	assert.Empty(t, findNodes(tree, "section_case_info"),
		"mid-band header after bold text is page furniture")
}

func TestSummaryGrammarAcceptsFullDocument(t *testing.T) {
	tree, err := Summary().Parse(summaryFixture())
	require.NoError(t, err)

	dockets := findNodes(tree, "docket_section")
	assert.Len(t, dockets, 3)
	assert.Len(t, findNodes(tree, "archived_category"), 1)
	assert.Len(t, findNodes(tree, "standard_category"), 2)
	assert.Len(t, findNodes(tree, "closed_case_info"), 1)
	assert.Len(t, findNodes(tree, "open_case_info"), 2)
}

func TestSummaryChargeRowBand(t *testing.T) {
	row := "1_Theft_123.45|A_Guilty"

	inBand := row + tokens.Properties{X: 510, Y: 283.1, Font: tokens.FontNormal}.String() + tokens.Terminator
	node, _, err := Summary().MatchRule("charge_segment", inBand, 0)
	require.NoError(t, err)
	descriptions := findNodes(node, "charge_description")
	require.Len(t, descriptions, 1)
	assert.Equal(t, "Theft", descriptions[0].Text)
	statutes := findNodes(node, "statute")
	require.Len(t, statutes, 1)
	assert.Equal(t, "123.45", statutes[0].Text)
	grades := findNodes(node, "grade")
	require.Len(t, grades, 1)
	assert.Equal(t, "A", grades[0].Text)

	outOfBand := row + tokens.Properties{X: 210, Y: 283.1, Font: tokens.FontNormal}.String() + tokens.Terminator
	_, _, err = Summary().MatchRule("charge_segment", outOfBand, 0)
	assert.Error(t, err, "charge rows live in a fixed column")
}

func TestSummaryChargeGradeRequiresSeparator(t *testing.T) {
	row := "1_Theft_123.45_Guilty" +
		tokens.Properties{X: 510, Y: 283.1, Font: tokens.FontNormal}.String() + tokens.Terminator

	node, _, err := Summary().MatchRule("charge_segment", row, 0)
	require.NoError(t, err)
	assert.Empty(t, findNodes(node, "grade"))
	dispositions := findNodes(node, "disposition")
	require.Len(t, dispositions, 1)
	assert.Equal(t, "Guilty", dispositions[0].Text)
}

func TestSummaryRejectsUnexpectedBoldInCaseInfo(t *testing.T) {
	var b strings.Builder
	b.WriteString(seg("Court Summary", 300, 760, tokens.FontBold))
	b.WriteString(seg("Doe, John", 50, 690, tokens.FontBold))
	b.WriteString(seg("DOB: 02/29/2000", 50, 660, tokens.FontNormal))
	b.WriteString(seg("Active", 50, 600, tokens.FontBold))
	b.WriteString(seg("Philadelphia", 50, 580, tokens.FontBold))
	b.WriteString(seg("CP-51-CR-0001234-2020", 60, 560, tokens.FontBold))
	b.WriteString(seg("Proc Status: Active", 60, 540, tokens.FontNormal))
	// Bold text outside the LA column is structural, and this is not a
	// county, category or docket number.
	b.WriteString(seg("surprise bold", 60, 520, tokens.FontBold))

	_, err := Summary().Parse(b.String())
	assert.Error(t, err)
}

func TestGrammarsCompile(t *testing.T) {
	assert.NotPanics(t, func() {
		Docket()
		Summary()
	})
	assert.Equal(t, "whole_docket", Docket().Entry())
	assert.Equal(t, "whole_summary", Summary().Entry())
}
