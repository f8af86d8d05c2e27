package grammars

import (
	"sync"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/peg"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
)

// Docket returns the docket-sheet grammar (entry rule whole_docket). The
// grammar is compiled on first use and shared by all subsequent parses.
var Docket = sync.OnceValue(func() *peg.Grammar {
	return peg.MustCompile("whole_docket", docketRules(),
		peg.WithSegmentMarker(tokens.Terminator))
})

// docketRules encodes the layout of a criminal docket sheet: a page header
// in the top coordinate band, then any mix of the five known sections,
// the standalone defendant-name caption, page breaks, and unclassified
// filler. Section content keeps consuming until the generic header
// predicate recognizes the next section's header.
func docketRules() map[string]peg.Expr {
	content := contentChar

	return map[string]peg.Expr{
		"whole_docket": peg.Seq(peg.Ref("page_header"), peg.OneOrMore(peg.Ref("docket_item"))),

		// Page header: bold segments in the top y band, among which the
		// docket number line must appear.
		"page_header": peg.Seq(
			peg.ZeroOrMore(peg.Ref("page_header_segment")),
			peg.Ref("docket_number_segment"),
			peg.ZeroOrMore(peg.Ref("page_header_segment"))),
		"page_header_segment": peg.Seq(
			peg.Not(peg.Lit("Docket Number:")), lineText(), topBandBoldProps(), terminator()),
		"docket_number_segment": peg.Seq(
			peg.Lit("Docket Number:"), ws(), peg.Ref("docket_number"), boldProps(), terminator()),
		"docket_number": peg.Rx(`[A-Za-z0-9]+(?:-[A-Za-z0-9]+)+`),

		"docket_item": peg.Choice(
			peg.Ref("section"),
			peg.Ref("defendant_name_segment"),
			peg.Ref("page_break"),
			peg.Ref("filler")),

		"section": peg.Choice(
			peg.Ref("section_case_info"),
			peg.Ref("section_status_info"),
			peg.Ref("section_defendant_info"),
			peg.Ref("section_disposition"),
			peg.Ref("section_financial_info")),

		// The caption "v." line followed by the defendant's name. This is
		// the reliable capture point for the name; the copy repeated after
		// every page break is discarded (see page_break).
		"defendant_name_segment": peg.Seq(
			peg.Ref("versus_segment"), peg.Ref("defendant_name"), boldProps(), terminator()),
		"versus_segment":  peg.Seq(peg.Lit("v."), ws(), boldProps(), terminator()),
		"defendant_name":  peg.Rx(content + `+`),

		// CASE INFORMATION.
		"section_case_info": peg.Seq(
			peg.Ref("case_info_header"), peg.OneOrMore(peg.Ref("case_info_item"))),
		"case_info_header": peg.Seq(
			peg.Lit("CASE INFORMATION"), lineText(), headerBandBoldProps(), terminator()),
		"case_info_item": peg.Choice(
			peg.Ref("page_break"),
			peg.Ref("judge_segment"),
			peg.Ref("otn_segment"),
			peg.Ref("originating_docket_segment"),
			peg.Ref("cross_court_segment"),
			peg.Ref("filler")),
		"judge_segment": labeled("Judge Assigned:", "judge"),
		"judge":         peg.Rx(`[A-Za-z][A-Za-z .,'-]*`),
		"otn_segment":   labeled("OTN:", "otn"),
		"otn":           peg.Rx(`[A-Z]? ?\d{6,9}(?:-\d)?`),
		"originating_docket_segment": labeled("Originating Docket No:", "originating_docket_number"),
		"originating_docket_number":  peg.Rx(`[A-Za-z0-9]+(?:-[A-Za-z0-9]+)+`),
		"cross_court_segment":        labeled("Cross Court Docket Nos:", "cross_court_docket_numbers"),
		"cross_court_docket_numbers": peg.Rx(content + `+`),

		// STATUS INFORMATION.
		"section_status_info": peg.Seq(
			peg.Ref("status_info_header"), peg.OneOrMore(peg.Ref("status_info_item"))),
		"status_info_header": peg.Seq(
			peg.Lit("STATUS INFORMATION"), lineText(), headerBandBoldProps(), terminator()),
		"status_info_item": peg.Choice(
			peg.Ref("page_break"),
			peg.Ref("complaint_date_segment"),
			peg.Ref("filler")),
		"complaint_date_segment": labeled("Complaint Date:", "complaint_date"),
		"complaint_date":         peg.Rx(datePattern),

		// DEFENDANT INFORMATION.
		"section_defendant_info": peg.Seq(
			peg.Ref("defendant_info_header"), peg.OneOrMore(peg.Ref("defendant_info_item"))),
		"defendant_info_header": peg.Seq(
			peg.Lit("DEFENDANT INFORMATION"), lineText(), headerBandBoldProps(), terminator()),
		"defendant_info_item": peg.Choice(
			peg.Ref("page_break"),
			peg.Ref("dob_segment"),
			peg.Ref("aliases"),
			peg.Ref("filler")),
		"dob_segment": labeled("Date of Birth:", "dob"),
		"dob":         peg.Rx(datePattern),

		// Single-column alias list. An alias segment carrying tab-separated
		// columns does not match here and falls through to filler; the
		// multi-column layout is not implemented until more samples exist.
		"aliases": peg.Seq(
			peg.Ref("alias_header_segment"), peg.OneOrMore(peg.Ref("alias_segment"))),
		"alias_header_segment": peg.Seq(peg.Lit("Alias Name"), lineText(), boldProps(), terminator()),
		"alias_segment":        peg.Seq(peg.Ref("alias"), normalProps(), terminator()),
		"alias":                peg.Rx(content + `+`),

		// DISPOSITION SENTENCING/PENALTIES. Repeated case-event groups:
		// a bold event-disposition line, filler until the event/date/
		// finality line, then charge details interleaved with page breaks.
		"section_disposition": peg.Seq(
			peg.Ref("disposition_header"), peg.OneOrMore(peg.Ref("case_event_group"))),
		"disposition_header": peg.Seq(
			peg.Lit("DISPOSITION SENTENCING/PENALTIES"), lineText(), headerBandBoldProps(), terminator()),
		"case_event_group": peg.Seq(
			peg.Ref("event_disposition_segment"),
			peg.ZeroOrMore(peg.Ref("pre_event_filler")),
			peg.Ref("case_event_segment"),
			peg.ZeroOrMore(peg.Choice(peg.Ref("page_break"), peg.Ref("charge_info")))),
		"event_disposition_segment": peg.Seq(
			peg.Not(peg.Ref("generic_header_low")),
			peg.Not(peg.Ref("generic_header_mid")),
			peg.Ref("event_disposition"), boldProps(), terminator()),
		"event_disposition": peg.Rx(`[A-Za-z][A-Za-z /-]*`),
		"pre_event_filler": peg.Seq(
			peg.Not(peg.Ref("case_event_segment")),
			peg.Not(peg.Ref("generic_header_low")),
			peg.Not(peg.Ref("generic_header_mid")),
			anySegment()),
		"case_event_segment": peg.Seq(
			peg.Ref("case_event"), tab(),
			peg.Ref("disposition_date"), tab(),
			peg.Ref("disposition_finality"), restOfLine()),
		"case_event":           peg.Rx(`[A-Za-z][A-Za-z /-]*`),
		"disposition_date":     peg.Rx(datePattern),
		"disposition_finality": peg.Rx(`[A-Za-z][A-Za-z ]*`),

		// A charge is a sequence/description row in the charge column,
		// optionally followed by its disposition/grade/statute row.
		"charge_info": peg.Seq(
			peg.And(peg.Seq(lineText(), chargeBandProps())),
			peg.Ref("sequence"), tab(),
			peg.Ref("charge_description"),
			peg.Opt(peg.Seq(tab(), peg.Ref("grade"), fieldBoundary())),
			peg.Opt(peg.Seq(tab(), peg.Ref("statute"))),
			restOfLine(),
			peg.Opt(peg.Ref("disposition_grade_statute"))),
		"sequence": peg.Rx(`\d+`),
		"charge_description": peg.Seq(
			peg.Ref("charge_description_part"),
			peg.ZeroOrMore(peg.Seq(boxWrap(), peg.Ref("charge_description_part")))),
		"charge_description_part": peg.Rx(`[A-Za-z]` + content + `*`),
		"disposition_grade_statute": peg.Seq(
			peg.And(peg.Seq(lineText(), chargeBandProps())),
			peg.Ref("offense_disposition"),
			peg.Opt(peg.Seq(tab(), peg.Ref("grade"), fieldBoundary())),
			peg.Opt(peg.Seq(tab(), peg.Ref("statute"))),
			restOfLine()),
		"offense_disposition": peg.Seq(
			peg.Ref("offense_disposition_part"),
			peg.ZeroOrMore(peg.Seq(boxWrap(), peg.Ref("offense_disposition_part")))),
		"offense_disposition_part": peg.Rx(`[A-Za-z]` + content + `*`),
		"grade":                    peg.Rx(`[A-Z]{1,2}\d?`),
		"statute":                  peg.Rx(`\d+[\d .§A-Za-z()-]*`),

		// CASE FINANCIAL INFORMATION. Amounts keep their raw order:
		// assessment, payments, adjustments, non-monetary, total.
		"section_financial_info": peg.Seq(
			peg.Ref("financial_info_header"), peg.OneOrMore(peg.Ref("financial_item"))),
		"financial_info_header": peg.Seq(
			peg.Lit("CASE FINANCIAL INFORMATION"), lineText(), headerBandBoldProps(), terminator()),
		"financial_item": peg.Choice(
			peg.Ref("page_break"),
			peg.Ref("grand_totals_segment"),
			peg.Ref("filler")),
		"grand_totals_segment": peg.Seq(
			peg.Lit("Grand Totals:"), tab(),
			peg.Ref("assessment"), tab(),
			peg.Ref("payments"), tab(),
			peg.Ref("adjustments"), tab(),
			peg.Ref("non_monetary"), tab(),
			peg.Ref("total"), restOfLine()),
		"assessment":   peg.Rx(moneyPattern),
		"payments":     peg.Rx(moneyPattern),
		"adjustments":  peg.Rx(moneyPattern),
		"non_monetary": peg.Rx(moneyPattern),
		"total":        peg.Rx(moneyPattern),

		// Page break: the "Printed:" footer, the next page's restated
		// header, the caption, and one discarded copy of the defendant
		// name. The name is deliberately not captured here; the first-page
		// caption is the reliable source.
		"page_break": peg.Seq(
			peg.Ref("printed_segment"),
			peg.ZeroOrMore(peg.Ref("page_break_filler")),
			peg.Ref("end_of_header_segment"),
			peg.Ref("discarded_name_segment")),
		"printed_segment": peg.Seq(
			peg.Lit("Printed:"), ws(), peg.Rx(datePattern), restOfLine()),
		"page_break_filler": peg.Seq(
			peg.Not(peg.Ref("end_of_header_segment")), anySegment()),
		"end_of_header_segment":  peg.Seq(peg.Lit("v."), ws(), boldProps(), terminator()),
		"discarded_name_segment": peg.Seq(lineText(), boldProps(), terminator()),

		// Unclassified filler. Normal segments are always filler. Bold
		// segments are consumed as a run: the first element of a run must
		// not look like a section header at all, while later elements only
		// reject the unconditional low band -- a mid-band header directly
		// after another bold segment is repeating page furniture, not a
		// section header.
		"filler": peg.Choice(peg.Ref("normal_filler_segment"), peg.Ref("bold_filler_run")),
		"normal_filler_segment": normalSegment(),
		"bold_filler_run": peg.Seq(
			peg.Ref("bold_filler_first"), peg.ZeroOrMore(peg.Ref("bold_filler_rest"))),
		"bold_filler_first": peg.Seq(
			peg.Not(peg.Ref("generic_header_low")),
			peg.Not(peg.Ref("generic_header_mid")),
			peg.Not(peg.Ref("versus_segment")),
			boldSegment()),
		"bold_filler_rest": peg.Seq(
			peg.Not(peg.Ref("generic_header_low")),
			peg.Not(peg.Ref("versus_segment")),
			boldSegment()),

		// The generic header predicate: all-uppercase/space/slash bold
		// text whose property tuple places it in a section-header band.
		"generic_header_low": peg.Seq(peg.Ref("header_text"), lowBandBoldProps()),
		"generic_header_mid": peg.Seq(peg.Ref("header_text"), midBandBoldProps()),
		"header_text":        peg.Rx(`[A-Z][A-Z /]*`),
	}
}

// headerBandBoldProps matches a bold property tuple in either section-header
// band. Known section headers never sit in the page band, so a restated
// header inside the top-of-page furniture stays filler.
func headerBandBoldProps() peg.Expr {
	return peg.Choice(lowBandBoldProps(), midBandBoldProps())
}

// fieldBoundary asserts that a short field like a grade is complete: the
// next thing on the line is another separator or the property tuple.
func fieldBoundary() peg.Expr {
	return peg.And(peg.Choice(tab(), anyProps()))
}
