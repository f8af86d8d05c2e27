package grammars

import (
	"regexp"
	"sync"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/peg"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
)

// Summary returns the docket-summary grammar (entry rule whole_summary).
// Compiled on first use and shared by all subsequent parses.
var Summary = sync.OnceValue(func() *peg.Grammar {
	return peg.MustCompile("whole_summary", summaryRules(),
		peg.WithSegmentMarker(tokens.Terminator))
})

// summaryRules encodes the layout of a court summary: a page header, one
// defendant block, then dockets grouped by status category and, below the
// non-archived categories, by county. The summary packs several fields per
// line, so most rules here are column splitters over a single segment.
func summaryRules() map[string]peg.Expr {
	// Alias and address text may carry the box-wrap marker; its halves are
	// spliced back together during reduction.
	wrapChar := "[^" + regexp.QuoteMeta(
		tokens.Terminator+tokens.PropertiesOpen+tokens.PropertiesClose+
			tokens.Tab+tokens.ComesBefore) + "]"

	return map[string]peg.Expr{
		"whole_summary": peg.Seq(
			peg.Ref("page_header"),
			peg.Ref("defendant_info"),
			peg.OneOrMore(peg.Ref("category_section"))),

		"page_header": peg.OneOrMore(peg.Ref("page_header_segment")),
		"page_header_segment": peg.Seq(lineText(), topBandBoldProps(), terminator()),

		// Defendant block: the reversed name, then optional address, alias
		// and warrant lines, the date of birth, and trailing identity lines
		// in the mid band.
		"defendant_info": peg.Seq(
			peg.Ref("defendant_name_reversed_segment"),
			peg.Opt(peg.Ref("address_segment")),
			peg.Opt(peg.Ref("aliases_block")),
			peg.Opt(peg.Ref("warrant_segment")),
			peg.Ref("dob_segment"),
			peg.ZeroOrMore(peg.Ref("info_line"))),
		"defendant_name_reversed_segment": peg.Seq(
			peg.Ref("defendant_name_reversed"), boldProps(), terminator()),
		"defendant_name_reversed": peg.Rx(`[A-Za-z][A-Za-z .'-]*, [A-Za-z][A-Za-z .'-]*`),
		"address_segment": peg.Seq(
			peg.Not(peg.Lit("Aliases:")), peg.Not(peg.Lit("DOB:")),
			peg.Rx(wrapChar+`+`), normalProps(), terminator()),
		"aliases_block": peg.Seq(
			peg.Ref("aliases_label_segment"), peg.Ref("aliases_segment")),
		"aliases_label_segment": peg.Seq(peg.Lit("Aliases:"), ws(), normalProps(), terminator()),
		"aliases_segment":       peg.Seq(peg.Ref("aliases"), normalProps(), terminator()),
		"aliases":               peg.Rx(wrapChar + `+`),
		"warrant_segment": peg.Seq(
			peg.Rx(`[A-Z][A-Z ]*WARRANT[A-Z ]*`), anyProps(), terminator()),
		"dob_segment": labeled("DOB:", "dob"),
		"dob":         peg.Rx(datePattern),
		"info_line":   peg.Seq(lineText(), midBandNormalProps(), terminator()),

		// Category sections. "Archived" dockets carry no county grouping;
		// the other categories nest dockets under county headers.
		"category_section": peg.Choice(
			peg.Ref("archived_category"), peg.Ref("standard_category")),
		"archived_category": peg.Seq(
			peg.Ref("archived_label_segment"), peg.OneOrMore(peg.Ref("docket_section"))),
		"archived_label_segment": peg.Seq(
			peg.Lit("Archived"), lineText(), boldProps(), terminator()),
		"standard_category": peg.Seq(
			peg.Ref("category_label_segment"), peg.OneOrMore(peg.Ref("county_section"))),
		"category_label_segment": peg.Seq(
			peg.Ref("category_name"), boldProps(), terminator()),
		"category_name": peg.Choice(
			peg.Lit("Active"), peg.Lit("Inactive"),
			peg.Lit("Closed"), peg.Lit("Adjudicated")),

		// A county either shares a segment with its first docket number
		// (tab-separated) or sits on its own bold line above the dockets.
		"county_section": peg.Choice(
			peg.Ref("county_inline_section"), peg.Ref("county_block_section")),
		"county_inline_section": peg.Seq(
			peg.Ref("county"), tab(), peg.OneOrMore(peg.Ref("docket_section"))),
		"county_block_section": peg.Seq(
			peg.Ref("county_segment"), peg.OneOrMore(peg.Ref("docket_section"))),
		"county_segment": peg.Seq(peg.Ref("county"), boldProps(), terminator()),
		"county": peg.Seq(
			peg.Not(peg.Ref("category_name")), peg.Not(peg.Lit("Archived")),
			peg.Rx(`[A-Z][a-z]+(?:[ '-][A-Za-z]+)*`)),

		// One docket: its number, case information, and an optional charge
		// table.
		"docket_section": peg.Seq(
			peg.Ref("docket_number_segment"),
			peg.Ref("case_info"),
			peg.Opt(peg.Ref("charges_section"))),
		"docket_number_segment": peg.Seq(
			peg.Ref("docket_number"), boldProps(), terminator()),
		"docket_number": peg.Rx(`[A-Za-z0-9]+(?:-[A-Za-z0-9]+){2,}`),

		// Closed dockets lead with the OTN/DC-number line and always carry
		// an arrest/disposition date line; open dockets lead with the
		// processing status.
		"case_info": peg.Choice(
			peg.Ref("closed_case_info"), peg.Ref("open_case_info")),
		"closed_case_info": peg.Seq(
			peg.Ref("otn_dcn_segment"),
			peg.Ref("arrest_disp_segment"),
			peg.ZeroOrMore(peg.Ref("case_info_extra"))),
		"otn_dcn_segment": peg.Seq(
			peg.Lit("OTN:"), ws(), peg.Ref("otn"), tab(),
			peg.Lit("DC No:"), ws(), peg.Ref("dcn"), tab(),
			peg.Lit("Proc Status:"), ws(), peg.Ref("proc_status"), restOfLine()),
		"arrest_disp_segment": peg.Seq(
			peg.Lit("Arrest Dt:"), ws(), peg.Opt(peg.Ref("arrest_date")), tab(),
			peg.Lit("Disp Date:"), ws(), peg.Opt(peg.Ref("disposition_date")),
			peg.Opt(peg.Seq(tab(), peg.Lit("Disp Judge:"), ws(), peg.Ref("judge"))),
			restOfLine()),
		"open_case_info": peg.Seq(
			peg.Ref("proc_status_segment"),
			peg.ZeroOrMore(peg.Ref("case_info_extra"))),
		"proc_status_segment": peg.Seq(
			peg.Lit("Proc Status:"), ws(), peg.Ref("proc_status"),
			peg.Opt(peg.Seq(tab(), peg.Lit("DC No:"), ws(), peg.Ref("dcn"))),
			peg.Opt(peg.Seq(tab(), peg.Lit("OTN:"), ws(), peg.Ref("otn"))),
			restOfLine()),
		"otn":         peg.Rx(`[A-Z]? ?\d{6,9}(?:-\d)?`),
		"dcn":         peg.Rx(`[A-Za-z0-9-]+`),
		"proc_status": peg.Rx(`[A-Za-z][A-Za-z /-]*`),
		"judge":       peg.Rx(`[A-Za-z][A-Za-z .,'-]*`),

		// Extra case-information lines. The "LA" marker in its fixed column
		// is the only bold segment tolerated here; any other bold segment
		// ends the docket or fails the parse.
		"case_info_extra": peg.Choice(
			peg.Ref("arrest_date_segment"),
			peg.Ref("disp_date_segment"),
			peg.Ref("la_segment"),
			peg.Ref("case_filler_segment")),
		"arrest_date_segment": peg.Seq(
			peg.Lit("Arrest Dt:"), ws(), peg.Opt(peg.Ref("arrest_date")), restOfLine()),
		"disp_date_segment": peg.Seq(
			peg.Lit("Disp Date:"), ws(), peg.Opt(peg.Ref("disposition_date")), restOfLine()),
		"arrest_date":      peg.Rx(datePattern),
		"disposition_date": peg.Rx(datePattern),
		"la_segment": peg.Seq(
			peg.Rx(`LA(?:[ -]+[0-9A-Za-z.]+)*`), legalAidBandProps(), terminator()),
		"case_filler_segment": peg.Seq(lineText(), normalProps(), terminator()),

		// Charge table: the "Seq No" header row, an optional sentencing
		// header row, then charge rows identified by their column band.
		"charges_section": peg.Seq(
			peg.Ref("charges_header"), peg.OneOrMore(peg.Ref("charge_segment"))),
		"charges_header": peg.Seq(
			peg.Ref("seq_no_header_segment"), peg.Opt(peg.Ref("sentence_header_segment"))),
		"seq_no_header_segment": peg.Seq(
			peg.Lit("Seq No"), lineText(), boldProps(), terminator()),
		"sentence_header_segment": peg.Seq(
			peg.Lit("Sentence"), lineText(), boldProps(), terminator()),

		// One charge row. The grade only exists when its comes-before
		// separator does; a statute is told apart from a disposition by its
		// leading digit.
		"charge_segment": peg.Seq(
			peg.And(peg.Seq(lineText(), summaryChargeBandProps())),
			peg.Ref("sequence_number"), tab(),
			peg.Ref("charge_description"),
			peg.Opt(peg.Seq(tab(), peg.Ref("statute"))),
			peg.Opt(peg.Seq(comesBefore(), peg.Ref("grade"), fieldBoundary())),
			peg.Opt(peg.Seq(tab(), peg.Ref("disposition"))),
			restOfLine()),
		"sequence_number":    peg.Rx(`\d+`),
		"charge_description": peg.Rx(`[A-Za-z]` + wrapChar + `*`),
		"statute":            peg.Rx(`\d+[\d .§A-Za-z()-]*`),
		"grade":              peg.Rx(`[A-Z]{1,2}\d?`),
		"disposition":        peg.Rx(`[A-Za-z][A-Za-z /-]*`),
	}
}
