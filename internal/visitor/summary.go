package visitor

import (
	"errors"
	"strings"
	"sync"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/peg"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
)

// Summary returns the visitor for docket-summary parse trees.
var Summary = sync.OnceValue(func() *Visitor {
	return New(summaryReducers())
})

func summaryReducers() map[string]Reducer {
	reducers := map[string]Reducer{
		"whole_summary":    reduceWholeSummary,
		"aliases":          reduceSummaryAliases,
		"category_section": reduceCategorySection,
		"county_section":   reduceCountySection,
		"docket_section":   reduceDocketSection,
		"charges_section":  reduceChargesSection,
		"charge_segment":   reduceChargeSegment,
	}
	stringLeaves := []string{
		"defendant_name_reversed", "docket_number", "otn", "dcn", "county",
		"proc_status", "judge", "grade", "statute", "sequence_number",
		"disposition", "charge_description",
	}
	for _, name := range stringLeaves {
		reducers[name] = StringLeaf(name)
	}
	for _, name := range []string{"dob", "disposition_date", "arrest_date"} {
		reducers[name] = DateLeaf(name)
	}
	return reducers
}

// reduceWholeSummary separates docket records, identified by their
// docket_number key, from defendant-level fields.
func reduceWholeSummary(_ *peg.Node, values []any) (any, error) {
	summary := Record{}
	dockets := []Record{}
	eachRecord(values, func(r Record) {
		if _, ok := r["docket_number"]; ok {
			dockets = append(dockets, r)
			return
		}
		for k, v := range r {
			summary[k] = v
		}
	})
	summary["dockets"] = dockets
	return summary, nil
}

// reduceSummaryAliases splits the alias block on the box-wrap marker.
// "WARRANT OUTSTANDING" can show up directly below aliases; hopefully that is
// not anyone's actual alias.
func reduceSummaryAliases(n *peg.Node, _ []any) (any, error) {
	aliases := strings.Split(strings.TrimSpace(n.Text), tokens.BoxWrap)
	if len(aliases) > 0 && strings.Contains(aliases[len(aliases)-1], "WARRANT") {
		aliases = aliases[:len(aliases)-1]
	}
	return Record{"aliases": aliases}, nil
}

// reduceCategorySection stamps the category label, taken from the section's
// leading text, onto every docket beneath it.
func reduceCategorySection(n *peg.Node, values []any) (any, error) {
	name, _, _ := strings.Cut(n.Text, tokens.PropertiesOpen)
	name = strings.TrimSpace(name)
	eachRecord(values, func(r Record) {
		if _, ok := r["docket_number"]; ok {
			r["category"] = name
		}
	})
	return values, nil
}

// reduceCountySection moves the county name off its own record and onto each
// docket in the section.
func reduceCountySection(_ *peg.Node, values []any) (any, error) {
	county := ""
	var reduceErr error
	eachRecord(values, func(r Record) {
		if c, ok := r["county"]; ok {
			county = c.(string)
			delete(r, "county")
		}
		if _, ok := r["docket_number"]; ok {
			if county == "" {
				reduceErr = errors.New("docket number found before county name")
				return
			}
			r["county"] = county
		}
	})
	if reduceErr != nil {
		return nil, reduceErr
	}
	return values, nil
}

func reduceDocketSection(_ *peg.Node, values []any) (any, error) {
	return mergeRecords(values), nil
}

func reduceChargesSection(_ *peg.Node, values []any) (any, error) {
	charges := []Record{}
	eachRecord(values, func(r Record) {
		charges = append(charges, r)
	})
	return Record{"charges": charges}, nil
}

func reduceChargeSegment(_ *peg.Node, values []any) (any, error) {
	return mergeRecords(values), nil
}
