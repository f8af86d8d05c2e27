package visitor

import (
	"strings"
	"sync"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/peg"
)

// Docket returns the visitor for docket-sheet parse trees. Built on first use
// and shared by all subsequent reductions.
var Docket = sync.OnceValue(func() *Visitor {
	return New(docketReducers())
})

func docketReducers() map[string]Reducer {
	reducers := map[string]Reducer{
		"whole_docket":              reduceWholeDocket,
		"aliases":                   reduceDocketAliases,
		"section_disposition":       reduceSectionDisposition,
		"case_event_group":          reduceCaseEventGroup,
		"charge_info":               reduceChargeInfo,
		"disposition_grade_statute": reduceDispositionGradeStatute,
	}
	stringLeaves := []string{
		"defendant_name", "docket_number", "judge", "otn",
		"originating_docket_number", "cross_court_docket_numbers", "alias",
		"event_disposition", "case_event", "disposition_finality",
		"sequence", "charge_description_part", "grade", "statute",
		"offense_disposition_part",
	}
	for _, name := range stringLeaves {
		reducers[name] = StringLeaf(name)
	}
	for _, name := range []string{"dob", "disposition_date", "complaint_date"} {
		reducers[name] = DateLeaf(name)
	}
	for _, name := range []string{"assessment", "payments", "adjustments", "non_monetary", "total"} {
		reducers[name] = MoneyLeaf(name)
	}
	return reducers
}

func reduceWholeDocket(_ *peg.Node, values []any) (any, error) {
	return mergeRecords(values), nil
}

func reduceDocketAliases(_ *peg.Node, values []any) (any, error) {
	aliases := []string{}
	eachRecord(values, func(r Record) {
		if alias, ok := r["alias"]; ok {
			aliases = append(aliases, alias.(string))
		}
	})
	return Record{"aliases": aliases}, nil
}

// reduceSectionDisposition collects one entry per case-event group, each
// carrying its own charges list.
func reduceSectionDisposition(_ *peg.Node, values []any) (any, error) {
	entries := []Record{}
	eachRecord(values, func(r Record) {
		if entry, ok := r["disposition_entry"]; ok {
			entries = append(entries, entry.(Record))
		}
	})
	return Record{"section_disposition": entries}, nil
}

func reduceCaseEventGroup(_ *peg.Node, values []any) (any, error) {
	event := Record{}
	charges := []Record{}
	eachRecord(values, func(r Record) {
		if info, ok := r["charge_info"]; ok {
			charges = append(charges, info.(Record))
			return
		}
		for k, v := range r {
			event[k] = v
		}
	})
	event["charges"] = charges
	return Record{"disposition_entry": event}, nil
}

// reduceChargeInfo joins wrapped description parts with a space and merges
// the disposition/grade/statute row, when present, into the same charge.
func reduceChargeInfo(_ *peg.Node, values []any) (any, error) {
	info := Record{}
	parts := []string{}
	eachRecord(values, func(r Record) {
		if part, ok := r["charge_description_part"]; ok {
			parts = append(parts, part.(string))
			return
		}
		for k, v := range r {
			info[k] = v
		}
	})
	info["charge_description"] = strings.TrimSpace(strings.Join(parts, " "))
	return Record{"charge_info": info}, nil
}

func reduceDispositionGradeStatute(_ *peg.Node, values []any) (any, error) {
	out := Record{}
	parts := []string{}
	eachRecord(values, func(r Record) {
		if part, ok := r["offense_disposition_part"]; ok {
			parts = append(parts, part.(string))
			return
		}
		for k, v := range r {
			out[k] = v
		}
	})
	out["offense_disposition"] = strings.TrimSpace(strings.Join(parts, " "))
	return out, nil
}
