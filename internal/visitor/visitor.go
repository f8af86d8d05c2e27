// Package visitor reduces parse trees into structured records. Reduction is
// post-order: each named rule with an entry in the reducer table is collapsed
// into a value, anonymous and unlisted nodes propagate whatever their
// children produced. Reducers are pure; visiting the same tree twice yields
// equal records.
package visitor

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/peg"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/tokens"
)

// Record is the structured output of a reduction: JSON-ready nested maps,
// lists and scalars.
type Record map[string]any

// Reducer converts one named node and its reduced child values into a value.
// A nil value means the node contributes nothing upward.
type Reducer func(n *peg.Node, values []any) (any, error)

// Visitor reduces parse trees with a per-rule reducer table. A Visitor holds
// no per-parse state and is safe for concurrent use.
type Visitor struct {
	reducers map[string]Reducer
}

// New returns a visitor over the given reducer table.
func New(reducers map[string]Reducer) *Visitor {
	return &Visitor{reducers: reducers}
}

// Visit reduces the tree rooted at n and returns the resulting value.
//
// A FieldReductionError raised anywhere beneath a node produced by an
// optional quantifier drops that optional construct instead of failing the
// whole document; any other error, or a field error outside an optional
// construct, aborts the visit.
func (v *Visitor) Visit(n *peg.Node) (any, error) {
	return v.visit(n)
}

func (v *Visitor) visit(n *peg.Node) (any, error) {
	var values []any
	for _, child := range n.Children {
		value, err := v.visit(child)
		if err != nil {
			var fieldErr *FieldReductionError
			if n.Optional && errors.As(err, &fieldErr) {
				return nil, nil
			}
			return nil, err
		}
		if value != nil {
			values = append(values, value)
		}
	}
	if reduce, ok := v.reducers[n.Name]; ok {
		return reduce(n, values)
	}
	if len(n.Children) == 0 {
		if n.IsAnonymous() {
			return nil, nil
		}
		return tokens.StripMarkers(n.Text), nil
	}
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		return values[0], nil
	default:
		return values, nil
	}
}

// StringLeaf returns a reducer producing {name: marker-stripped node text}.
func StringLeaf(name string) Reducer {
	return func(n *peg.Node, _ []any) (any, error) {
		return Record{name: tokens.StripMarkers(n.Text)}, nil
	}
}

// DateLeaf returns a reducer parsing MM/DD/YYYY node text into an ISO 8601
// date string, rejecting dates that do not exist on the calendar.
func DateLeaf(name string) Reducer {
	return func(n *peg.Node, _ []any) (any, error) {
		raw := strings.TrimSpace(n.Text)
		parts := strings.Split(raw, "/")
		if len(parts) != 3 {
			return nil, &FieldReductionError{Field: name, Raw: raw, Reason: "not in MM/DD/YYYY form"}
		}
		month, monthErr := strconv.Atoi(parts[0])
		day, dayErr := strconv.Atoi(parts[1])
		year, yearErr := strconv.Atoi(parts[2])
		if monthErr != nil || dayErr != nil || yearErr != nil {
			return nil, &FieldReductionError{Field: name, Raw: raw, Reason: "not in MM/DD/YYYY form"}
		}
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
			return nil, &FieldReductionError{Field: name, Raw: raw, Reason: "no such calendar date"}
		}
		return Record{name: t.Format("2006-01-02")}, nil
	}
}

// MoneyLeaf returns a reducer parsing "$1,234.56" or the parenthesized
// negative form "($ 123.45)" into a float amount.
func MoneyLeaf(name string) Reducer {
	return func(n *peg.Node, _ []any) (any, error) {
		raw := strings.TrimSpace(n.Text)
		s := strings.ReplaceAll(raw, ",", "")
		negative := strings.HasPrefix(s, "(")
		s = strings.Trim(s, "()")
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
		amount, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &FieldReductionError{Field: name, Raw: raw, Reason: "not a money amount"}
		}
		if negative {
			amount = -amount
		}
		return Record{name: amount}, nil
	}
}

// eachRecord walks nested child values depth-first in document order and
// calls fn for every Record found.
func eachRecord(values []any, fn func(Record)) {
	for _, value := range values {
		switch v := value.(type) {
		case Record:
			fn(v)
		case []any:
			eachRecord(v, fn)
		}
	}
}

// mergeRecords folds every Record in values into a single flat Record.
// Later occurrences of a key win.
func mergeRecords(values []any) Record {
	out := Record{}
	eachRecord(values, func(r Record) {
		for k, v := range r {
			out[k] = v
		}
	})
	return out
}
