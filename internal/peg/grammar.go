package peg

import (
	"fmt"
	"regexp"
)

// Grammar is a compiled, immutable rule set with a designated entry rule.
// A Grammar has no mutable state and may be shared by any number of
// concurrent parses without synchronization.
type Grammar struct {
	entry         string
	rules         map[string]Expr
	segmentMarker string
}

// Option adjusts grammar compilation.
type Option func(*Grammar)

// WithSegmentMarker sets the marker used to derive the segment index reported
// in parse errors. Defaults to "\n".
func WithSegmentMarker(marker string) Option {
	return func(g *Grammar) { g.segmentMarker = marker }
}

// Compile validates the rule set and returns an immutable grammar. Every rule
// reference must resolve, quantifier bounds must be sane, and every regex
// terminal must compile. The returned grammar is the only product of
// compilation; Compile has no side effects.
func Compile(entry string, rules map[string]Expr, opts ...Option) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, &CompileError{Reason: "empty rule set"}
	}
	if _, ok := rules[entry]; !ok {
		return nil, &CompileError{Reason: fmt.Sprintf("entry rule %q is not defined", entry)}
	}

	compiled := make(map[string]Expr, len(rules))
	for name, expr := range rules {
		if expr == nil {
			return nil, &CompileError{Rule: name, Reason: "rule has no expression"}
		}
		out, err := compileExpr(name, expr, rules)
		if err != nil {
			return nil, err
		}
		compiled[name] = out
	}

	g := &Grammar{entry: entry, rules: compiled, segmentMarker: "\n"}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// MustCompile is Compile that panics on error. Grammar definitions are fixed
// at build time, so a failure here is a programming error.
func MustCompile(entry string, rules map[string]Expr, opts ...Option) *Grammar {
	g, err := Compile(entry, rules, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Entry returns the name of the grammar's entry rule.
func (g *Grammar) Entry() string { return g.entry }

// HasRule reports whether the grammar defines the named rule.
func (g *Grammar) HasRule(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// compileExpr walks an expression, resolving validation concerns that must
// fail at startup rather than at parse time. It returns a copy with regex
// terminals compiled in anchored form.
func compileExpr(rule string, expr Expr, rules map[string]Expr) (Expr, error) {
	switch e := expr.(type) {
	case literal:
		return e, nil
	case regex:
		re, err := regexp.Compile(`\A(?:` + e.source + `)`)
		if err != nil {
			return nil, &CompileError{Rule: rule, Reason: fmt.Sprintf("invalid pattern /%s/: %v", e.source, err)}
		}
		return regex{source: e.source, re: re}, nil
	case ref:
		if _, ok := rules[e.name]; !ok {
			return nil, &CompileError{Rule: rule, Reason: fmt.Sprintf("reference to undefined rule %q", e.name)}
		}
		return e, nil
	case sequence:
		exprs, err := compileExprs(rule, e.exprs, rules)
		if err != nil {
			return nil, err
		}
		if len(exprs) == 0 {
			return nil, &CompileError{Rule: rule, Reason: "empty sequence"}
		}
		return sequence{exprs: exprs}, nil
	case choice:
		exprs, err := compileExprs(rule, e.exprs, rules)
		if err != nil {
			return nil, err
		}
		if len(exprs) == 0 {
			return nil, &CompileError{Rule: rule, Reason: "empty choice"}
		}
		return choice{exprs: exprs}, nil
	case repeat:
		if e.min < 0 {
			return nil, &CompileError{Rule: rule, Reason: fmt.Sprintf("negative repetition minimum %d", e.min)}
		}
		if e.max != unbounded && e.max < e.min {
			return nil, &CompileError{Rule: rule, Reason: fmt.Sprintf("repetition maximum %d below minimum %d", e.max, e.min)}
		}
		inner, err := compileExpr(rule, e.expr, rules)
		if err != nil {
			return nil, err
		}
		return repeat{expr: inner, min: e.min, max: e.max}, nil
	case lookahead:
		inner, err := compileExpr(rule, e.expr, rules)
		if err != nil {
			return nil, err
		}
		return lookahead{expr: inner, negative: e.negative}, nil
	default:
		return nil, &CompileError{Rule: rule, Reason: fmt.Sprintf("unknown expression type %T", expr)}
	}
}

func compileExprs(rule string, exprs []Expr, rules map[string]Expr) ([]Expr, error) {
	out := make([]Expr, len(exprs))
	for i, expr := range exprs {
		compiled, err := compileExpr(rule, expr, rules)
		if err != nil {
			return nil, err
		}
		out[i] = compiled
	}
	return out, nil
}
