// Package peg implements a parsing-expression-grammar interpreter.
//
// A grammar is data: a map from rule name to expression, with one designated
// entry rule. Expressions are built from the constructors in this file and
// compiled once with Compile, which validates the rule set and returns an
// immutable Grammar that is safe to share across concurrent parses.
//
// Matching follows standard PEG semantics: ordered choice commits to the
// first alternative that succeeds, sequences fail atomically, quantifiers are
// greedy, and lookahead never consumes input.
package peg

import (
	"regexp"
	"strconv"
)

// Expr is a parsing expression. Expressions are immutable once built.
type Expr interface {
	// desc returns a short human-readable description for error messages.
	desc() string
}

type literal struct {
	text string
}

type regex struct {
	source string
	// re is the anchored form of source, compiled by Compile.
	re *regexp.Regexp
}

type ref struct {
	name string
}

type sequence struct {
	exprs []Expr
}

type choice struct {
	exprs []Expr
}

// unbounded marks a repetition with no upper limit.
const unbounded = -1

type repeat struct {
	expr Expr
	min  int
	max  int // unbounded for no limit
}

type lookahead struct {
	expr     Expr
	negative bool
}

// Lit matches the exact literal text.
func Lit(text string) Expr { return literal{text: text} }

// Rx matches the regular expression pattern anchored at the current position.
// The pattern is compiled and validated by Compile.
func Rx(pattern string) Expr { return regex{source: pattern} }

// Ref matches the named rule. The name must resolve at Compile time.
func Ref(name string) Expr { return ref{name: name} }

// Seq matches each expression in order; it fails atomically if any fails.
func Seq(exprs ...Expr) Expr { return sequence{exprs: exprs} }

// Choice tries each alternative in order and commits to the first success.
func Choice(exprs ...Expr) Expr { return choice{exprs: exprs} }

// Opt matches the expression zero or one time.
func Opt(expr Expr) Expr { return repeat{expr: expr, min: 0, max: 1} }

// ZeroOrMore matches the expression any number of times, greedily.
func ZeroOrMore(expr Expr) Expr { return repeat{expr: expr, min: 0, max: unbounded} }

// OneOrMore matches the expression at least once, greedily.
func OneOrMore(expr Expr) Expr { return repeat{expr: expr, min: 1, max: unbounded} }

// Times matches the expression exactly n times.
func Times(n int, expr Expr) Expr { return repeat{expr: expr, min: n, max: n} }

// Between matches the expression at least min and at most max times.
func Between(min, max int, expr Expr) Expr { return repeat{expr: expr, min: min, max: max} }

// And is a positive lookahead: it succeeds without consuming input if the
// expression would match at the current position.
func And(expr Expr) Expr { return lookahead{expr: expr} }

// Not is a negative lookahead: it succeeds without consuming input if the
// expression would fail at the current position.
func Not(expr Expr) Expr { return lookahead{expr: expr, negative: true} }

func (e literal) desc() string  { return "literal " + strconv.Quote(e.text) }
func (e regex) desc() string    { return "pattern /" + e.source + "/" }
func (e ref) desc() string      { return "rule " + e.name }
func (e sequence) desc() string { return "sequence" }
func (e choice) desc() string   { return "choice" }
func (e repeat) desc() string   { return "repetition" }
func (e lookahead) desc() string {
	if e.negative {
		return "negative lookahead"
	}
	return "lookahead"
}
