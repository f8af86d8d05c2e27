package peg

import (
	"fmt"
	"sort"
	"strings"
)

// CompileError reports a malformed rule set: an unresolvable rule reference,
// invalid quantifier bounds, an invalid regular expression, or a missing
// entry rule. It can only occur when a grammar is built, never during a
// per-document parse.
type CompileError struct {
	Rule   string
	Reason string
}

func (e *CompileError) Error() string {
	if e.Rule == "" {
		return "grammar compile error: " + e.Reason
	}
	return fmt.Sprintf("grammar compile error in rule %q: %s", e.Rule, e.Reason)
}

// ParseError reports that the entry rule failed to match, or matched without
// consuming the entire input. Offset is the furthest byte offset any attempt
// reached; Segment is the zero-based index of the terminator-delimited
// segment containing that offset; Candidates are the rule names that were
// attempted at the furthest offset, sorted for stable output.
type ParseError struct {
	Offset     int
	Segment    int
	Candidates []string
}

func (e *ParseError) Error() string {
	candidates := "nothing"
	if len(e.Candidates) > 0 {
		candidates = strings.Join(e.Candidates, ", ")
	}
	return fmt.Sprintf("parse error at offset %d (segment %d): expected %s",
		e.Offset, e.Segment, candidates)
}

// newParseError builds a ParseError from the matcher's furthest-failure
// bookkeeping, deriving the segment index from the input.
func newParseError(input string, terminator string, offset int, tried map[string]struct{}) *ParseError {
	candidates := make([]string, 0, len(tried))
	for name := range tried {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)
	segment := 0
	if terminator != "" && offset <= len(input) {
		segment = strings.Count(input[:offset], terminator)
	}
	return &ParseError{Offset: offset, Segment: segment, Candidates: candidates}
}
