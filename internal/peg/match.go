package peg

import "fmt"

// activation identifies one in-flight application of a named rule. A rule
// re-entered at the same position without consuming input is left-recursive
// and is failed cleanly instead of looping forever.
type activation struct {
	name string
	pos  int
}

// matcher holds the transient state of a single parse. Each parse owns its
// matcher; nothing here is shared.
type matcher struct {
	g     *Grammar
	input string

	// rule is the named rule currently being matched, for failure
	// attribution.
	rule string

	// furthest is the furthest offset any failed attempt reached, and tried
	// the set of rule names attempted there.
	furthest int
	tried    map[string]struct{}

	active map[activation]struct{}
}

// Parse matches the entry rule against the whole input. A successful parse
// must consume the entire input; any unconsumed suffix is a ParseError.
func (g *Grammar) Parse(input string) (*Node, error) {
	m := &matcher{
		g:        g,
		input:    input,
		tried:    make(map[string]struct{}),
		active:   make(map[activation]struct{}),
		furthest: -1,
	}
	node, next, ok := m.matchRule(g.entry, 0)
	if !ok {
		return nil, newParseError(input, g.segmentMarker, max(m.furthest, 0), m.tried)
	}
	if next != len(input) {
		if m.furthest < next {
			m.furthest = next
			m.tried = map[string]struct{}{g.entry: {}}
		}
		return nil, newParseError(input, g.segmentMarker, m.furthest, m.tried)
	}
	return node, nil
}

// MatchRule matches a single named rule at the given position, without
// requiring full consumption. It returns the node and the next position.
// Intended for targeted tests of individual rules.
func (g *Grammar) MatchRule(name string, input string, pos int) (*Node, int, error) {
	if _, ok := g.rules[name]; !ok {
		return nil, 0, fmt.Errorf("grammar has no rule %q", name)
	}
	if pos < 0 || pos > len(input) {
		return nil, 0, fmt.Errorf("position %d out of range", pos)
	}
	m := &matcher{
		g:        g,
		input:    input,
		tried:    make(map[string]struct{}),
		active:   make(map[activation]struct{}),
		furthest: -1,
	}
	node, next, ok := m.matchRule(name, pos)
	if !ok {
		return nil, 0, newParseError(input, g.segmentMarker, max(m.furthest, pos), m.tried)
	}
	return node, next, nil
}

// matchRule applies the named rule at pos, wrapping the resulting parse into
// a node carrying the rule name.
func (m *matcher) matchRule(name string, pos int) (*Node, int, bool) {
	key := activation{name: name, pos: pos}
	if _, ok := m.active[key]; ok {
		// Left recursion: the rule is already being applied at this position
		// and cannot make progress. Fail this attempt.
		m.fail(name, pos)
		return nil, 0, false
	}
	m.active[key] = struct{}{}
	outer := m.rule
	m.rule = name
	node, next, ok := m.match(m.g.rules[name], pos)
	m.rule = outer
	delete(m.active, key)
	if !ok {
		// Attribute the failure to this rule too, so enclosing rules that
		// began at the furthest offset show up as candidates.
		m.fail(name, pos)
		return nil, 0, false
	}
	if node.IsAnonymous() {
		named := *node
		named.Name = name
		return &named, next, true
	}
	// The rule body is a bare reference to another rule; keep both nodes so
	// each name stays visible to the visitor.
	return &Node{Name: name, Start: node.Start, End: next,
		Text: m.input[node.Start:next], Children: []*Node{node}}, next, true
}

func (m *matcher) match(expr Expr, pos int) (*Node, int, bool) {
	switch e := expr.(type) {
	case literal:
		return m.matchLiteral(e, pos)
	case regex:
		return m.matchRegex(e, pos)
	case ref:
		return m.matchRule(e.name, pos)
	case sequence:
		return m.matchSequence(e, pos)
	case choice:
		return m.matchChoice(e, pos)
	case repeat:
		return m.matchRepeat(e, pos)
	case lookahead:
		return m.matchLookahead(e, pos)
	}
	// Compile rejects unknown expression kinds; this is unreachable.
	m.fail(m.rule, pos)
	return nil, 0, false
}

func (m *matcher) matchLiteral(e literal, pos int) (*Node, int, bool) {
	end := pos + len(e.text)
	if end > len(m.input) || m.input[pos:end] != e.text {
		m.fail(m.rule, pos)
		return nil, 0, false
	}
	return &Node{Start: pos, End: end, Text: e.text}, end, true
}

func (m *matcher) matchRegex(e regex, pos int) (*Node, int, bool) {
	loc := e.re.FindStringIndex(m.input[pos:])
	if loc == nil {
		m.fail(m.rule, pos)
		return nil, 0, false
	}
	end := pos + loc[1]
	return &Node{Start: pos, End: end, Text: m.input[pos:end]}, end, true
}

// matchSequence matches each sub-expression where the previous one left off.
// It fails atomically: a failure anywhere discards all advancement.
func (m *matcher) matchSequence(e sequence, pos int) (*Node, int, bool) {
	children := make([]*Node, 0, len(e.exprs))
	next := pos
	for _, sub := range e.exprs {
		node, after, ok := m.match(sub, next)
		if !ok {
			return nil, 0, false
		}
		children = append(children, node)
		next = after
	}
	return &Node{Start: pos, End: next, Text: m.input[pos:next], Children: children}, next, true
}

// matchChoice tries alternatives strictly in declaration order and commits to
// the first success; later failures downstream never revisit the choice.
func (m *matcher) matchChoice(e choice, pos int) (*Node, int, bool) {
	for _, alt := range e.exprs {
		if node, next, ok := m.match(alt, pos); ok {
			return node, next, true
		}
	}
	return nil, 0, false
}

// matchRepeat matches greedily. A repetition that succeeds without advancing
// terminates the loop, so a nullable inner expression cannot spin forever.
func (m *matcher) matchRepeat(e repeat, pos int) (*Node, int, bool) {
	children := []*Node{}
	next := pos
	for e.max == unbounded || len(children) < e.max {
		node, after, ok := m.match(e.expr, next)
		if !ok {
			break
		}
		children = append(children, node)
		if after == next {
			break
		}
		next = after
	}
	if len(children) < e.min {
		return nil, 0, false
	}
	node := &Node{Start: pos, End: next, Text: m.input[pos:next], Children: children}
	node.Optional = e.min == 0 && e.max == 1
	return node, next, true
}

// matchLookahead evaluates its expression without consuming input and without
// letting speculative failures pollute furthest-failure reporting.
func (m *matcher) matchLookahead(e lookahead, pos int) (*Node, int, bool) {
	savedFurthest, savedTried := m.furthest, m.tried
	m.tried = make(map[string]struct{})
	_, _, ok := m.match(e.expr, pos)
	m.furthest, m.tried = savedFurthest, savedTried
	if ok == e.negative {
		m.fail(m.rule, pos)
		return nil, 0, false
	}
	return &Node{Start: pos, End: pos, Text: ""}, pos, true
}

// fail records a failed attempt by the named rule at pos for diagnostics.
func (m *matcher) fail(name string, pos int) {
	if pos < m.furthest {
		return
	}
	if pos > m.furthest {
		m.furthest = pos
		clear(m.tried)
	}
	if name != "" {
		m.tried[name] = struct{}{}
	}
}
