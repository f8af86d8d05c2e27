package peg

// Node is one node of a parse tree. A node's span exactly covers the
// concatenation of its children's spans in order; nodes never overlap.
// Expressions nested inside a named rule produce anonymous nodes (empty
// Name); lookaheads produce zero-width leaves.
type Node struct {
	// Name is the rule name that produced this node, or "" for nodes
	// produced by inline sub-expressions.
	Name string
	// Start and End are byte offsets into the parsed input.
	Start int
	End   int
	// Text is the exact matched span of input.
	Text string
	// Optional is set on nodes produced by a zero-or-one quantifier. The
	// semantic visitor uses it to contain field reduction failures to the
	// innermost optional construct.
	Optional bool
	// Children are the sub-matches, in input order. Empty for terminals.
	Children []*Node
}

// Len returns the length of the matched span in bytes.
func (n *Node) Len() int { return n.End - n.Start }

// IsAnonymous reports whether the node was produced by an inline
// sub-expression rather than a named rule.
func (n *Node) IsAnonymous() bool { return n.Name == "" }
