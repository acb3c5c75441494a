package grammar

// Pair is one recognized rule together with the source range it matched and
// the pairs of its sub-rules.
type Pair struct {
	rule     Rule
	start    int
	end      int
	input    string
	children []*Pair
}

// NewPair builds a pair by hand over input. Start and end are byte offsets
// into input. Tools that synthesize trees use it; Parse never does.
func NewPair(rule Rule, input string, start, end int, children ...*Pair) *Pair {
	return &Pair{
		rule:     rule,
		start:    start,
		end:      end,
		input:    input,
		children: children,
	}
}

// Rule returns the rule that produced the pair.
func (p *Pair) Rule() Rule { return p.rule }

// Start returns the byte offset where the match begins.
func (p *Pair) Start() int { return p.start }

// End returns the exclusive byte offset where the match ends.
func (p *Pair) End() int { return p.end }

// Text returns the matched source text.
func (p *Pair) Text() string { return p.input[p.start:p.end] }

// Children returns a fresh cursor over the pair's direct sub-rules.
func (p *Pair) Children() *Pairs {
	return &Pairs{pairs: p.children}
}

// Pairs is a forward-only cursor over sibling pairs.
type Pairs struct {
	pairs []*Pair
	pos   int
}

// NewPairs wraps an explicit sequence of pairs in a cursor.
func NewPairs(pairs ...*Pair) *Pairs {
	return &Pairs{pairs: pairs}
}

// Next returns the pair under the cursor and advances past it.
func (c *Pairs) Next() (*Pair, bool) {
	if c.pos >= len(c.pairs) {
		return nil, false
	}
	p := c.pairs[c.pos]
	c.pos++
	return p, true
}

// Peek returns the pair under the cursor without advancing.
func (c *Pairs) Peek() (*Pair, bool) {
	if c.pos >= len(c.pairs) {
		return nil, false
	}
	return c.pairs[c.pos], true
}

// Len returns the number of pairs not yet consumed.
func (c *Pairs) Len() int {
	return len(c.pairs) - c.pos
}

// Rules returns the rules of the remaining pairs, in order.
func (c *Pairs) Rules() []Rule {
	rules := make([]Rule, 0, c.Len())
	for _, p := range c.pairs[c.pos:] {
		rules = append(rules, p.rule)
	}
	return rules
}

// Rest returns the remaining pairs and exhausts the cursor.
func (c *Pairs) Rest() []*Pair {
	rest := c.pairs[c.pos:]
	c.pos = len(c.pairs)
	return rest
}
