package grammar

// Grammar is the root of the tree: an ordered collection of Rules plus
// the table of meta-action definitions referenced by $name in Alts.
// Invariant: no two Rules share an Identifier; after normalization
// exactly one Rule has Entry set and Grammar.Entry points at it.
type Grammar struct {
	base
	Rules     []*Rule
	Entry     *Rule
	MetaRules []*MetaRule
}

func NewGrammar(rules []*Rule, metaRules []*MetaRule, pos Position) *Grammar {
	g := &Grammar{Rules: rules, MetaRules: metaRules}
	g.pos = pos
	for _, r := range rules {
		r.SetParent(g)
	}
	for _, m := range metaRules {
		m.SetParent(g)
	}
	return g
}

func (g *Grammar) Children() []Node {
	out := make([]Node, 0, len(g.Rules)+len(g.MetaRules))
	for _, r := range g.Rules {
		out = append(out, r)
	}
	for _, m := range g.MetaRules {
		out = append(out, m)
	}
	return out
}

// RuleByID returns the rule with the given identifier name, or nil.
func (g *Grammar) RuleByID(name string) *Rule {
	for _, r := range g.Rules {
		if r.ID.Name == name {
			return r
		}
	}
	return nil
}

// MetaRuleByName returns the meta-action definition with the given name,
// or nil.
func (g *Grammar) MetaRuleByName(name string) *MetaRule {
	for _, m := range g.MetaRules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// AddRule appends a new rule to the grammar, parenting it. Used by the
// nested-expression-lifting pass to register generated rules.
func (g *Grammar) AddRule(r *Rule) {
	r.SetParent(g)
	g.Rules = append(g.Rules, r)
}

// Rule is a single grammar production: an identifier, a right-hand
// Expression, and the directive flags that control entry selection and
// capture suppression.
type Rule struct {
	base
	ID         *Identifier
	Expr       *Expression
	EntryFlag  bool
	IgnoreFlag bool
	Directives []string
}

func NewRule(id *Identifier, expr *Expression, directives []string, pos Position) *Rule {
	r := &Rule{ID: id, Expr: expr, Directives: directives}
	r.pos = pos
	id.SetParent(r)
	expr.SetParent(r)
	for _, d := range directives {
		switch d {
		case "entry":
			r.EntryFlag = true
		case "ignore":
			r.IgnoreFlag = true
		}
	}
	return r
}

func (r *Rule) Children() []Node { return []Node{r.ID, r.Expr} }

// HasDirective reports whether name was attached to the rule with @name.
func (r *Rule) HasDirective(name string) bool {
	for _, d := range r.Directives {
		if d == name {
			return true
		}
	}
	return false
}

// Identifier is a string token, compared by value. It is used both as a
// Rule's name and, when appearing as a Part's primary, as a reference to
// that rule.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(name string, pos Position) *Identifier {
	id := &Identifier{Name: name}
	id.pos = pos
	return id
}

func (id *Identifier) Children() []Node { return nil }
func (id *Identifier) isPrimary()       {}

// Expression is an ordered, non-empty sequence of Alts tried in
// left-to-right priority.
type Expression struct {
	base
	Alts []*Alt
}

func NewExpression(alts []*Alt, pos Position) *Expression {
	e := &Expression{Alts: alts}
	e.pos = pos
	for _, a := range alts {
		a.SetParent(e)
	}
	return e
}

func (e *Expression) Children() []Node {
	out := make([]Node, len(e.Alts))
	for i, a := range e.Alts {
		out[i] = a
	}
	return out
}

func (e *Expression) isPrimary() {}

// ReplaceAlts swaps the Expression's alternatives, reparenting the new
// ones. Used by passes that lift or replace nested expressions.
func (e *Expression) ReplaceAlts(alts []*Alt) {
	e.Alts = alts
	for _, a := range alts {
		a.SetParent(e)
	}
}

// Alt is one alternative: a concatenation of Parts plus an optional
// reference to (later, after SubstituteMetaRefs, an inlined copy of) a
// meta-action body.
type Alt struct {
	base
	Parts []*Part

	// ActionRef is the Alt's unsubstituted meta-action reference
	// ($name), present only before SubstituteMetaRefs runs.
	ActionRef *MetaRef

	// Action is the inlined meta-action body, populated by
	// SubstituteMetaRefs in place of ActionRef.
	Action *MetaRule
}

func NewAlt(parts []*Part, actionRef *MetaRef, action *MetaRule, pos Position) *Alt {
	a := &Alt{Parts: parts, ActionRef: actionRef, Action: action}
	a.pos = pos
	for _, p := range parts {
		p.SetParent(a)
	}
	if actionRef != nil {
		actionRef.SetParent(a)
	}
	if action != nil {
		action.SetParent(a)
	}
	return a
}

func (a *Alt) Children() []Node {
	out := make([]Node, 0, len(a.Parts)+1)
	for _, p := range a.Parts {
		out = append(out, p)
	}
	if a.ActionRef != nil {
		out = append(out, a.ActionRef)
	}
	if a.Action != nil {
		out = append(out, a.Action)
	}
	return out
}

// SetAction substitutes the Alt's pending action reference with an
// inlined copy of the referenced meta-rule's body. Used by
// SubstituteMetaRefs.
func (a *Alt) SetAction(m *MetaRule) {
	a.ActionRef = nil
	a.Action = m
	m.SetParent(a)
}

// ReplaceParts swaps the Alt's parts, reparenting the new ones.
func (a *Alt) ReplaceParts(parts []*Part) {
	a.Parts = parts
	for _, p := range parts {
		p.SetParent(a)
	}
}

// PredicateKind distinguishes a Part's lookahead prefix, if any.
type PredicateKind int

const (
	NoPredicate PredicateKind = iota
	AndPredicate              // &
	NotPredicate              // !
)

func (p PredicateKind) String() string {
	switch p {
	case AndPredicate:
		return "&"
	case NotPredicate:
		return "!"
	default:
		return ""
	}
}

// Part is one atomic element of an Alt: an optional capture name, an
// optional predicate, a primary atom, and an optional quantifier.
type Part struct {
	base
	MetaName  string // the grammar's label, if any; filled in by GenerateMetanames
	Predicate PredicateKind
	Primary   Primary
	Quantifier Quantifier // nil means "exactly once"
}

func NewPart(metaName string, pred PredicateKind, primary Primary, quant Quantifier, pos Position) *Part {
	p := &Part{MetaName: metaName, Predicate: pred, Primary: primary, Quantifier: quant}
	p.pos = pos
	primary.SetParent(p)
	if quant != nil {
		quant.SetParent(p)
	}
	return p
}

func (p *Part) Children() []Node {
	out := []Node{p.Primary}
	if p.Quantifier != nil {
		out = append(out, p.Quantifier)
	}
	return out
}

// ReplacePrimary swaps the Part's primary atom, reparenting it. Used
// whenever a pass lowers one primary shape into another (Class into
// Expression, AnyChar into Identifier, and so on).
func (p *Part) ReplacePrimary(primary Primary) {
	p.Primary = primary
	primary.SetParent(p)
}

// Primary is implemented by every legal Part primary: Identifier,
// String, Char, Class, AnyChar, and nested Expression.
type Primary interface {
	Node
	isPrimary()
}

// String is an ordered sequence of code points of length zero or at
// least two; a length-one literal is represented as Char instead.
type String struct {
	base
	Value string
}

func NewString(value string, pos Position) *String {
	s := &String{Value: value}
	s.pos = pos
	return s
}

func (s *String) Children() []Node { return nil }
func (s *String) isPrimary()       {}

// Char is a single code point literal.
type Char struct {
	base
	Value rune
}

func NewChar(value rune, pos Position) *Char {
	c := &Char{Value: value}
	c.pos = pos
	return c
}

func (c *Char) Children() []Node { return nil }
func (c *Char) isPrimary()       {}

// Class is an ordered set of Ranges, as written inside [...]. Lowered to
// an Expression of single-Char Alts by ExpandClass.
type Class struct {
	base
	Ranges []*Range
}

func NewClass(ranges []*Range, pos Position) *Class {
	c := &Class{Ranges: ranges}
	c.pos = pos
	for _, r := range ranges {
		r.SetParent(c)
	}
	return c
}

func (c *Class) Children() []Node {
	out := make([]Node, len(c.Ranges))
	for i, r := range c.Ranges {
		out[i] = r
	}
	return out
}

func (c *Class) isPrimary() {}

// Range is an inclusive code-point interval; End is nil for a
// single-point range ("a" rather than "a-z").
type Range struct {
	base
	Beg rune
	End *rune
}

func NewRange(beg rune, end *rune, pos Position) *Range {
	r := &Range{Beg: beg, End: end}
	r.pos = pos
	return r
}

func (r *Range) Children() []Node { return nil }

// AnyChar is the `.` terminal. CreateAnyCharRule redirects every
// in-place occurrence (outside the synthetic rule itself) to a
// reference to that rule.
type AnyChar struct {
	base
}

func NewAnyChar(pos Position) *AnyChar {
	a := &AnyChar{}
	a.pos = pos
	return a
}

func (a *AnyChar) Children() []Node { return nil }
func (a *AnyChar) isPrimary()       {}

// Quantifier is implemented by Opt, Star, Plus, and Repetition.
type Quantifier interface {
	Node
	isQuantifier()
}

type Opt struct{ base }

func NewOpt(pos Position) *Opt      { o := &Opt{}; o.pos = pos; return o }
func (o *Opt) Children() []Node     { return nil }
func (o *Opt) isQuantifier()        {}

type Star struct{ base }

func NewStar(pos Position) *Star   { s := &Star{}; s.pos = pos; return s }
func (s *Star) Children() []Node   { return nil }
func (s *Star) isQuantifier()      {}

type Plus struct{ base }

func NewPlus(pos Position) *Plus   { p := &Plus{}; p.pos = pos; return p }
func (p *Plus) Children() []Node   { return nil }
func (p *Plus) isQuantifier()      {}

// Repetition is the bounded-count quantifier `{n}` / `{n,m}`. End is nil
// for the exact-count form.
type Repetition struct {
	base
	Beg int
	End *int
}

func NewRepetition(beg int, end *int, pos Position) *Repetition {
	r := &Repetition{Beg: beg, End: end}
	r.pos = pos
	return r
}

func (r *Repetition) Children() []Node { return nil }
func (r *Repetition) isQuantifier()    {}

// MetaRule is a meta-action definition: an opaque body of target-language
// text keyed by name ("" for the anonymous ${...} form attached directly
// to an Alt).
type MetaRule struct {
	base
	Name string
	Body string
}

func NewMetaRule(name, body string, pos Position) *MetaRule {
	m := &MetaRule{Name: name, Body: body}
	m.pos = pos
	return m
}

func (m *MetaRule) Children() []Node { return nil }

// MetaRef is an Alt's reference to a meta-action by name ($name),
// present only before SubstituteMetaRefs inlines it into a MetaRule
// body stored directly on the Alt.
type MetaRef struct {
	base
	Name string
}

func NewMetaRef(name string, pos Position) *MetaRef {
	r := &MetaRef{Name: name}
	r.pos = pos
	return r
}

func (r *MetaRef) Children() []Node { return nil }
