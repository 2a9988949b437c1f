package normalize

import "github.com/glebzlat/polygen/grammar"

// FindEntryRule locates the single rule carrying the entry directive
// and records it on Grammar.Entry.
type FindEntryRule struct{ base }

func NewFindEntryRule() *FindEntryRule {
	return &FindEntryRule{base: base{name: "FindEntryRule"}}
}

func (p *FindEntryRule) Visit(n grammar.Node) (bool, error) {
	g, ok := n.(*grammar.Grammar)
	if !ok || g.Entry != nil {
		return false, nil
	}
	var entries []*grammar.Rule
	for _, r := range g.Rules {
		if r.EntryFlag {
			entries = append(entries, r)
		}
	}
	switch len(entries) {
	case 0:
		p.recordError(entryNotDefined(g))
		return false, nil
	case 1:
		g.Entry = entries[0]
		return true, nil
	default:
		p.recordError(redefEntry(entries))
		return false, nil
	}
}

// IgnoreRules forces the capture name to "_" on every Part that refers,
// by Identifier, to a rule carrying the ignore directive.
type IgnoreRules struct{ base }

func NewIgnoreRules() *IgnoreRules {
	return &IgnoreRules{base: base{name: "IgnoreRules"}}
}

func (p *IgnoreRules) Visit(n grammar.Node) (bool, error) {
	part, ok := n.(*grammar.Part)
	if !ok {
		return false, nil
	}
	id, ok := part.Primary.(*grammar.Identifier)
	if !ok || part.MetaName == "_" {
		return false, nil
	}
	g := enclosingGrammar(part)
	if g == nil {
		return false, nil
	}
	target := g.RuleByID(id.Name)
	if target == nil || !target.IgnoreFlag {
		return false, nil
	}
	part.MetaName = "_"
	return true, nil
}
