package normalize

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/glebzlat/polygen/grammar"
)

// CheckUndefRedef is a single pass over the tree: every Identifier
// referenced from a Part must resolve to a rule, and no rule name may
// be defined twice. An undefined reference close (within two edits) to
// a real rule name gets a "did you mean" hint appended.
type CheckUndefRedef struct{ base }

func NewCheckUndefRedef() *CheckUndefRedef {
	return &CheckUndefRedef{base: base{name: "CheckUndefRedef"}}
}

func (p *CheckUndefRedef) Visit(n grammar.Node) (bool, error) {
	switch x := n.(type) {
	case *grammar.Part:
		p.checkReference(x)
	case *grammar.Grammar:
		p.checkRedefinitions(x)
	}
	return false, nil
}

func (p *CheckUndefRedef) checkReference(part *grammar.Part) {
	id, ok := part.Primary.(*grammar.Identifier)
	if !ok {
		return
	}
	g := enclosingGrammar(part)
	if g == nil {
		return
	}
	if g.RuleByID(id.Name) != nil {
		return
	}
	rule := enclosingRule(part)
	detail := id.Name
	if best, ok := closestRuleName(g, id.Name); ok {
		detail = fmt.Sprintf("%s (did you mean %q?)", id.Name, best)
	}
	p.recordError(undefRules(id, rule, detail))
}

func (p *CheckUndefRedef) checkRedefinitions(g *grammar.Grammar) {
	byName := map[string][]*grammar.Rule{}
	for _, r := range g.Rules {
		byName[r.ID.Name] = append(byName[r.ID.Name], r)
	}
	for name, rules := range byName {
		if len(rules) > 1 {
			p.recordError(redefRules(name, rules))
		}
	}
}

// closestRuleName reports the nearest rule identifier to name by edit
// distance, if one is within two edits.
func closestRuleName(g *grammar.Grammar, name string) (string, bool) {
	best := ""
	bestDist := -1
	for _, r := range g.Rules {
		d := levenshtein.ComputeDistance(name, r.ID.Name)
		if bestDist == -1 || d < bestDist {
			bestDist, best = d, r.ID.Name
		}
	}
	if bestDist >= 0 && bestDist <= 2 {
		return best, true
	}
	return "", false
}
