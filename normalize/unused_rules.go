package normalize

import "github.com/glebzlat/polygen/grammar"

// UnusedRules is a supplemental pass (not in the original pipeline,
// where UnusedRulesWarning is declared but never raised): after
// reference resolution, any rule other than the entry rule and the
// synthetic AnyChar__GEN that is never targeted by an Identifier
// primary anywhere in the tree is reported.
type UnusedRules struct {
	base
	referenced map[string]bool
}

func NewUnusedRules() *UnusedRules {
	return &UnusedRules{base: base{name: "UnusedRules"}, referenced: map[string]bool{}}
}

func (p *UnusedRules) Visit(n grammar.Node) (bool, error) {
	switch x := n.(type) {
	case *grammar.Part:
		if id, ok := x.Primary.(*grammar.Identifier); ok {
			p.referenced[id.Name] = true
		}
	case *grammar.Grammar:
		for _, r := range x.Rules {
			if r == x.Entry || r.ID.Name == AnyCharRuleName {
				continue
			}
			if !p.referenced[r.ID.Name] {
				p.recordWarning(unusedRuleWarning(r))
			}
		}
	}
	return false, nil
}
