package normalize

import "github.com/glebzlat/polygen/grammar"

// SubstituteMetaRefs replaces every Alt's $name meta-action reference
// with a verbatim copy of the matching meta-definition's body, looked
// up by name in the enclosing Grammar. An undefined reference is a
// low-severity error; the Alt is left with its ActionRef untouched so
// later stages still see it carries no usable action.
type SubstituteMetaRefs struct{ base }

func NewSubstituteMetaRefs() *SubstituteMetaRefs {
	return &SubstituteMetaRefs{base: base{name: "SubstituteMetaRefs"}}
}

func (p *SubstituteMetaRefs) Visit(n grammar.Node) (bool, error) {
	alt, ok := n.(*grammar.Alt)
	if !ok || alt.ActionRef == nil {
		return false, nil
	}
	g := enclosingGrammar(alt)
	if g == nil {
		return false, nil
	}
	def := g.MetaRuleByName(alt.ActionRef.Name)
	if def == nil {
		p.recordError(undefMetaRef(alt.ActionRef, alt))
		return false, nil
	}
	alt.SetAction(grammar.NewMetaRule(def.Name, def.Body, def.Pos()))
	return true, nil
}

// enclosingGrammar walks parent links up from any node to the root
// Grammar, or returns nil if the node is not yet attached to one.
func enclosingGrammar(n grammar.Node) *grammar.Grammar {
	for n != nil {
		if g, ok := n.(*grammar.Grammar); ok {
			return g
		}
		n = n.Parent()
	}
	return nil
}
