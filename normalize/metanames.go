package normalize

import (
	"fmt"
	"strings"

	"github.com/glebzlat/polygen/grammar"
)

// GenerateMetanames assigns every Part a capture name, resetting its
// per-Alt bookkeeping each time it visits an Alt. Since Walk is
// post-order, an Alt's own Parts are visited before the Alt node
// itself, so the reset performed here on *grammar.Alt takes effect for
// the next Alt in document order rather than the one just finished;
// the very first Alt walked gets the initial state NewGenerateMetanames
// sets up (index 1, no names used), which is the state a reset leaves.
type GenerateMetanames struct {
	base
	index int
	used  map[string]bool
}

func NewGenerateMetanames() *GenerateMetanames {
	return &GenerateMetanames{
		base:  base{name: "GenerateMetanames"},
		index: 1,
		used:  map[string]bool{},
	}
}

func (p *GenerateMetanames) Visit(n grammar.Node) (bool, error) {
	switch x := n.(type) {
	case *grammar.Part:
		return p.visitPart(x)
	case *grammar.Alt:
		p.index = 1
		p.used = map[string]bool{}
	}
	return false, nil
}

func (p *GenerateMetanames) visitPart(part *grammar.Part) (bool, error) {
	if part.Predicate != grammar.NoPredicate {
		return p.visitPredicatePart(part), nil
	}

	switch prim := part.Primary.(type) {
	case *grammar.Char, *grammar.String, *grammar.AnyChar:
		name := fmt.Sprintf("_%d", p.index)
		p.index++
		if part.MetaName == name {
			return false, nil
		}
		part.MetaName = name
		return true, nil
	case *grammar.Identifier:
		return p.visitIdentifierPart(part, prim)
	default:
		return false, nil
	}
}

func (p *GenerateMetanames) visitPredicatePart(part *grammar.Part) bool {
	if part.MetaName == "_" {
		return false
	}
	if part.MetaName != "" {
		// A value copy, not grammar.NewPart: the warning only needs to
		// render the part's old metaname, not hold a structurally valid
		// tree node, and NewPart would steal Primary/Quantifier's parent
		// link away from the live part.
		snapshot := &grammar.Part{MetaName: part.MetaName, Predicate: part.Predicate, Primary: part.Primary, Quantifier: part.Quantifier}
		part.MetaName = "_"
		p.recordWarning(lookaheadMetanameWarning(snapshot))
		return true
	}
	part.MetaName = "_"
	return true
}

func (p *GenerateMetanames) visitIdentifierPart(part *grammar.Part, id *grammar.Identifier) (bool, error) {
	if part.MetaName != "" {
		if part.MetaName == "_" {
			return false, nil
		}
		if p.used[part.MetaName] {
			p.recordError(metanameRedef(part, part.MetaName))
			return false, nil
		}
		p.used[part.MetaName] = true
		return false, nil
	}

	var varname string
	if strings.Contains(id.Name, "__GEN") {
		varname = fmt.Sprintf("_%d", p.index)
		p.index++
	} else {
		base := strings.ToLower(id.Name)
		if ReservedNames[base] {
			base = "_" + base
		}
		varname = base
		for n := 1; p.used[varname]; n++ {
			varname = fmt.Sprintf("%s%d", base, n)
		}
	}
	p.used[varname] = true
	part.MetaName = varname
	return true, nil
}
