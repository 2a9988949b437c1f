package normalize

import "github.com/glebzlat/polygen/grammar"

// ReplaceRep lowers a bounded Repetition{beg, end} quantifier on a Part
// into a plain Expression: `beg` mandatory copies of the Part's
// primary, followed, when end > beg, by one optional Part whose
// primary is an Expression of (end-beg) further copies.
type ReplaceRep struct{ base }

func NewReplaceRep() *ReplaceRep {
	return &ReplaceRep{base: base{name: "ReplaceRep"}}
}

func (p *ReplaceRep) Visit(n grammar.Node) (bool, error) {
	part, ok := n.(*grammar.Part)
	if !ok {
		return false, nil
	}
	rep, ok := part.Quantifier.(*grammar.Repetition)
	if !ok {
		return false, nil
	}
	if rep.End != nil && *rep.End < rep.Beg {
		p.recordError(invalidRepetition(rep))
		return false, nil
	}

	pos := part.Pos()
	mandatory := make([]*grammar.Part, rep.Beg)
	for i := range mandatory {
		primary := deepCopyPrimary(part.Primary, pos)
		mandatory[i] = grammar.NewPart("", grammar.NoPredicate, primary, nil, pos)
	}

	var parts []*grammar.Part
	parts = append(parts, mandatory...)

	if rep.End != nil && *rep.End > rep.Beg {
		n := *rep.End - rep.Beg
		optionalParts := make([]*grammar.Part, n)
		for i := range optionalParts {
			primary := deepCopyPrimary(part.Primary, pos)
			optionalParts[i] = grammar.NewPart("", grammar.NoPredicate, primary, nil, pos)
		}
		optExpr := grammar.NewExpression(
			[]*grammar.Alt{grammar.NewAlt(optionalParts, nil, nil, pos)}, pos)
		optPart := grammar.NewPart("", grammar.NoPredicate, optExpr, grammar.NewOpt(pos), pos)
		parts = append(parts, optPart)
	}

	newExpr := grammar.NewExpression(
		[]*grammar.Alt{grammar.NewAlt(parts, nil, nil, pos)}, pos)
	part.ReplacePrimary(newExpr)
	part.Quantifier = nil
	return true, nil
}
