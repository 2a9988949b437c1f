package normalize

import "github.com/glebzlat/polygen/grammar"

// deepCopyPrimary clones a Primary subtree with fresh positions and no
// shared nodes, so the copy can be parented independently of the
// original. grammar.Copy only handles atomic variants; ReplaceRep needs
// to duplicate a Part's primary (which may itself be a Class or a
// nested Expression) `beg` or `end-beg` times, so this covers every
// Primary variant recursively.
func deepCopyPrimary(pr grammar.Primary, pos grammar.Position) grammar.Primary {
	switch x := pr.(type) {
	case *grammar.Identifier:
		return grammar.NewIdentifier(x.Name, pos)
	case *grammar.String:
		return grammar.NewString(x.Value, pos)
	case *grammar.Char:
		return grammar.NewChar(x.Value, pos)
	case *grammar.AnyChar:
		return grammar.NewAnyChar(pos)
	case *grammar.Class:
		ranges := make([]*grammar.Range, len(x.Ranges))
		for i, r := range x.Ranges {
			ranges[i] = grammar.NewRange(r.Beg, copyRuneP(r.End), pos)
		}
		return grammar.NewClass(ranges, pos)
	case *grammar.Expression:
		alts := make([]*grammar.Alt, len(x.Alts))
		for i, a := range x.Alts {
			alts[i] = deepCopyAlt(a, pos)
		}
		return grammar.NewExpression(alts, pos)
	default:
		return pr
	}
}

func deepCopyAlt(a *grammar.Alt, pos grammar.Position) *grammar.Alt {
	parts := make([]*grammar.Part, len(a.Parts))
	for i, p := range a.Parts {
		parts[i] = deepCopyPart(p, pos)
	}
	var actionRef *grammar.MetaRef
	var action *grammar.MetaRule
	if a.ActionRef != nil {
		actionRef = grammar.NewMetaRef(a.ActionRef.Name, pos)
	}
	if a.Action != nil {
		action = grammar.NewMetaRule(a.Action.Name, a.Action.Body, pos)
	}
	return grammar.NewAlt(parts, actionRef, action, pos)
}

func deepCopyPart(p *grammar.Part, pos grammar.Position) *grammar.Part {
	primary := deepCopyPrimary(p.Primary, pos)
	var quant grammar.Quantifier
	switch q := p.Quantifier.(type) {
	case *grammar.Opt:
		quant = grammar.NewOpt(pos)
	case *grammar.Star:
		quant = grammar.NewStar(pos)
	case *grammar.Plus:
		quant = grammar.NewPlus(pos)
	case *grammar.Repetition:
		quant = grammar.NewRepetition(q.Beg, copyIntP(q.End), pos)
	}
	return grammar.NewPart(p.MetaName, p.Predicate, primary, quant, pos)
}

func copyRuneP(r *rune) *rune {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}

func copyIntP(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
