package grammar

// Equal reports whether a and b have the same structure: deep and
// order-sensitive for sequences (Rules, Alts, Parts), but set-equal for
// Class (ranges compared after sorting by code point). Parent back-links
// are never consulted, so Equal is safe to call on subtrees that have
// been detached or re-homed.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Grammar:
		y, ok := b.(*Grammar)
		return ok && equalGrammar(x, y)
	case *Rule:
		y, ok := b.(*Rule)
		return ok && equalRule(x, y)
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Name == y.Name
	case *Expression:
		y, ok := b.(*Expression)
		return ok && equalExpression(x, y)
	case *Alt:
		y, ok := b.(*Alt)
		return ok && equalAlt(x, y)
	case *Part:
		y, ok := b.(*Part)
		return ok && equalPart(x, y)
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *Char:
		y, ok := b.(*Char)
		return ok && x.Value == y.Value
	case *Class:
		y, ok := b.(*Class)
		return ok && equalClass(x, y)
	case *Range:
		y, ok := b.(*Range)
		return ok && equalRange(x, y)
	case *AnyChar:
		_, ok := b.(*AnyChar)
		return ok
	case *Opt:
		_, ok := b.(*Opt)
		return ok
	case *Star:
		_, ok := b.(*Star)
		return ok
	case *Plus:
		_, ok := b.(*Plus)
		return ok
	case *Repetition:
		y, ok := b.(*Repetition)
		return ok && equalRepetition(x, y)
	case *MetaRule:
		y, ok := b.(*MetaRule)
		return ok && x.Name == y.Name && x.Body == y.Body
	case *MetaRef:
		y, ok := b.(*MetaRef)
		return ok && x.Name == y.Name
	default:
		return false
	}
}

func equalGrammar(x, y *Grammar) bool {
	if len(x.Rules) != len(y.Rules) || len(x.MetaRules) != len(y.MetaRules) {
		return false
	}
	for i := range x.Rules {
		if !equalRule(x.Rules[i], y.Rules[i]) {
			return false
		}
	}
	for i := range x.MetaRules {
		if !Equal(x.MetaRules[i], y.MetaRules[i]) {
			return false
		}
	}
	return true
}

func equalRule(x, y *Rule) bool {
	return x.ID.Name == y.ID.Name &&
		x.EntryFlag == y.EntryFlag &&
		x.IgnoreFlag == y.IgnoreFlag &&
		equalExpression(x.Expr, y.Expr)
}

func equalExpression(x, y *Expression) bool {
	if len(x.Alts) != len(y.Alts) {
		return false
	}
	for i := range x.Alts {
		if !equalAlt(x.Alts[i], y.Alts[i]) {
			return false
		}
	}
	return true
}

func equalAlt(x, y *Alt) bool {
	if len(x.Parts) != len(y.Parts) {
		return false
	}
	for i := range x.Parts {
		if !equalPart(x.Parts[i], y.Parts[i]) {
			return false
		}
	}
	if (x.Action == nil) != (y.Action == nil) {
		return false
	}
	if x.Action != nil && !Equal(x.Action, y.Action) {
		return false
	}
	if (x.ActionRef == nil) != (y.ActionRef == nil) {
		return false
	}
	if x.ActionRef != nil && !Equal(x.ActionRef, y.ActionRef) {
		return false
	}
	return true
}

func equalPart(x, y *Part) bool {
	if x.MetaName != y.MetaName || x.Predicate != y.Predicate {
		return false
	}
	if !Equal(x.Primary, y.Primary) {
		return false
	}
	return equalQuantifier(x.Quantifier, y.Quantifier)
}

func equalQuantifier(x, y Quantifier) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	return Equal(x, y)
}

func equalClass(x, y *Class) bool {
	xr := sortedRanges(x.Ranges)
	yr := sortedRanges(y.Ranges)
	if len(xr) != len(yr) {
		return false
	}
	for i := range xr {
		if !equalRange(xr[i], yr[i]) {
			return false
		}
	}
	return true
}

func sortedRanges(ranges []*Range) []*Range {
	out := make([]*Range, len(ranges))
	copy(out, ranges)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && rangeLess(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func rangeLess(a, b *Range) bool {
	if a.Beg != b.Beg {
		return a.Beg < b.Beg
	}
	ae, be := a.Beg, b.Beg
	if a.End != nil {
		ae = *a.End
	}
	if b.End != nil {
		be = *b.End
	}
	return ae < be
}

func equalRange(x, y *Range) bool {
	if x.Beg != y.Beg {
		return false
	}
	if (x.End == nil) != (y.End == nil) {
		return false
	}
	return x.End == nil || *x.End == *y.End
}

func equalRepetition(x, y *Repetition) bool {
	if x.Beg != y.Beg {
		return false
	}
	if (x.End == nil) != (y.End == nil) {
		return false
	}
	return x.End == nil || *x.End == *y.End
}
