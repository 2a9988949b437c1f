package normalize

import "github.com/glebzlat/polygen/grammar"

// ExpandClass lowers every Class primary into an Expression of
// single-Char alternatives, one per code point the class's ranges
// denote, sorted and de-duplicated by code point.
type ExpandClass struct{ base }

func NewExpandClass() *ExpandClass {
	return &ExpandClass{base: base{name: "ExpandClass"}}
}

func (p *ExpandClass) Visit(n grammar.Node) (bool, error) {
	class, ok := n.(*grammar.Class)
	if !ok {
		return false, nil
	}
	part, ok := class.Parent().(*grammar.Part)
	if !ok {
		return false, nil
	}

	present := map[rune]bool{}
	valid := true
	for _, rg := range class.Ranges {
		end := rg.Beg
		if rg.End != nil {
			end = *rg.End
		}
		if end < rg.Beg {
			p.recordError(invalidRange(rg))
			valid = false
			continue
		}
		for c := rg.Beg; c <= end; c++ {
			present[c] = true
		}
	}
	if !valid || len(present) == 0 {
		return false, nil
	}

	codepoints := sortedRunes(present)
	alts := make([]*grammar.Alt, len(codepoints))
	for i, c := range codepoints {
		ch := grammar.NewChar(c, class.Pos())
		pt := grammar.NewPart("", grammar.NoPredicate, ch, nil, class.Pos())
		alts[i] = grammar.NewAlt([]*grammar.Part{pt}, nil, nil, class.Pos())
	}
	part.ReplacePrimary(grammar.NewExpression(alts, class.Pos()))
	return true, nil
}

func sortedRunes(set map[rune]bool) []rune {
	out := make([]rune, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	// insertion sort is plenty for character-class sizes (a handful to a
	// few hundred code points); avoids pulling in sort for one call site.
	for i := 1; i < len(out); i++ {
		v := out[i]
		j := i - 1
		for j >= 0 && out[j] > v {
			out[j+1] = out[j]
			j--
		}
		out[j+1] = v
	}
	return out
}
