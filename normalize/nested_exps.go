package normalize

import (
	"fmt"

	"github.com/glebzlat/polygen/grammar"
	"github.com/google/go-cmp/cmp"
)

// SimplifyNestedExps lifts a singly-wrapped nested Expression into its
// enclosing Expression, so a doubly-parenthesized group like `((e1 / e2))`
// does not force ReplaceNestedExps to synthesize a rule for the outer
// layer: Expression(Alt(Part(prime=Expression(...)))), with the Part
// carrying no predicate or quantifier, collapses by splicing the inner
// Alts directly into the outer Expression.
type SimplifyNestedExps struct{ base }

func NewSimplifyNestedExps() *SimplifyNestedExps {
	return &SimplifyNestedExps{base: base{name: "SimplifyNestedExps"}}
}

func (p *SimplifyNestedExps) Visit(n grammar.Node) (bool, error) {
	outer, ok := n.(*grammar.Expression)
	if !ok || len(outer.Alts) != 1 {
		return false, nil
	}
	alt := outer.Alts[0]
	if len(alt.Parts) != 1 {
		return false, nil
	}
	part := alt.Parts[0]
	if part.Predicate != grammar.NoPredicate || part.Quantifier != nil {
		return false, nil
	}
	inner, ok := part.Primary.(*grammar.Expression)
	if !ok {
		return false, nil
	}
	outer.ReplaceAlts(inner.Alts)
	return true, nil
}

// ReplaceNestedExps gives every remaining nested Expression its own rule:
// A <- (En1 / En2) E1 E2  becomes  A <- Ag E1 E2 / Ag <- En1 / En2. A
// nested Expression structurally identical (grammar.Equal, via a
// cmp.Comparer so the dedupe uses the same equality cmp.Equal exercises
// in tests rather than a second hand-rolled walk) to a rule this pass has
// already generated is folded into a reference to that rule instead of
// creating a duplicate.
type ReplaceNestedExps struct {
	base
	generated []*grammar.Rule
	counters  map[string]int
}

func NewReplaceNestedExps() *ReplaceNestedExps {
	return &ReplaceNestedExps{base: base{name: "ReplaceNestedExps"}, counters: map[string]int{}}
}

var exprComparer = cmp.Comparer(func(a, b *grammar.Expression) bool {
	return grammar.Equal(a, b)
})

func (p *ReplaceNestedExps) Visit(n grammar.Node) (bool, error) {
	expr, ok := n.(*grammar.Expression)
	if !ok {
		return false, nil
	}
	if _, ok := expr.Parent().(*grammar.Rule); ok {
		return false, nil
	}
	part, ok := expr.Parent().(*grammar.Part)
	if !ok {
		return false, nil
	}

	for _, r := range p.generated {
		if cmp.Equal(r.Expr, expr, exprComparer) {
			part.ReplacePrimary(grammar.NewIdentifier(r.ID.Name, part.Pos()))
			return true, nil
		}
	}

	g := enclosingGrammar(part)
	if g == nil {
		return false, nil
	}
	baseName := "Grammar"
	if r := enclosingRule(part); r != nil {
		baseName = r.ID.Name
	}
	p.counters[baseName]++
	name := fmt.Sprintf("%s__GEN_%d", baseName, p.counters[baseName])
	id := grammar.NewIdentifier(name, part.Pos())

	newRule := grammar.NewRule(id, expr, nil, part.Pos())
	g.AddRule(newRule)
	p.generated = append(p.generated, newRule)

	part.ReplacePrimary(grammar.NewIdentifier(name, part.Pos()))
	return true, nil
}
