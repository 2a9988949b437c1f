package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func charPart(v rune) *Part {
	return NewPart("", NoPredicate, NewChar(v, Position{}), nil, Position{})
}

func TestEqualIdentifier(t *testing.T) {
	a := NewIdentifier("Foo", Position{Line: 1})
	b := NewIdentifier("Foo", Position{Line: 99})
	if !Equal(a, b) {
		t.Fatalf("identical identifiers at different positions must compare equal")
	}
	c := NewIdentifier("Bar", Position{})
	if Equal(a, c) {
		t.Fatalf("identifiers with different names must not compare equal")
	}
}

func TestEqualClassIgnoresRangeOrder(t *testing.T) {
	end := rune('z')
	r1 := NewRange('a', &end, Position{})
	r2 := NewRange('0', nil, Position{})
	x := NewClass([]*Range{r1, r2}, Position{})
	y := NewClass([]*Range{r2, r1}, Position{})
	if !Equal(x, y) {
		t.Fatalf("Class equality must be order-independent")
	}
}

func TestEqualExpressionOrderSensitive(t *testing.T) {
	a1 := NewAlt([]*Part{charPart('a')}, nil, nil, Position{})
	a2 := NewAlt([]*Part{charPart('b')}, nil, nil, Position{})
	x := NewExpression([]*Alt{a1, a2}, Position{})
	y := NewExpression([]*Alt{a2, a1}, Position{})
	if Equal(x, y) {
		t.Fatalf("Expression/Alt order must matter for equality")
	}
}

func TestEqualIgnoresParentBackLinks(t *testing.T) {
	x := NewIdentifier("Same", Position{})
	y := NewIdentifier("Same", Position{})
	fakeParent := NewIdentifier("Parent", Position{})
	y.SetParent(fakeParent)
	if !Equal(x, y) {
		t.Fatalf("Equal must not be affected by parent back-links")
	}
}

func TestWalkPostOrder(t *testing.T) {
	var order []string
	c := NewChar('x', Position{})
	part := NewPart("", NoPredicate, c, nil, Position{})
	alt := NewAlt([]*Part{part}, nil, nil, Position{})
	expr := NewExpression([]*Alt{alt}, Position{})
	rule := NewRule(NewIdentifier("R", Position{}), expr, nil, Position{})
	g := NewGrammar([]*Rule{rule}, nil, Position{})

	_, err := Walk(g, VisitorFunc(func(n Node) (bool, error) {
		order = append(order, String(n))
		return false, nil
	}))
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(order) == 0 || order[len(order)-1] != String(g) {
		t.Fatalf("Walk must visit the root last (post-order), got %v", order)
	}
	if order[0] != String(rule.ID) {
		t.Fatalf("Walk must visit the identifier before its rule, got %v", order)
	}
}

func TestGoCmpAgreesWithHandRolledEqual(t *testing.T) {
	a := NewChar('a', Position{})
	b := NewChar('a', Position{Line: 5})
	if diff := cmp.Diff(a, b, cmpopts.IgnoreUnexported(Char{})); diff != "" {
		t.Fatalf("go-cmp diff mismatch: %s", diff)
	}
	if !Equal(a, b) {
		t.Fatalf("hand-rolled Equal disagrees with go-cmp on equivalent nodes")
	}
}
