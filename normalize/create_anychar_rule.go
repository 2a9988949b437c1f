package normalize

import "github.com/glebzlat/polygen/grammar"

// AnyCharRuleName is the identifier CreateAnyCharRule gives the
// synthetic wildcard rule.
const AnyCharRuleName = "AnyChar__GEN"

// CreateAnyCharRule synthesizes `AnyChar__GEN <- .` once per grammar and
// redirects every other in-place AnyChar primary to a reference to it.
type CreateAnyCharRule struct{ base }

func NewCreateAnyCharRule() *CreateAnyCharRule {
	return &CreateAnyCharRule{base: base{name: "CreateAnyCharRule"}}
}

func (p *CreateAnyCharRule) Visit(n grammar.Node) (bool, error) {
	switch x := n.(type) {
	case *grammar.Grammar:
		if x.RuleByID(AnyCharRuleName) != nil {
			return false, nil
		}
		x.AddRule(anyCharGenRule(x.Pos()))
		return true, nil
	case *grammar.Part:
		if _, ok := x.Primary.(*grammar.AnyChar); !ok {
			return false, nil
		}
		if r := enclosingRule(x); r != nil && r.ID.Name == AnyCharRuleName {
			return false, nil
		}
		g := enclosingGrammar(x)
		if g == nil {
			return false, nil
		}
		if g.RuleByID(AnyCharRuleName) == nil {
			return false, nil
		}
		x.ReplacePrimary(grammar.NewIdentifier(AnyCharRuleName, x.Pos()))
		return true, nil
	default:
		return false, nil
	}
}

func anyCharGenRule(pos grammar.Position) *grammar.Rule {
	id := grammar.NewIdentifier(AnyCharRuleName, pos)
	part := grammar.NewPart("", grammar.NoPredicate, grammar.NewAnyChar(pos), nil, pos)
	alt := grammar.NewAlt([]*grammar.Part{part}, nil, nil, pos)
	expr := grammar.NewExpression([]*grammar.Alt{alt}, pos)
	return grammar.NewRule(id, expr, nil, pos)
}

// enclosingRule walks parent links up from any node to the nearest
// enclosing Rule, or returns nil (for nodes hanging off a MetaRule
// rather than a Rule body).
func enclosingRule(n grammar.Node) *grammar.Rule {
	for n != nil {
		if r, ok := n.(*grammar.Rule); ok {
			return r
		}
		n = n.Parent()
	}
	return nil
}
