package metaparser

import (
	"testing"

	"github.com/glebzlat/polygen/charsource"
	"github.com/glebzlat/polygen/grammar"
)

func parseOne(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, err := Parse(charsource.NewString(src))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return g
}

func TestSimpleRule(t *testing.T) {
	g := parseOne(t, "Start <- 'a'\n")
	if len(g.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(g.Rules))
	}
	r := g.Rules[0]
	if r.ID.Name != "Start" {
		t.Fatalf("expected rule named Start, got %q", r.ID.Name)
	}
	if len(r.Expr.Alts) != 1 || len(r.Expr.Alts[0].Parts) != 1 {
		t.Fatalf("expected one alt with one part")
	}
	c, ok := r.Expr.Alts[0].Parts[0].Primary.(*grammar.Char)
	if !ok {
		t.Fatalf("expected Char primary, got %T", r.Expr.Alts[0].Parts[0].Primary)
	}
	if c.Value != 'a' {
		t.Fatalf("expected 'a', got %q", c.Value)
	}
}

func TestEntryDirective(t *testing.T) {
	g := parseOne(t, "@entry Start <- 'a'\n")
	r := g.Rules[0]
	if !r.EntryFlag {
		t.Fatalf("expected EntryFlag set")
	}
	if !r.HasDirective("entry") {
		t.Fatalf("expected HasDirective(entry)")
	}
}

func TestClassRangeBoundaries(t *testing.T) {
	g := parseOne(t, "Letter <- [a-z]\n")
	class, ok := g.Rules[0].Expr.Alts[0].Parts[0].Primary.(*grammar.Class)
	if !ok {
		t.Fatalf("expected Class primary, got %T", g.Rules[0].Expr.Alts[0].Parts[0].Primary)
	}
	if len(class.Ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(class.Ranges))
	}
	rg := class.Ranges[0]
	if rg.Beg != 'a' || rg.End == nil || *rg.End != 'z' {
		t.Fatalf("expected a-z, got %v-%v", rg.Beg, rg.End)
	}
}

func TestOctalEscapes(t *testing.T) {
	cases := []struct {
		src  string
		want rune
	}{
		{`R <- '\141'`, 'a'},
		{`R <- '\47'`, '\''},
		{`R <- '\0'`, 0},
	}
	for _, tc := range cases {
		g := parseOne(t, tc.src+"\n")
		c, ok := g.Rules[0].Expr.Alts[0].Parts[0].Primary.(*grammar.Char)
		if !ok {
			t.Fatalf("%s: expected Char primary, got %T", tc.src, g.Rules[0].Expr.Alts[0].Parts[0].Primary)
		}
		if c.Value != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.src, tc.want, c.Value)
		}
	}
}

func TestUnicodeEscapeCaseInsensitive(t *testing.T) {
	lower := parseOne(t, "R <- '\\u03c0'\n")
	upper := parseOne(t, "R <- '\\u03C0'\n")
	lc := lower.Rules[0].Expr.Alts[0].Parts[0].Primary.(*grammar.Char)
	uc := upper.Rules[0].Expr.Alts[0].Parts[0].Primary.(*grammar.Char)
	if lc.Value != 0x03c0 || uc.Value != 0x03c0 {
		t.Fatalf("expected both to decode to U+03C0, got %U and %U", lc.Value, uc.Value)
	}
}

func TestLiteralLengthTyping(t *testing.T) {
	one := parseOne(t, "R <- 'a'\n")
	if _, ok := one.Rules[0].Expr.Alts[0].Parts[0].Primary.(*grammar.Char); !ok {
		t.Fatalf("length-1 literal should be Char, got %T", one.Rules[0].Expr.Alts[0].Parts[0].Primary)
	}

	multi := parseOne(t, "R <- 'ab'\n")
	s, ok := multi.Rules[0].Expr.Alts[0].Parts[0].Primary.(*grammar.String)
	if !ok {
		t.Fatalf("length>=2 literal should be String, got %T", multi.Rules[0].Expr.Alts[0].Parts[0].Primary)
	}
	if s.Value != "ab" {
		t.Fatalf("expected %q, got %q", "ab", s.Value)
	}

	empty := parseOne(t, "R <- ''\n")
	es, ok := empty.Rules[0].Expr.Alts[0].Parts[0].Primary.(*grammar.String)
	if !ok {
		t.Fatalf("length-0 literal should be String, got %T", empty.Rules[0].Expr.Alts[0].Parts[0].Primary)
	}
	if es.Value != "" {
		t.Fatalf("expected empty string, got %q", es.Value)
	}
}

func TestRepetitionForms(t *testing.T) {
	exact := parseOne(t, "R <- 'a'{1}\n")
	rep, ok := exact.Rules[0].Expr.Alts[0].Parts[0].Quantifier.(*grammar.Repetition)
	if !ok {
		t.Fatalf("expected Repetition quantifier, got %T", exact.Rules[0].Expr.Alts[0].Parts[0].Quantifier)
	}
	if rep.Beg != 1 || rep.End != nil {
		t.Fatalf("expected Repetition(1, nil), got Repetition(%d, %v)", rep.Beg, rep.End)
	}

	bounded := parseOne(t, "R <- 'a'{1,2}\n")
	rep2, ok := bounded.Rules[0].Expr.Alts[0].Parts[0].Quantifier.(*grammar.Repetition)
	if !ok {
		t.Fatalf("expected Repetition quantifier, got %T", bounded.Rules[0].Expr.Alts[0].Parts[0].Quantifier)
	}
	if rep2.Beg != 1 || rep2.End == nil || *rep2.End != 2 {
		t.Fatalf("expected Repetition(1, 2), got Repetition(%d, %v)", rep2.Beg, rep2.End)
	}
}

func TestRepetitionRejectsInnerSpace(t *testing.T) {
	_, err := Parse(charsource.NewString("R <- 'a'{1, 2}\n"))
	if err == nil {
		t.Fatalf("expected '{1, 2}' (with space) to fail to parse")
	}
}

func TestMetaRuleAnonymousAction(t *testing.T) {
	g := parseOne(t, "R <- 'a' ${ return 1 }\n")
	alt := g.Rules[0].Expr.Alts[0]
	if alt.Action == nil {
		t.Fatalf("expected anonymous Action to be populated")
	}
	if alt.Action.Body != " return 1 " {
		t.Fatalf("expected action body %q, got %q", " return 1 ", alt.Action.Body)
	}
}

func TestMetaRuleNamedReference(t *testing.T) {
	g := parseOne(t, "R <- 'a' $act\n$act{ return 1 }\n")
	alt := g.Rules[0].Expr.Alts[0]
	if alt.ActionRef == nil {
		t.Fatalf("expected ActionRef to be populated")
	}
	if alt.ActionRef.Name != "act" {
		t.Fatalf("expected reference to %q, got %q", "act", alt.ActionRef.Name)
	}
	m := g.MetaRuleByName("act")
	if m == nil {
		t.Fatalf("expected MetaRule %q to be registered", "act")
	}
	if m.Body != " return 1 " {
		t.Fatalf("expected body %q, got %q", " return 1 ", m.Body)
	}
}

func TestMetaRuleNestedBraces(t *testing.T) {
	g := parseOne(t, "R <- 'a' ${ if x { return 1 } }\n")
	action := g.Rules[0].Expr.Alts[0].Action
	if action == nil {
		t.Fatalf("expected Action to be populated")
	}
	if action.Body != " if x { return 1 } " {
		t.Fatalf("unexpected action body %q", action.Body)
	}
}

func TestPredicatesAndQuantifiers(t *testing.T) {
	g := parseOne(t, "R <- &'a' !'b' 'c'? 'd'* 'e'+\n")
	parts := g.Rules[0].Expr.Alts[0].Parts
	if len(parts) != 5 {
		t.Fatalf("expected 5 parts, got %d", len(parts))
	}
	if parts[0].Predicate != grammar.AndPredicate {
		t.Fatalf("expected AndPredicate on part 0")
	}
	if parts[1].Predicate != grammar.NotPredicate {
		t.Fatalf("expected NotPredicate on part 1")
	}
	if _, ok := parts[2].Quantifier.(*grammar.Opt); !ok {
		t.Fatalf("expected Opt quantifier on part 2, got %T", parts[2].Quantifier)
	}
	if _, ok := parts[3].Quantifier.(*grammar.Star); !ok {
		t.Fatalf("expected Star quantifier on part 3, got %T", parts[3].Quantifier)
	}
	if _, ok := parts[4].Quantifier.(*grammar.Plus); !ok {
		t.Fatalf("expected Plus quantifier on part 4, got %T", parts[4].Quantifier)
	}
}

func TestChoiceAndGrouping(t *testing.T) {
	g := parseOne(t, "R <- ('a' 'b') / 'c'\n")
	alts := g.Rules[0].Expr.Alts
	if len(alts) != 2 {
		t.Fatalf("expected 2 alts, got %d", len(alts))
	}
	if len(alts[0].Parts) != 1 {
		t.Fatalf("expected grouped alt to collapse to one Part wrapping a nested Expression")
	}
	if _, ok := alts[0].Parts[0].Primary.(*grammar.Expression); !ok {
		t.Fatalf("expected nested Expression primary, got %T", alts[0].Parts[0].Primary)
	}
}

func TestAnyCharAndComments(t *testing.T) {
	g := parseOne(t, "# a comment\nR <- . # trailing\n")
	if _, ok := g.Rules[0].Expr.Alts[0].Parts[0].Primary.(*grammar.AnyChar); !ok {
		t.Fatalf("expected AnyChar primary, got %T", g.Rules[0].Expr.Alts[0].Parts[0].Primary)
	}
}

func TestUndefinedReferenceStillParses(t *testing.T) {
	// The meta-parser is purely syntactic: it has no notion of whether an
	// identifier resolves to a known rule. That check belongs to the
	// normalization pipeline's CheckUndefRedef pass.
	g := parseOne(t, "A <- B\n")
	id, ok := g.Rules[0].Expr.Alts[0].Parts[0].Primary.(*grammar.Identifier)
	if !ok {
		t.Fatalf("expected Identifier primary, got %T", g.Rules[0].Expr.Alts[0].Parts[0].Primary)
	}
	if id.Name != "B" {
		t.Fatalf("expected reference to B, got %q", id.Name)
	}
}

func TestMultipleRulesOrdering(t *testing.T) {
	g := parseOne(t, "@entry Expr <- Expr '+' T / T\nT <- 'a'\n")
	if len(g.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(g.Rules))
	}
	if g.Rules[0].ID.Name != "Expr" || g.Rules[1].ID.Name != "T" {
		t.Fatalf("expected rule order Expr, T; got %q, %q", g.Rules[0].ID.Name, g.Rules[1].ID.Name)
	}
	expr := g.Rules[0].Expr
	if len(expr.Alts) != 2 {
		t.Fatalf("expected 2 alts in Expr, got %d", len(expr.Alts))
	}
}
