package codesink_test

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/glebzlat/polygen/codesink"
)

// buildSimple renders a one-rule, one-alt grammar fragment through GoSink
// directly, bypassing codegen.Emitter, to keep the sink under test in
// isolation.
func buildSimple(t *testing.T, configure func(s *codesink.GoSink)) string {
	t.Helper()
	s := codesink.NewGoSink("parser")
	s.Prologue("const x = 1\n")
	s.EntryPoint("Start")
	configure(s)
	return s.String()
}

func mustParse(t *testing.T, src string) {
	t.Helper()
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "generated.go", src, 0); err != nil {
		t.Fatalf("generated source does not parse: %v\n---\n%s", err, src)
	}
}

func TestPlainRulePart(t *testing.T) {
	src := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("Start", false)
		s.AltOpen([]string{"a"})
		s.Part(codesink.PartSpec{MetaName: "a", Kind: codesink.KindChar, Char: 'x'})
		s.AltClose("", []string{"a"})
		s.RuleFooter()
	})
	mustParse(t, src)
	if !strings.Contains(src, "ϡapplyPlain") {
		t.Fatalf("expected plain apply for non-left-recursive rule:\n%s", src)
	}
	if strings.Contains(src, "ϡapply(") {
		t.Fatalf("plain rule must not use the LR-aware apply:\n%s", src)
	}
}

func TestLeftRecursiveRuleUsesϡapply(t *testing.T) {
	src := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("Expr", true)
		s.AltOpen(nil)
		s.Part(codesink.PartSpec{Kind: codesink.KindRule, RuleName: "Expr"})
		s.AltClose("", nil)
		s.RuleFooter()
	})
	mustParse(t, src)
	if !strings.Contains(src, `parser.eng.ϡapply("Expr"`) {
		t.Fatalf("expected ϡapply for left-recursive rule:\n%s", src)
	}
}

func TestAndPredicateEmitsLookahead(t *testing.T) {
	src := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("R", false)
		s.AltOpen(nil)
		s.Part(codesink.PartSpec{Predicate: codesink.AndPredicate, Kind: codesink.KindChar, Char: 'a'})
		s.AltClose("", nil)
		s.RuleFooter()
	})
	mustParse(t, src)
	if !strings.Contains(src, "ϡlookahead(true") {
		t.Fatalf("expected positive lookahead:\n%s", src)
	}
}

func TestNotPredicateEmitsLookahead(t *testing.T) {
	src := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("R", false)
		s.AltOpen(nil)
		s.Part(codesink.PartSpec{Predicate: codesink.NotPredicate, Kind: codesink.KindChar, Char: 'a'})
		s.AltClose("", nil)
		s.RuleFooter()
	})
	mustParse(t, src)
	if !strings.Contains(src, "ϡlookahead(false") {
		t.Fatalf("expected negative lookahead:\n%s", src)
	}
}

func TestQuantifiersWrapTheBaseMatch(t *testing.T) {
	cases := []struct {
		q    codesink.Quantifier
		want string
	}{
		{codesink.QuantOpt, "ϡmaybe("},
		{codesink.QuantStar, "ϡloop(0,"},
		{codesink.QuantPlus, "ϡloop(1,"},
	}
	for _, c := range cases {
		src := buildSimple(t, func(s *codesink.GoSink) {
			s.RuleHeader("R", false)
			s.AltOpen([]string{"a"})
			s.Part(codesink.PartSpec{MetaName: "a", Quantifier: c.q, Kind: codesink.KindChar, Char: 'a'})
			s.AltClose("", []string{"a"})
			s.RuleFooter()
		})
		mustParse(t, src)
		if !strings.Contains(src, c.want) {
			t.Fatalf("quantifier %v: expected %q in:\n%s", c.q, c.want, src)
		}
	}
}

func TestPredicateAndQuantifierCompose(t *testing.T) {
	src := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("R", false)
		s.AltOpen(nil)
		s.Part(codesink.PartSpec{Predicate: codesink.AndPredicate, Quantifier: codesink.QuantStar, Kind: codesink.KindChar, Char: 'a'})
		s.AltClose("", nil)
		s.RuleFooter()
	})
	mustParse(t, src)
	if !strings.Contains(src, "ϡlookahead(true, func() bool { _, ϡok := parser.eng.ϡloop(0,") {
		t.Fatalf("expected lookahead to wrap the loop, not the other way around:\n%s", src)
	}
}

func TestActionBodySplicedAsFunctionLiteral(t *testing.T) {
	src := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("R", false)
		s.AltOpen([]string{"a"})
		s.Part(codesink.PartSpec{MetaName: "a", Kind: codesink.KindChar, Char: 'a'})
		s.AltClose("return a", []string{"a"})
		s.RuleFooter()
	})
	mustParse(t, src)
	if !strings.Contains(src, "func() interface{} {\nreturn a\n\t\t\t}(), true") {
		t.Fatalf("expected action body spliced into a niladic func literal:\n%s", src)
	}
}

func TestDefaultResultByCaptureCount(t *testing.T) {
	zero := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("R", false)
		s.AltOpen(nil)
		s.Part(codesink.PartSpec{Kind: codesink.KindChar, Char: 'a'})
		s.AltClose("", nil)
		s.RuleFooter()
	})
	mustParse(t, zero)
	if !strings.Contains(zero, "return nil, true") {
		t.Fatalf("expected nil result for 0 captures:\n%s", zero)
	}

	one := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("R", false)
		s.AltOpen([]string{"a"})
		s.Part(codesink.PartSpec{MetaName: "a", Kind: codesink.KindChar, Char: 'a'})
		s.AltClose("", []string{"a"})
		s.RuleFooter()
	})
	mustParse(t, one)
	if !strings.Contains(one, "return a, true") {
		t.Fatalf("expected the lone capture as the result for 1 capture:\n%s", one)
	}

	two := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("R", false)
		s.AltOpen([]string{"a", "b"})
		s.Part(codesink.PartSpec{MetaName: "a", Kind: codesink.KindChar, Char: 'a'})
		s.Part(codesink.PartSpec{MetaName: "b", Kind: codesink.KindChar, Char: 'b'})
		s.AltClose("", []string{"a", "b"})
		s.RuleFooter()
	})
	mustParse(t, two)
	if !strings.Contains(two, "return []interface{}{a, b}, true") {
		t.Fatalf("expected a slice result for 2+ captures:\n%s", two)
	}
}

func TestStringAndAnyCharPrimaries(t *testing.T) {
	src := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("R", false)
		s.AltOpen([]string{"a", "b"})
		s.Part(codesink.PartSpec{MetaName: "a", Kind: codesink.KindString, Str: "foo"})
		s.Part(codesink.PartSpec{MetaName: "b", Kind: codesink.KindAnyChar})
		s.AltClose("", []string{"a", "b"})
		s.RuleFooter()
	})
	mustParse(t, src)
	if !strings.Contains(src, `ϡexpectString("foo")`) {
		t.Fatalf("expected string match call:\n%s", src)
	}
	if !strings.Contains(src, "ϡexpectRune(0, true)") {
		t.Fatalf("expected any-char match call:\n%s", src)
	}
}

func TestUnnamedCaptureUsesBlank(t *testing.T) {
	src := buildSimple(t, func(s *codesink.GoSink) {
		s.RuleHeader("R", false)
		s.AltOpen(nil)
		s.Part(codesink.PartSpec{Kind: codesink.KindChar, Char: 'a'})
		s.AltClose("", nil)
		s.RuleFooter()
	})
	mustParse(t, src)
	if !strings.Contains(src, "_, ϡok = parser.eng.ϡexpectRune") {
		t.Fatalf("expected blank assignment for an unnamed part:\n%s", src)
	}
}
