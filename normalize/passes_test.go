package normalize_test

import (
	"errors"
	"testing"

	"github.com/glebzlat/polygen/grammar"
	"github.com/glebzlat/polygen/normalize"
)

func hasWarningKind(tmw *normalize.TreeModifierWarning, kind string) bool {
	for _, w := range tmw.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

// A rule reference that auto-derives a capture name ("foo" from "Foo")
// must still be checked against an explicit label the grammar assigns
// later in the same Alt; otherwise both Parts silently bind the same Go
// variable.
func TestMetanameRedefErrorDerivedThenExplicitCollide(t *testing.T) {
	_, err := runDriver(t, "@entry R <- Foo foo:Baz\nFoo <- 'x'\nBaz <- 'y'\n")
	var tme *normalize.TreeModifierError
	if !errors.As(err, &tme) {
		t.Fatalf("expected TreeModifierError, got %v", err)
	}
	if !hasErrorKind(tme, "MetanameRedefError") {
		t.Fatalf("expected MetanameRedefError among: %v", tme.Errors)
	}
}

// The symmetric order: an explicit label claims a name first, and a
// later auto-derived identifier would otherwise collide with it. Rather
// than erroring on a name the grammar's own author never wrote, the
// derived name must be disambiguated with a suffix, same as when the
// same rule is referenced twice in one Alt.
func TestMetanameRedefErrorExplicitThenDerivedDisambiguates(t *testing.T) {
	g, err := runDriver(t, "@entry R <- foo:Baz Foo\nBaz <- 'x'\nFoo <- 'y'\n")
	if err != nil {
		var tmw *normalize.TreeModifierWarning
		if !errors.As(err, &tmw) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	r := ruleByName(g, "R")
	if r == nil {
		t.Fatalf("R rule missing")
	}
	parts := r.Expr.Alts[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].MetaName != "foo" {
		t.Fatalf("expected first part to keep explicit name %q, got %q", "foo", parts[0].MetaName)
	}
	if parts[1].MetaName == "foo" || parts[1].MetaName == "" {
		t.Fatalf("expected second part to get a disambiguated name distinct from %q, got %q", "foo", parts[1].MetaName)
	}
}

func TestLookaheadMetanameWarning(t *testing.T) {
	g, err := runDriver(t, "@entry R <- x:&'a' 'a'\n")
	var tmw *normalize.TreeModifierWarning
	if !errors.As(err, &tmw) {
		t.Fatalf("expected TreeModifierWarning, got %v", err)
	}
	if !hasWarningKind(tmw, "LookaheadMetanameWarning") {
		t.Fatalf("expected LookaheadMetanameWarning among: %v", tmw.Warnings)
	}
	r := ruleByName(g, "R")
	if r == nil {
		t.Fatalf("R rule missing")
	}
	lookahead := r.Expr.Alts[0].Parts[0]
	if lookahead.MetaName != "_" {
		t.Fatalf("expected lookahead part's metaname forced to %q, got %q", "_", lookahead.MetaName)
	}
}

func TestUnusedRulesWarning(t *testing.T) {
	_, err := runDriver(t, "@entry R <- 'a'\nUnused <- 'b'\n")
	var tmw *normalize.TreeModifierWarning
	if !errors.As(err, &tmw) {
		t.Fatalf("expected TreeModifierWarning, got %v", err)
	}
	if !hasWarningKind(tmw, "UnusedRulesWarning") {
		t.Fatalf("expected UnusedRulesWarning among: %v", tmw.Warnings)
	}
}

func TestUnusedRulesWarningSparesEntryAndAnyCharGen(t *testing.T) {
	_, err := runDriver(t, "@entry R <- .\n")
	if err != nil {
		var tmw *normalize.TreeModifierWarning
		if !errors.As(err, &tmw) {
			t.Fatalf("unexpected error: %v", err)
		}
		if hasWarningKind(tmw, "UnusedRulesWarning") {
			t.Fatalf("entry rule and synthetic AnyChar__GEN must not be reported unused: %v", tmw.Warnings)
		}
	}
}

func TestSubstituteMetaRefsSplicesNamedAction(t *testing.T) {
	g, err := runDriver(t, "$sum{ return a + b }\n@entry Expr <- a:Term '+' b:Term $sum\nTerm <- 'a'\n")
	if err != nil {
		var tmw *normalize.TreeModifierWarning
		if !errors.As(err, &tmw) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	r := ruleByName(g, "Expr")
	if r == nil {
		t.Fatalf("Expr rule missing")
	}
	alt := r.Expr.Alts[0]
	if alt.ActionRef != nil {
		t.Fatalf("expected ActionRef cleared after substitution, got %+v", alt.ActionRef)
	}
	if alt.Action == nil {
		t.Fatalf("expected Action to be populated from the named meta-def")
	}
	if alt.Action.Body != " return a + b " {
		t.Fatalf("expected action body spliced verbatim, got %q", alt.Action.Body)
	}
}

func TestSubstituteMetaRefsUndefinedReference(t *testing.T) {
	_, err := runDriver(t, "@entry Expr <- a:Term $missing\nTerm <- 'a'\n")
	var tme *normalize.TreeModifierError
	if !errors.As(err, &tme) {
		t.Fatalf("expected TreeModifierError, got %v", err)
	}
	if !hasErrorKind(tme, "UndefMetaRefError") {
		t.Fatalf("expected UndefMetaRefError among: %v", tme.Errors)
	}
}

// Two structurally identical nested expressions in the same rule must
// fold into a single generated rule rather than two copies.
func TestReplaceNestedExpsDedupesIdenticalGroups(t *testing.T) {
	g, err := runDriver(t, "@entry R <- ('a' / 'b') ('a' / 'b')\n")
	if err != nil {
		var tmw *normalize.TreeModifierWarning
		if !errors.As(err, &tmw) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	r := ruleByName(g, "R")
	if r == nil {
		t.Fatalf("R rule missing")
	}
	parts := r.Expr.Alts[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	ids := make([]string, len(parts))
	for i, p := range parts {
		id, ok := p.Primary.(*grammar.Identifier)
		if !ok {
			t.Fatalf("part %d: expected Identifier primary after lowering, got %T", i, p.Primary)
		}
		ids[i] = id.Name
	}
	if ids[0] != ids[1] {
		t.Fatalf("expected both nested groups to share one generated rule, got %q and %q", ids[0], ids[1])
	}
	generated := 0
	for _, gr := range g.Rules {
		if gr.ID.Name == ids[0] {
			generated++
		}
	}
	if generated != 1 {
		t.Fatalf("expected exactly 1 generated rule named %q, got %d", ids[0], generated)
	}
}

func TestLeftRecursiveDirect(t *testing.T) {
	g := parseGrammar(t, "@entry Expr <- Expr '+' T / T\nT <- 'a'\n")
	lr := normalize.LeftRecursive(g)
	if !lr["Expr"] {
		t.Fatalf("expected Expr to be left-recursive")
	}
	if lr["T"] {
		t.Fatalf("expected T not to be left-recursive")
	}
}

func TestLeftRecursiveNotAtLeftmostPosition(t *testing.T) {
	g := parseGrammar(t, "@entry A <- 'x' A / 'y'\n")
	lr := normalize.LeftRecursive(g)
	if lr["A"] {
		t.Fatalf("recursion after a consuming part must not count as left recursion")
	}
}

func TestLeftRecursiveIndirect(t *testing.T) {
	g := parseGrammar(t, "@entry A <- B 'x' / 'y'\nB <- A 'z'\n")
	lr := normalize.LeftRecursive(g)
	if !lr["A"] || !lr["B"] {
		t.Fatalf("expected both A and B to be (indirectly) left-recursive, got %+v", lr)
	}
}

func TestLeftRecursiveThroughPredicate(t *testing.T) {
	g := parseGrammar(t, "@entry A <- &B 'x' / 'z'\nB <- A 'y'\n")
	lr := normalize.LeftRecursive(g)
	if !lr["A"] || !lr["B"] {
		t.Fatalf("expected a leftmost call through a predicate to count toward left recursion, got %+v", lr)
	}
}
