// Package codegen renders a normalized grammar.Grammar as a
// self-contained Go parser source file: a fixed runtime-contract
// prologue (component F, see prologue.go) followed by one recognizer
// function per rule, driven through codesink.CodeSink.
package codegen

import (
	"fmt"

	"github.com/glebzlat/polygen/codesink"
	"github.com/glebzlat/polygen/grammar"
	"github.com/glebzlat/polygen/normalize"
)

// Emitter walks a normalized Grammar and renders it through a CodeSink.
// Grammar is expected to have already been through normalize.Driver:
// every Part carries a capture name, Class/Repetition/in-place AnyChar
// are gone, and Grammar.Entry is set.
type Emitter struct{}

// NewEmitter returns an Emitter. It holds no state of its own; all
// per-run state lives in the CodeSink.
func NewEmitter() *Emitter { return &Emitter{} }

// Emit renders g as a complete Go source file in the given package,
// returning the rendered text.
func (em *Emitter) Emit(g *grammar.Grammar, packageName string) (string, error) {
	if g.Entry == nil {
		return "", fmt.Errorf("codegen: grammar has no entry rule")
	}
	leftRec := normalize.LeftRecursive(g)
	sink := codesink.NewGoSink(packageName)
	em.EmitTo(g, sink, leftRec)
	return sink.String(), nil
}

// EmitTo drives sink with g's rules, for callers that supply their own
// CodeSink (or leftRecursive map, e.g. precomputed once for several
// emissions of the same grammar).
func (em *Emitter) EmitTo(g *grammar.Grammar, sink codesink.CodeSink, leftRecursive map[string]bool) {
	sink.Prologue(ϡRuntimeSource)
	sink.EntryPoint(g.Entry.ID.Name)
	for _, r := range g.Rules {
		em.emitRule(sink, r, leftRecursive[r.ID.Name])
	}
}

func (em *Emitter) emitRule(sink codesink.CodeSink, r *grammar.Rule, leftRecursive bool) {
	sink.RuleHeader(r.ID.Name, leftRecursive)
	for _, alt := range r.Expr.Alts {
		em.emitAlt(sink, alt)
	}
	sink.RuleFooter()
}

func (em *Emitter) emitAlt(sink codesink.CodeSink, alt *grammar.Alt) {
	names := capturedNames(alt)
	sink.AltOpen(names)
	for _, part := range alt.Parts {
		sink.Part(partSpec(part))
	}
	action := ""
	if alt.Action != nil {
		action = alt.Action.Body
	}
	sink.AltClose(action, names)
}

// capturedNames lists, in Part order, the distinct non-"_" capture names
// an Alt's Parts bind — the default result built in AltClose when the
// Alt carries no meta-action.
func capturedNames(alt *grammar.Alt) []string {
	var names []string
	seen := map[string]bool{}
	for _, part := range alt.Parts {
		if part.MetaName == "" || part.MetaName == "_" || seen[part.MetaName] {
			continue
		}
		seen[part.MetaName] = true
		names = append(names, part.MetaName)
	}
	return names
}

func partSpec(part *grammar.Part) codesink.PartSpec {
	spec := codesink.PartSpec{
		MetaName:  part.MetaName,
		Predicate: predicateOf(part.Predicate),
	}
	if spec.MetaName == "_" {
		spec.MetaName = ""
	}
	spec.Quantifier = quantifierOf(part.Quantifier)

	switch prim := part.Primary.(type) {
	case *grammar.Char:
		spec.Kind = codesink.KindChar
		spec.Char = prim.Value
	case *grammar.String:
		spec.Kind = codesink.KindString
		spec.Str = prim.Value
	case *grammar.AnyChar:
		spec.Kind = codesink.KindAnyChar
	case *grammar.Identifier:
		spec.Kind = codesink.KindRule
		spec.RuleName = prim.Name
	default:
		// Unreachable once normalize.Driver has run: Class and nested
		// Expression primaries are always lowered before emission.
		panic(fmt.Sprintf("codegen: unexpected primary %T reached the emitter", prim))
	}
	return spec
}

func predicateOf(p grammar.PredicateKind) codesink.Predicate {
	switch p {
	case grammar.AndPredicate:
		return codesink.AndPredicate
	case grammar.NotPredicate:
		return codesink.NotPredicate
	default:
		return codesink.NoPredicate
	}
}

func quantifierOf(q grammar.Quantifier) codesink.Quantifier {
	switch q.(type) {
	case *grammar.Opt:
		return codesink.QuantOpt
	case *grammar.Star:
		return codesink.QuantStar
	case *grammar.Plus:
		return codesink.QuantPlus
	default:
		return codesink.QuantOne
	}
}
