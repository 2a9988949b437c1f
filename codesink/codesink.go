// Package codesink implements the CodeSink collaborator as an external
// interface: a receiver of structural emission calls (rule header, Alt
// opening, Part, Alt closing, rule footer) that owns all target-language
// syntax framing while codegen.Emitter supplies only order, names, and
// values. GoSink is the one concrete sink this module ships, rendering
// literal Go source.
package codesink

import (
	"fmt"
	"strconv"
	"strings"
)

// Predicate mirrors grammar.PredicateKind without importing the grammar
// package, so CodeSink stays a narrow, self-contained collaborator.
type Predicate int

const (
	NoPredicate Predicate = iota
	AndPredicate
	NotPredicate
)

// Quantifier mirrors the quantifier a Part carries after normalization
// (bounded Repetition is always lowered away before emission, so this
// need only name the four forms the emitter ever sees).
type Quantifier int

const (
	QuantOne Quantifier = iota
	QuantOpt
	QuantStar
	QuantPlus
)

// PrimaryKind names the four terminal shapes the emitter ever produces:
// Char, String, AnyChar, and a recursive rule reference.
type PrimaryKind int

const (
	KindChar PrimaryKind = iota
	KindString
	KindAnyChar
	KindRule
)

// PartSpec fully describes one Part for CodeSink.Part: a capture name
// (empty for "_", meaning the value is discarded), an optional
// predicate, an optional quantifier, and the terminal or rule-reference
// primary it matches.
type PartSpec struct {
	MetaName   string
	Predicate  Predicate
	Quantifier Quantifier
	Kind       PrimaryKind
	Char       rune
	Str        string
	RuleName   string
}

// CodeSink receives the emitter's structural calls, in order, and is
// responsible for all syntactic framing; the emitter supplies only
// order, names, and values.
type CodeSink interface {
	// Prologue emits the fixed packrat runtime contract once, at the top
	// of the file, verbatim.
	Prologue(runtimeSource string)

	// EntryPoint emits the exported Parse entry point calling into
	// ruleName.
	EntryPoint(ruleName string)

	// RuleHeader opens one rule's recognizer function, choosing plain or
	// left-recursion-aware memoization per leftRecursive.
	RuleHeader(ruleName string, leftRecursive bool)

	// AltOpen begins one Alt's one-shot matching block. names lists the
	// distinct non-"_" capture names this Alt's Parts use, in order, so
	// the sink can predeclare them before any Part is emitted.
	AltOpen(names []string)

	// Part emits one Part's match call within the currently open Alt.
	Part(p PartSpec)

	// AltClose emits the Alt's success return: action, if non-empty, is
	// spliced verbatim as the body of a niladic function literal whose
	// result becomes the Alt's value; captured lists the same names
	// AltOpen declared, used to build the default result when action is
	// empty (nil for zero captures, the lone value for one, a
	// []interface{} for more than one).
	AltClose(action string, captured []string)

	// RuleFooter closes the rule's recognizer function.
	RuleFooter()

	// String returns the accumulated source text.
	String() string
}

// GoSink is the one CodeSink implementation this module ships: it
// renders the emitter's calls as literal Go source, matching the
// teacher's hand-written-Go-as-string idiom (plain string building, not
// a template engine).
type GoSink struct {
	buf        strings.Builder
	ruleName   string
	altIndex   int
	packageName string
}

// NewGoSink returns a GoSink that will render a single Go source file
// under the given package name.
func NewGoSink(packageName string) *GoSink {
	s := &GoSink{packageName: packageName}
	fmt.Fprintf(&s.buf, "// Code generated by polygen. DO NOT EDIT.\n\npackage %s\n\n", packageName)
	return s
}

func (s *GoSink) Prologue(runtimeSource string) {
	s.buf.WriteString(runtimeSource)
	s.buf.WriteString("\n")
}

func (s *GoSink) EntryPoint(ruleName string) {
	fmt.Fprintf(&s.buf, `// Parser recognizes one input against the grammar's entry rule. Build a
// fresh Parser per input; it is not safe to reuse across inputs.
type Parser struct {
	eng *ϡengine
}

// NewParser returns a Parser over input.
func NewParser(input string) *Parser {
	return &Parser{eng: ϡnewEngine(ϡnewSource(input))}
}

// Parse runs the grammar's entry rule from the start of the input and
// reports whether it matched. Input left over after the match is not
// checked.
func (parser *Parser) Parse() (interface{}, bool) {
	return parser.rule%s()
}

`, ruleName)
}

func (s *GoSink) RuleHeader(ruleName string, leftRecursive bool) {
	s.ruleName = ruleName
	s.altIndex = 0
	applyFn := "ϡapplyPlain"
	if leftRecursive {
		applyFn = "ϡapply"
	}
	fmt.Fprintf(&s.buf, "func (parser *Parser) rule%s() (interface{}, bool) {\n", ruleName)
	fmt.Fprintf(&s.buf, "\treturn parser.eng.%s(%s, func() (interface{}, bool) {\n", applyFn, strconv.Quote(ruleName))
	s.buf.WriteString("\t\tϡbegin := parser.eng.src.mark()\n")
}

func (s *GoSink) AltOpen(names []string) {
	fmt.Fprintf(&s.buf, "\t\t// Alt %d\n\t\tfor {\n", s.altIndex+1)
	s.buf.WriteString("\t\t\tvar ϡok bool\n")
	if len(names) > 0 {
		fmt.Fprintf(&s.buf, "\t\t\tvar %s interface{}\n", strings.Join(names, ", "))
	}
}

// Part composes, in order, the terminal or rule-reference match, any
// quantifier wrapping it, and any predicate wrapping that — so a Part
// like `&e*` (lookahead over a repetition) emits correctly rather than
// only ever honoring one of predicate/quantifier.
func (s *GoSink) Part(p PartSpec) {
	lhs := "_"
	if p.MetaName != "" {
		lhs = p.MetaName
	}
	base := s.matchExpr(p)

	quantified := base
	switch p.Quantifier {
	case QuantOpt:
		quantified = fmt.Sprintf("parser.eng.ϡmaybe(func() (interface{}, bool) { return %s })", base)
	case QuantStar:
		quantified = fmt.Sprintf("parser.eng.ϡloop(0, func() (interface{}, bool) { return %s })", base)
	case QuantPlus:
		quantified = fmt.Sprintf("parser.eng.ϡloop(1, func() (interface{}, bool) { return %s })", base)
	}

	switch p.Predicate {
	case AndPredicate:
		fmt.Fprintf(&s.buf, "\t\t\tif !parser.eng.ϡlookahead(true, func() bool { _, ϡok := %s; return ϡok }) {\n\t\t\t\tbreak\n\t\t\t}\n", quantified)
	case NotPredicate:
		fmt.Fprintf(&s.buf, "\t\t\tif !parser.eng.ϡlookahead(false, func() bool { _, ϡok := %s; return ϡok }) {\n\t\t\t\tbreak\n\t\t\t}\n", quantified)
	default:
		fmt.Fprintf(&s.buf, "\t\t\t%s, ϡok = %s\n\t\t\tif !ϡok {\n\t\t\t\tbreak\n\t\t\t}\n", lhs, quantified)
	}
}

func (s *GoSink) matchExpr(p PartSpec) string {
	switch p.Kind {
	case KindChar:
		return fmt.Sprintf("parser.eng.ϡexpectRune(%s, false)", strconv.QuoteRune(p.Char))
	case KindString:
		return fmt.Sprintf("parser.eng.ϡexpectString(%s)", strconv.Quote(p.Str))
	case KindAnyChar:
		return "parser.eng.ϡexpectRune(0, true)"
	case KindRule:
		return fmt.Sprintf("parser.rule%s()", p.RuleName)
	default:
		return "nil, false"
	}
}

func (s *GoSink) AltClose(action string, captured []string) {
	switch {
	case action != "":
		s.buf.WriteString("\t\t\treturn func() interface{} {\n")
		s.buf.WriteString(action)
		s.buf.WriteString("\n\t\t\t}(), true\n")
	case len(captured) == 0:
		s.buf.WriteString("\t\t\treturn nil, true\n")
	case len(captured) == 1:
		fmt.Fprintf(&s.buf, "\t\t\treturn %s, true\n", captured[0])
	default:
		fmt.Fprintf(&s.buf, "\t\t\treturn []interface{}{%s}, true\n", strings.Join(captured, ", "))
	}
	s.buf.WriteString("\t\t}\n")
	fmt.Fprintf(&s.buf, "\t\tparser.eng.src.reset(ϡbegin)\n")
	s.altIndex++
}

func (s *GoSink) RuleFooter() {
	s.buf.WriteString("\t\treturn nil, false\n")
	s.buf.WriteString("\t})\n")
	s.buf.WriteString("}\n\n")
}

func (s *GoSink) String() string { return s.buf.String() }
