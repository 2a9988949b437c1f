package normalize

import (
	"fmt"
	"strings"

	"github.com/glebzlat/polygen/grammar"
)

// Severity classifies how a SemanticError affects the pass that raised
// it: low errors are recorded but never disable anything, moderate
// errors disable the raising pass for the remainder of the run, and
// critical errors abort the driver immediately.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityModerate
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityModerate:
		return "moderate"
	case SeverityCritical:
		return "critical"
	default:
		return "low"
	}
}

// SemanticError is one error kind raised by a normalization pass. Kind
// names are fixed, stable strings so CLI output and tests can assert
// against them directly.
type SemanticError struct {
	Kind     string
	Severity Severity
	Nodes    []grammar.Node
	Detail   string
}

func (e *SemanticError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	for _, n := range e.Nodes {
		b.WriteString(" ")
		b.WriteString(grammar.String(n))
	}
	return b.String()
}

// SemanticWarning is a collected, non-fatal diagnostic.
type SemanticWarning struct {
	Kind   string
	Nodes  []grammar.Node
	Detail string
}

func (w *SemanticWarning) Error() string {
	var b strings.Builder
	b.WriteString(w.Kind)
	if w.Detail != "" {
		b.WriteString(": ")
		b.WriteString(w.Detail)
	}
	for _, n := range w.Nodes {
		b.WriteString(" ")
		b.WriteString(grammar.String(n))
	}
	return b.String()
}

// TreeModifierError is the fatal container returned by Driver.Run when
// one or more errors were recorded across the whole pipeline.
type TreeModifierError struct {
	Errors []*SemanticError
}

func (e *TreeModifierError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, se := range e.Errors {
		parts[i] = se.Error()
	}
	return fmt.Sprintf("tree normalization failed with %d error(s):\n%s", len(e.Errors), strings.Join(parts, "\n"))
}

// TreeModifierWarning is returned instead of a nil error when the run
// produced only warnings.
type TreeModifierWarning struct {
	Warnings []*SemanticWarning
}

func (w *TreeModifierWarning) Error() string {
	parts := make([]string, len(w.Warnings))
	for i, sw := range w.Warnings {
		parts[i] = sw.Error()
	}
	return fmt.Sprintf("tree normalization produced %d warning(s):\n%s", len(w.Warnings), strings.Join(parts, "\n"))
}

func invalidRange(n grammar.Node) *SemanticError {
	return &SemanticError{Kind: "InvalidRangeError", Severity: SeverityLow, Nodes: []grammar.Node{n}}
}

func invalidRepetition(n grammar.Node) *SemanticError {
	return &SemanticError{Kind: "InvalidRepetitionError", Severity: SeverityLow, Nodes: []grammar.Node{n}}
}

func undefMetaRef(ref *grammar.MetaRef, alt *grammar.Alt) *SemanticError {
	return &SemanticError{Kind: "UndefMetaRefError", Severity: SeverityLow, Nodes: []grammar.Node{ref, alt}, Detail: ref.Name}
}

func undefRules(id *grammar.Identifier, rule *grammar.Rule, detail string) *SemanticError {
	return &SemanticError{Kind: "UndefRulesError", Severity: SeverityLow, Nodes: []grammar.Node{id, rule}, Detail: detail}
}

func redefRules(name string, rules []*grammar.Rule) *SemanticError {
	nodes := make([]grammar.Node, len(rules))
	for i, r := range rules {
		nodes[i] = r
	}
	return &SemanticError{Kind: "RedefRulesError", Severity: SeverityLow, Nodes: nodes, Detail: name}
}

func redefEntry(rules []*grammar.Rule) *SemanticError {
	nodes := make([]grammar.Node, len(rules))
	for i, r := range rules {
		nodes[i] = r
	}
	return &SemanticError{Kind: "RedefEntryError", Severity: SeverityModerate, Nodes: nodes}
}

func entryNotDefined(g *grammar.Grammar) *SemanticError {
	return &SemanticError{Kind: "EntryNotDefinedError", Severity: SeverityModerate, Nodes: []grammar.Node{g}}
}

func metanameRedef(part *grammar.Part, name string) *SemanticError {
	return &SemanticError{Kind: "MetanameRedefError", Severity: SeverityLow, Nodes: []grammar.Node{part}, Detail: name}
}

func lookaheadMetanameWarning(part *grammar.Part) *SemanticWarning {
	return &SemanticWarning{Kind: "LookaheadMetanameWarning", Nodes: []grammar.Node{part}}
}

func unusedRuleWarning(r *grammar.Rule) *SemanticWarning {
	return &SemanticWarning{Kind: "UnusedRulesWarning", Nodes: []grammar.Node{r}, Detail: r.ID.Name}
}
