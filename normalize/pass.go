package normalize

import "github.com/glebzlat/polygen/grammar"

// Pass is one normalization visitor. Visit is called once per tree node
// in post-order; it returns true if it mutated the tree at n, and a
// non-nil error only for a critical SemanticError, which aborts the
// driver immediately. Low- and moderate-severity errors, and warnings,
// are instead recorded on the pass itself and collected by the driver
// after each walk via Errors/Warnings.
type Pass interface {
	grammar.Visitor
	Name() string
	Errors() []*SemanticError
	Warnings() []*SemanticWarning
	reset()
}

// base is embedded by every concrete pass to provide the bookkeeping
// Pass requires.
type base struct {
	name     string
	errs     []*SemanticError
	warnings []*SemanticWarning
}

func (b *base) Name() string                    { return b.name }
func (b *base) Errors() []*SemanticError         { return b.errs }
func (b *base) Warnings() []*SemanticWarning     { return b.warnings }
func (b *base) reset()                           { b.errs, b.warnings = nil, nil }
func (b *base) recordError(e *SemanticError)     { b.errs = append(b.errs, e) }
func (b *base) recordWarning(w *SemanticWarning) { b.warnings = append(b.warnings, w) }

// critical raises a critical SemanticError: Visit should return it
// directly as its error value so grammar.Walk aborts the traversal.
func critical(kind string, nodes []grammar.Node, detail string) error {
	return &SemanticError{Kind: kind, Severity: SeverityCritical, Nodes: nodes, Detail: detail}
}
