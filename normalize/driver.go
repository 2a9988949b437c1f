package normalize

import (
	"strings"

	"github.com/glebzlat/polygen/grammar"
	"github.com/sirupsen/logrus"
)

// Stage is a group of passes run together to a local fixpoint before the
// driver advances to the next stage.
type Stage struct {
	Name   string
	Passes []Pass
}

// Driver orders the normalization pipeline's stages and runs each to
// fixpoint, accumulating every recorded error and warning across the
// whole run.
type Driver struct {
	Stages []Stage
	Log    logrus.FieldLogger

	errors   []*SemanticError
	warnings []*SemanticWarning
}

// NewDriver builds the standard seven-stage pipeline, each stage grouping
// the passes that must run together to a local fixpoint before the next
// stage can safely begin.
func NewDriver() *Driver {
	return &Driver{
		Log: logrus.StandardLogger(),
		Stages: []Stage{
			{Name: "SubstituteMetaRefs", Passes: []Pass{NewSubstituteMetaRefs()}},
			{Name: "CreateAnyCharRule", Passes: []Pass{NewCreateAnyCharRule()}},
			{Name: "ExpandClass+ReplaceRep", Passes: []Pass{NewExpandClass(), NewReplaceRep()}},
			{Name: "FindEntryRule+IgnoreRules", Passes: []Pass{NewFindEntryRule(), NewIgnoreRules()}},
			{Name: "SimplifyNestedExps+ReplaceNestedExps", Passes: []Pass{NewSimplifyNestedExps(), NewReplaceNestedExps()}},
			{Name: "CheckUndefRedef+UnusedRules", Passes: []Pass{NewCheckUndefRedef(), NewUnusedRules()}},
			{Name: "GenerateMetanames", Passes: []Pass{NewGenerateMetanames()}},
		},
	}
}

// Run drives every stage to local fixpoint in order. It returns
// TreeModifierError if any error was recorded across the whole run, and
// otherwise TreeModifierWarning if only warnings were recorded.
func (d *Driver) Run(g *grammar.Grammar) error {
	for _, stage := range d.Stages {
		if err := d.runStage(g, stage); err != nil {
			return err
		}
	}

	if len(d.errors) > 0 {
		return &TreeModifierError{Errors: d.errors}
	}
	if len(d.warnings) > 0 {
		return &TreeModifierWarning{Warnings: d.warnings}
	}
	return nil
}

func (d *Driver) runStage(g *grammar.Grammar, stage Stage) error {
	active := make([]Pass, len(stage.Passes))
	copy(active, stage.Passes)

	for len(active) > 0 {
		d.logf("stage %q: sweep over %d active pass(es)", stage.Name, len(active))

		var next []Pass
		for _, p := range active {
			p.reset()
			changed, err := grammar.Walk(g, p)
			if err != nil {
				return err
			}

			severity, critical := d.collect(p)
			if critical != nil {
				return critical
			}
			if severity == SeverityModerate {
				d.logf("stage %q: deactivating pass %q (moderate error)", stage.Name, p.Name())
				continue
			}
			if changed {
				next = append(next, p)
			}
		}
		active = next
	}
	return nil
}

// collect copies a pass's errors and warnings into the driver's running
// totals. It reports the worst severity seen (for deactivation) and, for
// a critical error, the TreeModifierError to abort with immediately.
func (d *Driver) collect(p Pass) (worst Severity, critical error) {
	for _, e := range p.Errors() {
		d.errors = append(d.errors, e)
		if e.Severity == SeverityCritical {
			return SeverityCritical, &TreeModifierError{Errors: d.errors}
		}
		if e.Severity == SeverityModerate && worst != SeverityCritical {
			worst = SeverityModerate
		}
	}
	d.warnings = append(d.warnings, p.Warnings()...)
	return worst, nil
}

func (d *Driver) logf(format string, args ...interface{}) {
	if d.Log == nil {
		return
	}
	d.Log.Debugf(strings.TrimSpace(format), args...)
}
