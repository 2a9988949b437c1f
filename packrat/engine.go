// Package packrat implements the memoization and left-recursion-growing
// algorithm every generated parser embeds (see the runtime contract):
// plain packrat memoization for ordinary rules, and the Warth,
// Douglass, Millstein & Megacz seed-growing algorithm for rules that
// call themselves, directly or indirectly, at the same input position.
//
// Engine is used two ways in this module: metaparser imports it
// directly to run the self-hosted meta-grammar, and codegen re-emits an
// equivalent engine as literal Go source so generated parsers need not
// import this package at all.
package packrat

import (
	"github.com/glebzlat/polygen/charsource"
	"github.com/sirupsen/logrus"
)

// RuleFunc is a rule body: it returns the parsed value and whether the
// rule matched. A rule that matches but carries no useful value (a bare
// terminal, say) returns (nil, true).
type RuleFunc func() (any, bool)

type ruleKey struct {
	rule string
	pos  int
}

// lrFrame is the `_LR` sentinel of the algorithm: installed in the memo
// table while a rule's body is first being evaluated, so a recursive
// call to the same rule at the same position can detect it and begin
// seed growth instead of recursing forever.
type lrFrame struct {
	rule      string
	head      *head
	hasSeed   bool
	seedValue any
	seedOK    bool
}

// head is the `_Head` bookkeeping record: which rules participate in one
// left-recursive cluster rooted at one position, and which of them are
// still allowed to re-evaluate during the current growth iteration.
type head struct {
	rule     string
	involved map[string]bool
	eval     map[string]bool
}

type memoEntry struct {
	lr    *lrFrame // non-nil while this slot holds a pending sentinel
	value any
	ok    bool
	end   int
}

// Engine owns one parse's mutable state: the memo table, the head
// registry, and the LR invocation stack. It must not be shared across
// unrelated parses; construct a fresh Engine per CharSource.
type Engine struct {
	Source charsource.CharSource

	memos   map[ruleKey]*memoEntry
	heads   map[int]*head
	lrStack []*lrFrame

	log     logrus.FieldLogger // nil unless WithLogger is given
	recover bool
}

// New returns an Engine reading from src, configured by opts.
func New(src charsource.CharSource, opts ...Option) *Engine {
	e := &Engine{
		Source: src,
		memos:  make(map[ruleKey]*memoEntry),
		heads:  make(map[int]*head),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ApplyPlain is plain memoization: rules that cannot recurse into
// themselves at the same position use this instead of Apply, since it
// needs none of the LR bookkeeping.
func (e *Engine) ApplyPlain(rule string, fn RuleFunc) (any, bool) {
	pos := e.Source.Mark()
	key := ruleKey{rule, pos}
	if m, ok := e.memos[key]; ok && m.lr == nil {
		e.Source.Reset(m.end)
		return m.value, m.ok
	}
	value, ok := e.invoke(rule, fn)
	end := e.Source.Mark()
	e.memos[key] = &memoEntry{value: value, ok: ok, end: end}
	e.trace(rule, pos, ok)
	return value, ok
}

// Apply runs rule under the full left-recursion-aware algorithm. Every
// rule that directly or indirectly calls itself at the same position
// must be driven through Apply rather than ApplyPlain.
func (e *Engine) Apply(rule string, fn RuleFunc) (any, bool) {
	pos := e.Source.Mark()
	m, found := e.recall(rule, fn, pos)
	if !found {
		value, ok := e.miss(rule, fn, pos)
		e.trace(rule, pos, ok)
		return value, ok
	}
	e.Source.Reset(m.end)
	if m.lr != nil {
		e.setupLR(rule, m.lr)
		if !m.lr.hasSeed {
			return nil, false
		}
		return m.lr.seedValue, m.lr.seedOK
	}
	return m.value, m.ok
}

// recall implements the Recall step. found is false when the caller must
// fall through to a fresh evaluation (Miss); when found is true, the
// returned entry (possibly a synthetic failure at pos) is authoritative.
func (e *Engine) recall(rule string, fn RuleFunc, pos int) (*memoEntry, bool) {
	key := ruleKey{rule, pos}
	m, exists := e.memos[key]
	h, hasHead := e.heads[pos]

	if !hasHead {
		if exists {
			return m, true
		}
		return nil, false
	}

	if !exists {
		if !h.involved[rule] && h.rule != rule {
			return &memoEntry{end: pos}, true
		}
		return nil, false
	}

	if h.eval[rule] {
		delete(h.eval, rule)
		value, ok := e.invoke(rule, fn)
		end := e.Source.Mark()
		m = &memoEntry{value: value, ok: ok, end: end}
		e.memos[key] = m
	}
	return m, true
}

// miss implements the Miss step: install a sentinel, evaluate the rule
// body once, and either store the plain result or begin the Answer/Grow
// sequence if the evaluation discovered it was itself left-recursive.
func (e *Engine) miss(rule string, fn RuleFunc, pos int) (any, bool) {
	key := ruleKey{rule, pos}
	lr := &lrFrame{rule: rule}
	e.lrStack = append(e.lrStack, lr)
	e.memos[key] = &memoEntry{lr: lr, end: pos}

	value, ok := e.invoke(rule, fn)

	e.lrStack = e.lrStack[:len(e.lrStack)-1]
	end := e.Source.Mark()
	e.memos[key] = &memoEntry{lr: lr, end: end}

	if lr.head != nil {
		lr.seedValue, lr.seedOK, lr.hasSeed = value, ok, true
		return e.answer(rule, fn, key, pos)
	}
	e.memos[key] = &memoEntry{value: value, ok: ok, end: end}
	return value, ok
}

// setupLR implements the Setup step: walk the LR stack from the top,
// tagging every frame up to (and not including) one that already carries
// this head, and record each tagged rule as involved in the cluster.
func (e *Engine) setupLR(rule string, lr *lrFrame) {
	if lr.head == nil {
		lr.head = &head{rule: rule, involved: map[string]bool{}, eval: map[string]bool{}}
	}
	for i := len(e.lrStack) - 1; i >= 0; i-- {
		frame := e.lrStack[i]
		if frame.head == lr.head {
			break
		}
		frame.head = lr.head
		lr.head.involved[frame.rule] = true
	}
}

// answer implements the Answer step.
func (e *Engine) answer(rule string, fn RuleFunc, key ruleKey, pos int) (any, bool) {
	m := e.memos[key]
	lr := m.lr
	if lr.head.rule != rule {
		return lr.seedValue, lr.seedOK
	}
	e.memos[key] = &memoEntry{value: lr.seedValue, ok: lr.seedOK, end: m.end}
	if !lr.seedOK {
		return nil, false
	}
	return e.grow(rule, fn, key, lr.head, pos)
}

// grow implements the Grow step: re-evaluate the rule body with the
// involved set reinstated, keeping whichever result reaches furthest,
// until an iteration fails to extend the cursor.
func (e *Engine) grow(rule string, fn RuleFunc, key ruleKey, h *head, pos int) (any, bool) {
	e.heads[pos] = h
	cur := e.memos[key]
	lastValue, lastOK, lastEnd := cur.value, cur.ok, pos
	e.memos[key] = &memoEntry{value: lastValue, ok: lastOK, end: lastEnd}

	for {
		e.Source.Reset(pos)
		h.eval = make(map[string]bool, len(h.involved))
		for r := range h.involved {
			h.eval[r] = true
		}
		value, ok := e.invoke(rule, fn)
		end := e.Source.Mark()
		if !ok || end <= lastEnd {
			break
		}
		lastValue, lastOK, lastEnd = value, ok, end
		e.memos[key] = &memoEntry{value: lastValue, ok: lastOK, end: lastEnd}
	}

	delete(e.heads, pos)
	e.Source.Reset(lastEnd)
	return lastValue, lastOK
}

// invoke runs fn, optionally recovering a panic raised from inside a
// grammar's own meta-action code (WithRecover) and turning it into an
// ordinary failure instead of unwinding the whole parse, matching the
// teacher's Recover option for code-block panics.
func (e *Engine) invoke(rule string, fn RuleFunc) (value any, ok bool) {
	if !e.recover {
		return fn()
	}
	defer func() {
		if r := recover(); r != nil {
			if e.log != nil {
				e.log.WithField("rule", rule).Errorf("recovered panic: %v", r)
			}
			value, ok = nil, false
		}
	}()
	return fn()
}

// trace emits a per-rule debug line when a logger was supplied via
// WithLogger, mirroring the teacher's -debug flag dumps without
// requiring a boolean flag plumbed through every call site.
func (e *Engine) trace(rule string, pos int, ok bool) {
	if e.log == nil {
		return
	}
	e.log.WithFields(logrus.Fields{"rule": rule, "pos": pos, "matched": ok}).Debug("apply")
}
