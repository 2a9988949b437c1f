package codegen

// ϡRuntimeSource is the fixed packrat runtime contract (component F),
// emitted verbatim at the top of every generated parser file so the
// parser is fully self-contained and need not import this module.
// Semantically identical to packrat.Engine plus packrat's terminal
// helpers (ϡ-prefixed here so the names can never collide with a user
// grammar's own rule or metaname identifiers, the same reason the real
// pigeon prefixes its own runtime symbols in static_code.go).
const ϡRuntimeSource = `
// ϡsource is a minimal seekable code-point stream: the grammar's whole
// input is decoded up front, matching charsource.Reader's approach.
type ϡsource struct {
	runes []rune
	pos   int
}

func ϡnewSource(input string) *ϡsource {
	return &ϡsource{runes: []rune(input)}
}

func (s *ϡsource) peek() rune {
	if s.pos >= len(s.runes) {
		return -1
	}
	return s.runes[s.pos]
}

func (s *ϡsource) advance() {
	if s.pos < len(s.runes) {
		s.pos++
	}
}

func (s *ϡsource) mark() int      { return s.pos }
func (s *ϡsource) reset(mark int) { s.pos = mark }

type ϡruleFunc func() (interface{}, bool)

type ϡruleKey struct {
	rule string
	pos  int
}

// ϡlrFrame is the Warth et al. algorithm's LR sentinel: installed in the
// memo table while a rule's body is first evaluated, so a recursive call
// to the same rule at the same position can detect it and begin seed
// growth instead of recursing forever.
type ϡlrFrame struct {
	rule      string
	head      *ϡhead
	hasSeed   bool
	seedValue interface{}
	seedOK    bool
}

// ϡhead is the Head bookkeeping record: which rules participate in one
// left-recursive cluster rooted at one position, and which of them may
// still re-evaluate during the current growth iteration.
type ϡhead struct {
	rule     string
	involved map[string]bool
	eval     map[string]bool
}

type ϡmemoEntry struct {
	lr    *ϡlrFrame
	value interface{}
	ok    bool
	end   int
}

// ϡengine owns one parse's mutable state: the memo table, the head
// registry, and the LR invocation stack.
type ϡengine struct {
	src *ϡsource

	memos   map[ϡruleKey]*ϡmemoEntry
	heads   map[int]*ϡhead
	lrStack []*ϡlrFrame
}

func ϡnewEngine(src *ϡsource) *ϡengine {
	return &ϡengine{src: src, memos: make(map[ϡruleKey]*ϡmemoEntry), heads: make(map[int]*ϡhead)}
}

// ϡapplyPlain is plain memoization, for rules that cannot recurse into
// themselves at the same position.
func (e *ϡengine) ϡapplyPlain(rule string, fn ϡruleFunc) (interface{}, bool) {
	pos := e.src.mark()
	key := ϡruleKey{rule, pos}
	if m, ok := e.memos[key]; ok && m.lr == nil {
		e.src.reset(m.end)
		return m.value, m.ok
	}
	value, ok := fn()
	end := e.src.mark()
	e.memos[key] = &ϡmemoEntry{value: value, ok: ok, end: end}
	return value, ok
}

// ϡapply runs rule under the full left-recursion-aware algorithm.
func (e *ϡengine) ϡapply(rule string, fn ϡruleFunc) (interface{}, bool) {
	pos := e.src.mark()
	m, found := e.ϡrecall(rule, fn, pos)
	if !found {
		return e.ϡmiss(rule, fn, pos)
	}
	e.src.reset(m.end)
	if m.lr != nil {
		e.ϡsetupLR(rule, m.lr)
		if !m.lr.hasSeed {
			return nil, false
		}
		return m.lr.seedValue, m.lr.seedOK
	}
	return m.value, m.ok
}

func (e *ϡengine) ϡrecall(rule string, fn ϡruleFunc, pos int) (*ϡmemoEntry, bool) {
	key := ϡruleKey{rule, pos}
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
			return &ϡmemoEntry{end: pos}, true
		}
		return nil, false
	}

	if h.eval[rule] {
		delete(h.eval, rule)
		value, ok := fn()
		end := e.src.mark()
		m = &ϡmemoEntry{value: value, ok: ok, end: end}
		e.memos[key] = m
	}
	return m, true
}

func (e *ϡengine) ϡmiss(rule string, fn ϡruleFunc, pos int) (interface{}, bool) {
	key := ϡruleKey{rule, pos}
	lr := &ϡlrFrame{rule: rule}
	e.lrStack = append(e.lrStack, lr)
	e.memos[key] = &ϡmemoEntry{lr: lr, end: pos}

	value, ok := fn()

	e.lrStack = e.lrStack[:len(e.lrStack)-1]
	end := e.src.mark()
	e.memos[key] = &ϡmemoEntry{lr: lr, end: end}

	if lr.head != nil {
		lr.seedValue, lr.seedOK, lr.hasSeed = value, ok, true
		return e.ϡanswer(rule, fn, key, pos)
	}
	e.memos[key] = &ϡmemoEntry{value: value, ok: ok, end: end}
	return value, ok
}

func (e *ϡengine) ϡsetupLR(rule string, lr *ϡlrFrame) {
	if lr.head == nil {
		lr.head = &ϡhead{rule: rule, involved: map[string]bool{}, eval: map[string]bool{}}
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

func (e *ϡengine) ϡanswer(rule string, fn ϡruleFunc, key ϡruleKey, pos int) (interface{}, bool) {
	m := e.memos[key]
	lr := m.lr
	if lr.head.rule != rule {
		return lr.seedValue, lr.seedOK
	}
	e.memos[key] = &ϡmemoEntry{value: lr.seedValue, ok: lr.seedOK, end: m.end}
	if !lr.seedOK {
		return nil, false
	}
	return e.ϡgrow(rule, fn, key, lr.head, pos)
}

func (e *ϡengine) ϡgrow(rule string, fn ϡruleFunc, key ϡruleKey, h *ϡhead, pos int) (interface{}, bool) {
	e.heads[pos] = h
	cur := e.memos[key]
	lastValue, lastOK, lastEnd := cur.value, cur.ok, pos
	e.memos[key] = &ϡmemoEntry{value: lastValue, ok: lastOK, end: lastEnd}

	for {
		e.src.reset(pos)
		h.eval = make(map[string]bool, len(h.involved))
		for r := range h.involved {
			h.eval[r] = true
		}
		value, ok := fn()
		end := e.src.mark()
		if !ok || end <= lastEnd {
			break
		}
		lastValue, lastOK, lastEnd = value, ok, end
		e.memos[key] = &ϡmemoEntry{value: lastValue, ok: lastOK, end: lastEnd}
	}

	delete(e.heads, pos)
	e.src.reset(lastEnd)
	return lastValue, lastOK
}

// ϡexpectRune consumes the current code point if it matches r (or,
// when any is true, consumes whatever code point is present). It fails
// at EOF.
func (e *ϡengine) ϡexpectRune(r rune, any bool) (interface{}, bool) {
	c := e.src.peek()
	if c == -1 {
		return nil, false
	}
	if any || c == r {
		e.src.advance()
		return c, true
	}
	return nil, false
}

// ϡexpectString consumes s in full, restoring the cursor on any
// mismatch.
func (e *ϡengine) ϡexpectString(s string) (interface{}, bool) {
	mark := e.src.mark()
	for _, r := range s {
		if e.src.peek() != r {
			e.src.reset(mark)
			return nil, false
		}
		e.src.advance()
	}
	return s, true
}

// ϡlookahead implements & (positive=true) and ! (positive=false): it
// never consumes input, succeeding iff fn's success matches positive.
func (e *ϡengine) ϡlookahead(positive bool, fn func() bool) bool {
	mark := e.src.mark()
	ok := fn()
	e.src.reset(mark)
	return ok == positive
}

// ϡloop implements * (minimum=0) and + (minimum=1): it repeatedly calls
// fn, stopping when fn fails or when fn succeeded without advancing the
// cursor, and succeeds iff it collected at least minimum results.
func (e *ϡengine) ϡloop(minimum int, fn ϡruleFunc) (interface{}, bool) {
	var out []interface{}
	last := e.src.mark()
	for {
		v, ok := fn()
		if !ok {
			break
		}
		cur := e.src.mark()
		if cur <= last {
			break
		}
		out = append(out, v)
		last = cur
	}
	if len(out) < minimum {
		return nil, false
	}
	return out, true
}

// ϡmaybe never fails: it reports the inner result (nil if fn failed) as
// a successful match, implementing the ? quantifier.
func (e *ϡengine) ϡmaybe(fn ϡruleFunc) (interface{}, bool) {
	v, ok := fn()
	if !ok {
		return nil, true
	}
	return v, true
}
`
