package metaparser

// ruleSpacing: (Space / Comment)*
func (p *Parser) ruleSpacing() (any, bool) {
	return p.eng.ApplyPlain("Spacing", func() (any, bool) {
		_, ok := p.eng.Loop(0, func() (any, bool) {
			begin := p.mark()
			if v, ok := p.ruleSpace(); ok {
				return v, true
			}
			p.reset(begin)
			if v, ok := p.ruleComment(); ok {
				return v, true
			}
			p.reset(begin)
			return nil, false
		})
		if !ok {
			return nil, false
		}
		return struct{}{}, true
	})
}

// ruleComment: '#' (!EndOfLine .)* EndOfLine
func (p *Parser) ruleComment() (any, bool) {
	return p.eng.ApplyPlain("Comment", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('#', false); !ok {
			p.reset(begin)
			return nil, false
		}
		_, ok := p.eng.Loop(0, func() (any, bool) {
			if p.eng.Lookahead(true, func() bool {
				_, ok := p.ruleEndOfLine()
				return ok
			}) {
				return nil, false
			}
			return p.ruleAnyCharGen()
		})
		if !ok {
			p.reset(begin)
			return nil, false
		}
		if _, ok := p.ruleEndOfLine(); !ok {
			p.reset(begin)
			return nil, false
		}
		return struct{}{}, true
	})
}

// ruleSpace: ' ' / '\t' / EndOfLine
func (p *Parser) ruleSpace() (any, bool) {
	return p.eng.ApplyPlain("Space", func() (any, bool) {
		begin := p.mark()
		if v, ok := p.eng.ExpectRune(spaceChar, false); ok {
			return v, true
		}
		p.reset(begin)
		if v, ok := p.eng.ExpectRune(tabChar, false); ok {
			return v, true
		}
		p.reset(begin)
		if v, ok := p.ruleEndOfLine(); ok {
			return v, true
		}
		p.reset(begin)
		return nil, false
	})
}

const (
	spaceChar = rune(0x20)
	tabChar   = rune(0x09)
	lfChar    = rune(0x0A)
	crChar    = rune(0x0D)
)

// ruleEndOfLine: "\r\n" / '\n' / '\r'
func (p *Parser) ruleEndOfLine() (any, bool) {
	return p.eng.ApplyPlain("EndOfLine", func() (any, bool) {
		begin := p.mark()
		if v, ok := p.eng.ExpectString(string([]rune{crChar, lfChar})); ok {
			return v, true
		}
		p.reset(begin)
		if v, ok := p.eng.ExpectRune(lfChar, false); ok {
			return v, true
		}
		p.reset(begin)
		if v, ok := p.eng.ExpectRune(crChar, false); ok {
			return v, true
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleEndOfFile: !.
func (p *Parser) ruleEndOfFile() (any, bool) {
	return p.eng.ApplyPlain("EndOfFile", func() (any, bool) {
		if p.eng.Lookahead(false, func() bool {
			_, ok := p.ruleAnyCharGen()
			return ok
		}) {
			return struct{}{}, true
		}
		return nil, false
	})
}

// ruleAnyCharGen is the terminal "any code point" match underlying both
// the surface `.` operator and every lookahead that needs "not EOF".
func (p *Parser) ruleAnyCharGen() (any, bool) {
	return p.eng.ApplyPlain("AnyChar__GEN", func() (any, bool) {
		return p.eng.ExpectRune(0, true)
	})
}
