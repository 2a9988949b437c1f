package metaparser

import (
	"github.com/glebzlat/polygen/grammar"
	"github.com/glebzlat/polygen/packrat"
)

// ruleLiteral: "'" (!"'" Char)* "'" Spacing / '"' (!'"' Char)* '"' Spacing
func (p *Parser) ruleLiteral() (any, bool) {
	return p.eng.ApplyPlain("Literal", func() (any, bool) {
		begin := p.mark()
		if v, ok := p.quotedLiteral('\''); ok {
			return v, true
		}
		p.reset(begin)
		if v, ok := p.quotedLiteral('"'); ok {
			return v, true
		}
		p.reset(begin)
		return nil, false
	})
}

func (p *Parser) quotedLiteral(quote rune) (grammar.Primary, bool) {
	begin := p.mark()
	if _, ok := p.eng.Ranges(rr(quote, quote)); !ok {
		p.reset(begin)
		return nil, false
	}
	chars, ok := p.eng.Loop(0, func() (any, bool) {
		inner := p.mark()
		if p.eng.Lookahead(true, func() bool {
			_, ok := p.eng.Ranges(rr(quote, quote))
			return ok
		}) {
			p.reset(inner)
			return nil, false
		}
		if v, ok := p.ruleChar(); ok {
			return v, true
		}
		p.reset(inner)
		return nil, false
	})
	if !ok {
		p.reset(begin)
		return nil, false
	}
	if _, ok := p.eng.Ranges(rr(quote, quote)); !ok {
		p.reset(begin)
		return nil, false
	}
	if _, ok := p.ruleSpacing(); !ok {
		p.reset(begin)
		return nil, false
	}
	if len(chars) == 1 {
		return chars[0].(*grammar.Char), true
	}
	var b []rune
	for _, c := range chars {
		b = append(b, c.(*grammar.Char).Value)
	}
	return grammar.NewString(string(b), p.gpos(begin)), true
}

// ruleClass: '[' (!']' Range)* ']' Spacing
func (p *Parser) ruleClass() (any, bool) {
	return p.eng.ApplyPlain("Class", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('[', false); !ok {
			p.reset(begin)
			return nil, false
		}
		ranges, ok := p.eng.Loop(0, func() (any, bool) {
			inner := p.mark()
			if p.eng.Lookahead(true, func() bool {
				_, ok := p.eng.ExpectRune(']', false)
				return ok
			}) {
				p.reset(inner)
				return nil, false
			}
			if v, ok := p.ruleRange(); ok {
				return v, true
			}
			p.reset(inner)
			return nil, false
		})
		if !ok {
			p.reset(begin)
			return nil, false
		}
		if _, ok := p.eng.ExpectRune(']', false); !ok {
			p.reset(begin)
			return nil, false
		}
		if _, ok := p.ruleSpacing(); !ok {
			p.reset(begin)
			return nil, false
		}
		rs := make([]*grammar.Range, len(ranges))
		for i, r := range ranges {
			rs[i] = r.(*grammar.Range)
		}
		return grammar.NewClass(rs, p.gpos(begin)), true
	})
}

// ruleRange: Char '-' Char / Char
func (p *Parser) ruleRange() (any, bool) {
	return p.eng.ApplyPlain("Range", func() (any, bool) {
		begin := p.mark()
		if begVal, ok := p.ruleChar(); ok {
			if _, ok := p.eng.ExpectRune('-', false); ok {
				if endVal, ok := p.ruleChar(); ok {
					beg := begVal.(*grammar.Char).Value
					end := endVal.(*grammar.Char).Value
					return grammar.NewRange(beg, &end, p.gpos(begin)), true
				}
			}
		}
		p.reset(begin)
		if begVal, ok := p.ruleChar(); ok {
			beg := begVal.(*grammar.Char).Value
			return grammar.NewRange(beg, nil, p.gpos(begin)), true
		}
		p.reset(begin)
		return nil, false
	})
}

var charEscapes = map[rune]rune{'n': '\n', 'r': '\r', 't': '\t', '\'': '\'', '"': '"', '[': '[', ']': ']', '\\': '\\'}

// ruleChar implements the escape semantics in full: named escapes,
// 1-3 digit octal, \uHHHH unicode (>=4 hex digits), and any character
// other than a backslash taken literally. A backslash followed by
// anything else does not match.
func (p *Parser) ruleChar() (any, bool) {
	return p.eng.ApplyPlain("Char", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('\\', false); ok {
			if c, ok := p.eng.Ranges(
				rr1('n'), rr1('r'), rr1('t'),
				rr1('\''), rr1('"'), rr1('['), rr1(']'), rr1('\\'),
			); ok {
				mapped, known := charEscapes[c]
				if !known {
					mapped = c
				}
				return grammar.NewChar(mapped, p.gpos(begin)), true
			}
		}
		p.reset(begin)
		if _, ok := p.eng.ExpectRune('\\', false); ok {
			if c1, ok := p.eng.Ranges(rr('0', '2')); ok {
				if c2, ok := p.eng.Ranges(rr('0', '7')); ok {
					if c3, ok := p.eng.Ranges(rr('0', '7')); ok {
						v := octalValue(c1)*64 + octalValue(c2)*8 + octalValue(c3)
						return grammar.NewChar(rune(v), p.gpos(begin)), true
					}
				}
			}
		}
		p.reset(begin)
		if _, ok := p.eng.ExpectRune('\\', false); ok {
			if c1, ok := p.eng.Ranges(rr('0', '7')); ok {
				v := octalValue(c1)
				save := p.mark()
				if c2, ok := p.eng.Ranges(rr('0', '7')); ok {
					v = v*8 + octalValue(c2)
				} else {
					p.reset(save)
				}
				return grammar.NewChar(rune(v), p.gpos(begin)), true
			}
		}
		p.reset(begin)
		if _, ok := p.eng.ExpectString("\\u"); ok {
			digits := make([]rune, 0, 4)
			for {
				c, ok := p.ruleHexDigit()
				if !ok {
					break
				}
				digits = append(digits, c.(rune))
			}
			if len(digits) < 4 {
				p.reset(begin)
				return nil, false
			}
			v := 0
			for _, d := range digits {
				v = v*16 + hexValue(d)
			}
			return grammar.NewChar(rune(v), p.gpos(begin)), true
		}
		p.reset(begin)
		if p.eng.Lookahead(false, func() bool {
			_, ok := p.eng.ExpectRune('\\', false)
			return ok
		}) {
			if c, ok := p.ruleAnyCharGen(); ok {
				return grammar.NewChar(c.(rune), p.gpos(begin)), true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

func octalValue(r rune) int { return int(r - '0') }

func hexValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return 0
}

// ruleRepetition: '{' (Number ',' Number / Number) '}' Spacing
func (p *Parser) ruleRepetition() (any, bool) {
	return p.eng.ApplyPlain("Repetition", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('{', false); !ok {
			p.reset(begin)
			return nil, false
		}
		beg, end, ok := p.repetitionGroup()
		if !ok {
			p.reset(begin)
			return nil, false
		}
		if _, ok := p.eng.ExpectRune('}', false); !ok {
			p.reset(begin)
			return nil, false
		}
		if _, ok := p.ruleSpacing(); !ok {
			p.reset(begin)
			return nil, false
		}
		var endP *int
		if end != nil {
			endP = end
		}
		return grammar.NewRepetition(beg, endP, p.gpos(begin)), true
	})
}

func (p *Parser) repetitionGroup() (int, *int, bool) {
	begin := p.mark()
	if n1Val, ok := p.ruleNumber(); ok {
		if _, ok := p.eng.ExpectRune(',', false); ok {
			if n2Val, ok := p.ruleNumber(); ok {
				n1 := n1Val.(int)
				n2 := n2Val.(int)
				return n1, &n2, true
			}
		}
	}
	p.reset(begin)
	if n1Val, ok := p.ruleNumber(); ok {
		return n1Val.(int), nil, true
	}
	p.reset(begin)
	return 0, nil, false
}

// ruleNumber: [0-9]+
func (p *Parser) ruleNumber() (any, bool) {
	return p.eng.ApplyPlain("Number", func() (any, bool) {
		digits, ok := p.eng.Loop(1, func() (any, bool) {
			return p.eng.Ranges(rr('0', '9'))
		})
		if !ok {
			return nil, false
		}
		n := 0
		for _, d := range digits {
			n = n*10 + octalValue(d.(rune))
		}
		return n, true
	})
}

// ruleHexDigit: [a-fA-F0-9]
func (p *Parser) ruleHexDigit() (any, bool) {
	return p.eng.ApplyPlain("HexDigit", func() (any, bool) {
		return p.eng.Ranges(rr('a', 'f'), rr('A', 'F'), rr('0', '9'))
	})
}

func rr1(r rune) packrat.RuneRange    { return packrat.RuneRange{Beg: r, End: r} }
func rr(a, b rune) packrat.RuneRange  { return packrat.RuneRange{Beg: a, End: b} }
