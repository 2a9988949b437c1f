package metaparser

import "github.com/glebzlat/polygen/grammar"

// ruleLEFTARROW: "<-" Spacing
func (p *Parser) ruleLEFTARROW() (any, bool) {
	return p.eng.ApplyPlain("LEFTARROW", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectString("<-"); ok {
			if _, ok := p.ruleSpacing(); ok {
				return struct{}{}, true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleSLASH: '/' Spacing
func (p *Parser) ruleSLASH() (any, bool) {
	return p.eng.ApplyPlain("SLASH", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('/', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return struct{}{}, true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleAND: '&' Spacing
func (p *Parser) ruleAND() (any, bool) {
	return p.eng.ApplyPlain("AND", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('&', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return grammar.AndPredicate, true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleNOT: '!' Spacing
func (p *Parser) ruleNOT() (any, bool) {
	return p.eng.ApplyPlain("NOT", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('!', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return grammar.NotPredicate, true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleQUESTION: '?' Spacing
func (p *Parser) ruleQUESTION() (any, bool) {
	return p.eng.ApplyPlain("QUESTION", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('?', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return grammar.Quantifier(grammar.NewOpt(p.gpos(begin))), true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleSTAR: '*' Spacing
func (p *Parser) ruleSTAR() (any, bool) {
	return p.eng.ApplyPlain("STAR", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('*', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return grammar.Quantifier(grammar.NewStar(p.gpos(begin))), true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// rulePLUS: '+' Spacing
func (p *Parser) rulePLUS() (any, bool) {
	return p.eng.ApplyPlain("PLUS", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('+', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return grammar.Quantifier(grammar.NewPlus(p.gpos(begin))), true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleOPEN: '(' Spacing
func (p *Parser) ruleOPEN() (any, bool) {
	return p.eng.ApplyPlain("OPEN", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('(', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return struct{}{}, true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleCLOSE: ')' Spacing
func (p *Parser) ruleCLOSE() (any, bool) {
	return p.eng.ApplyPlain("CLOSE", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune(')', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return struct{}{}, true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleDOT: '.' Spacing
func (p *Parser) ruleDOT() (any, bool) {
	return p.eng.ApplyPlain("DOT", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('.', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return grammar.NewAnyChar(p.gpos(begin)), true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleAT: '@' Spacing
func (p *Parser) ruleAT() (any, bool) {
	return p.eng.ApplyPlain("AT", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('@', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return struct{}{}, true
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleSEMI: ':' Spacing
func (p *Parser) ruleSEMI() (any, bool) {
	return p.eng.ApplyPlain("SEMI", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune(':', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				return struct{}{}, true
			}
		}
		p.reset(begin)
		return nil, false
	})
}
