package metaparser

import (
	"github.com/glebzlat/polygen/grammar"
	"github.com/glebzlat/polygen/packrat"
)

// ruleIdentifier: IdentStart IdentCont* Spacing
func (p *Parser) ruleIdentifier() (any, bool) {
	return p.eng.ApplyPlain("Identifier", func() (any, bool) {
		begin := p.mark()
		startVal, ok := p.ruleIdentStart()
		if !ok {
			p.reset(begin)
			return nil, false
		}
		rest, ok := p.eng.Loop(0, p.ruleIdentCont)
		if !ok {
			p.reset(begin)
			return nil, false
		}
		if _, ok := p.ruleSpacing(); !ok {
			p.reset(begin)
			return nil, false
		}
		name := string(startVal.(rune))
		for _, c := range rest {
			name += string(c.(rune))
		}
		return grammar.NewIdentifier(name, p.gpos(begin)), true
	})
}

// ruleIdentStart: [a-zA-Z_]
func (p *Parser) ruleIdentStart() (any, bool) {
	return p.eng.ApplyPlain("IdentStart", func() (any, bool) {
		return p.eng.Ranges(
			packrat.RuneRange{Beg: 'a', End: 'z'},
			packrat.RuneRange{Beg: 'A', End: 'Z'},
			packrat.RuneRange{Beg: '_', End: '_'},
		)
	})
}

// ruleIdentCont: IdentStart / [0-9]
func (p *Parser) ruleIdentCont() (any, bool) {
	return p.eng.ApplyPlain("IdentCont", func() (any, bool) {
		begin := p.mark()
		if v, ok := p.ruleIdentStart(); ok {
			return v, true
		}
		p.reset(begin)
		if v, ok := p.eng.Ranges(packrat.RuneRange{Beg: '0', End: '9'}); ok {
			return v, true
		}
		p.reset(begin)
		return nil, false
	})
}
