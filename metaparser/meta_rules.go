package metaparser

import "github.com/glebzlat/polygen/grammar"

// ruleMetaName: Identifier SEMI
func (p *Parser) ruleMetaName() (any, bool) {
	return p.eng.ApplyPlain("MetaName", func() (any, bool) {
		begin := p.mark()
		idVal, ok := p.ruleIdentifier()
		if !ok {
			p.reset(begin)
			return nil, false
		}
		if _, ok := p.ruleSEMI(); !ok {
			p.reset(begin)
			return nil, false
		}
		return idVal.(*grammar.Identifier).Name, true
	})
}

// ruleMetaRule: "${" MetaBody* '}' Spacing / '$' Spacing Identifier !'{'
//
// The first alternative is the anonymous inline action attached directly
// to the Alt; the second is a named reference to a MetaDef, resolved
// later by the meta-reference substitution pass.
func (p *Parser) ruleMetaRule() (any, bool) {
	return p.eng.ApplyPlain("MetaRule", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectString("${"); ok {
			body, ok := p.metaBody()
			if ok {
				if _, ok := p.eng.ExpectRune('}', false); ok {
					if _, ok := p.ruleSpacing(); ok {
						return grammar.NewMetaRule("", body, p.gpos(begin)), true
					}
				}
			}
		}
		p.reset(begin)
		if _, ok := p.eng.ExpectRune('$', false); ok {
			if _, ok := p.ruleSpacing(); ok {
				if idVal, ok := p.ruleIdentifier(); ok {
					if p.eng.Lookahead(false, func() bool {
						_, ok := p.eng.ExpectRune('{', false)
						return ok
					}) {
						name := idVal.(*grammar.Identifier).Name
						return grammar.NewMetaRef(name, p.gpos(begin)), true
					}
				}
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleMetaDef: '$' Spacing Identifier MetaDefBody
func (p *Parser) ruleMetaDef() (any, bool) {
	return p.eng.ApplyPlain("MetaDef", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('$', false); !ok {
			p.reset(begin)
			return nil, false
		}
		if _, ok := p.ruleSpacing(); !ok {
			p.reset(begin)
			return nil, false
		}
		idVal, ok := p.ruleIdentifier()
		if !ok {
			p.reset(begin)
			return nil, false
		}
		body, ok := p.ruleMetaDefBody()
		if !ok {
			p.reset(begin)
			return nil, false
		}
		name := idVal.(*grammar.Identifier).Name
		return grammar.NewMetaRule(name, body.(string), p.gpos(begin)), true
	})
}

// ruleMetaDefBody: '{' MetaBody* '}' Spacing
func (p *Parser) ruleMetaDefBody() (any, bool) {
	return p.eng.ApplyPlain("MetaDefBody", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('{', false); !ok {
			p.reset(begin)
			return nil, false
		}
		body, ok := p.metaBody()
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
		return body, true
	})
}

// metaBody implements the shared _MetaRule__GEN_1 loop: NestedBody / (!'}' .)
func (p *Parser) metaBody() (string, bool) {
	pieces, ok := p.eng.Loop(0, func() (any, bool) {
		begin := p.mark()
		if v, ok := p.ruleNestedBody(); ok {
			return v, true
		}
		p.reset(begin)
		if p.eng.Lookahead(true, func() bool {
			_, ok := p.eng.ExpectRune('}', false)
			return ok
		}) {
			p.reset(begin)
			return nil, false
		}
		if v, ok := p.ruleAnyCharGen(); ok {
			return string(v.(rune)), true
		}
		p.reset(begin)
		return nil, false
	})
	if !ok {
		return "", false
	}
	var body string
	for _, piece := range pieces {
		body += piece.(string)
	}
	return body, true
}

// ruleNestedBody (left-recursive): '{' MetaBody* '}', reassembled with its
// own braces so a balanced nested block round-trips verbatim into the
// enclosing action text.
func (p *Parser) ruleNestedBody() (any, bool) {
	v, ok := p.eng.Apply("NestedBody", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.eng.ExpectRune('{', false); !ok {
			p.reset(begin)
			return nil, false
		}
		body, ok := p.metaBody()
		if !ok {
			p.reset(begin)
			return nil, false
		}
		if _, ok := p.eng.ExpectRune('}', false); !ok {
			p.reset(begin)
			return nil, false
		}
		return "{" + body + "}", true
	})
	return v, ok
}
