package metaparser

import "github.com/glebzlat/polygen/grammar"

// ruleGrammar: Spacing Entity+ EndOfFile
func (p *Parser) ruleGrammar() (any, bool) {
	return p.eng.ApplyPlain("Grammar", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.ruleSpacing(); !ok {
			p.reset(begin)
			return nil, false
		}
		entities, ok := p.eng.Loop(1, p.ruleEntity)
		if !ok {
			p.reset(begin)
			return nil, false
		}
		if _, ok := p.ruleEndOfFile(); !ok {
			p.reset(begin)
			return nil, false
		}
		var rules []*grammar.Rule
		var metaRules []*grammar.MetaRule
		for _, e := range entities {
			switch v := e.(type) {
			case *grammar.Rule:
				rules = append(rules, v)
			case *grammar.MetaRule:
				metaRules = append(metaRules, v)
			}
		}
		return grammar.NewGrammar(rules, metaRules, p.gpos(begin)), true
	})
}

// ruleEntity: Definition / MetaDef
func (p *Parser) ruleEntity() (any, bool) {
	return p.eng.ApplyPlain("Entity", func() (any, bool) {
		begin := p.mark()
		if v, ok := p.ruleDefinition(); ok {
			return v, true
		}
		p.reset(begin)
		if v, ok := p.ruleMetaDef(); ok {
			return v, true
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleDefinition: Directive* Identifier LEFTARROW Expression / MetaDef
func (p *Parser) ruleDefinition() (any, bool) {
	return p.eng.ApplyPlain("Definition", func() (any, bool) {
		begin := p.mark()
		directives, ok := p.eng.Loop(0, p.ruleDirective)
		if ok {
			if idVal, ok := p.ruleIdentifier(); ok {
				if _, ok := p.ruleLEFTARROW(); ok {
					if exprVal, ok := p.ruleExpression(); ok {
						id := idVal.(*grammar.Identifier)
						expr := exprVal.(*grammar.Expression)
						names := make([]string, len(directives))
						for i, d := range directives {
							names[i] = d.(string)
						}
						return grammar.NewRule(id, expr, names, p.gpos(begin)), true
					}
				}
			}
		}
		p.reset(begin)
		if v, ok := p.ruleMetaDef(); ok {
			return v, true
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleDirective: AT DirName Spacing
func (p *Parser) ruleDirective() (any, bool) {
	return p.eng.ApplyPlain("Directive", func() (any, bool) {
		begin := p.mark()
		if _, ok := p.ruleAT(); ok {
			if nameVal, ok := p.ruleDirName(); ok {
				if _, ok := p.ruleSpacing(); ok {
					return nameVal, true
				}
			}
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleDirName: Identifier
func (p *Parser) ruleDirName() (any, bool) {
	return p.eng.ApplyPlain("DirName", func() (any, bool) {
		begin := p.mark()
		if idVal, ok := p.ruleIdentifier(); ok {
			return idVal.(*grammar.Identifier).Name, true
		}
		p.reset(begin)
		return nil, false
	})
}

// ruleExpression (left-recursive): Sequence (SLASH Sequence)*
func (p *Parser) ruleExpression() (any, bool) {
	v, ok := p.eng.Apply("Expression", func() (any, bool) {
		begin := p.mark()
		seqVal, ok := p.ruleSequence()
		if !ok {
			p.reset(begin)
			return nil, false
		}
		rest, ok := p.eng.Loop(0, func() (any, bool) {
			return p.eng.ApplyPlain("Expression__GEN_1", func() (any, bool) {
				inner := p.mark()
				if _, ok := p.ruleSLASH(); ok {
					if sv, ok := p.ruleSequence(); ok {
						return sv, true
					}
				}
				p.reset(inner)
				return nil, false
			})
		})
		if !ok {
			p.reset(begin)
			return nil, false
		}
		alts := make([]*grammar.Alt, 0, 1+len(rest))
		alts = append(alts, seqVal.(*grammar.Alt))
		for _, r := range rest {
			alts = append(alts, r.(*grammar.Alt))
		}
		return grammar.NewExpression(alts, p.gpos(begin)), true
	})
	return v, ok
}

// ruleSequence (left-recursive): Prefix* MetaRule?
func (p *Parser) ruleSequence() (any, bool) {
	return p.eng.Apply("Sequence", func() (any, bool) {
		begin := p.mark()
		parts, ok := p.eng.Loop(0, p.rulePrefix)
		if !ok {
			p.reset(begin)
			return nil, false
		}
		actionVal, ok := p.maybe(p.ruleMetaRule)
		if !ok {
			p.reset(begin)
			return nil, false
		}
		gparts := make([]*grammar.Part, len(parts))
		for i, pt := range parts {
			gparts[i] = pt.(*grammar.Part)
		}
		var actionRef *grammar.MetaRef
		var action *grammar.MetaRule
		switch a := actionVal.(type) {
		case *grammar.MetaRule:
			action = a
		case *grammar.MetaRef:
			actionRef = a
		}
		return grammar.NewAlt(gparts, actionRef, action, p.gpos(begin)), true
	})
}

// rulePrefix (left-recursive): MetaName? (AND / NOT)? Suffix
func (p *Parser) rulePrefix() (any, bool) {
	return p.eng.Apply("Prefix", func() (any, bool) {
		begin := p.mark()
		metaNameVal, ok := p.maybe(p.ruleMetaName)
		if !ok {
			p.reset(begin)
			return nil, false
		}
		predVal, ok := p.maybe(func() (any, bool) {
			return p.eng.ApplyPlain("Prefix__GEN_1", func() (any, bool) {
				inner := p.mark()
				if v, ok := p.ruleAND(); ok {
					return v, true
				}
				p.reset(inner)
				if v, ok := p.ruleNOT(); ok {
					return v, true
				}
				p.reset(inner)
				return nil, false
			})
		})
		if !ok {
			p.reset(begin)
			return nil, false
		}
		suffixVal, ok := p.ruleSuffix()
		if !ok {
			p.reset(begin)
			return nil, false
		}
		sr := suffixVal.(suffixResult)
		pred := grammar.NoPredicate
		if predVal != nil {
			pred = predVal.(grammar.PredicateKind)
		}
		metaName := ""
		if metaNameVal != nil {
			metaName = metaNameVal.(string)
		}
		return grammar.NewPart(metaName, pred, sr.Primary, sr.Quantifier, p.gpos(begin)), true
	})
}

// suffixResult carries a Suffix rule's primary plus the quantifier (if
// any) applied to it, so Prefix can assemble a flat grammar.Part instead
// of the nested wrapper shape the original tree_modifier node classes
// use.
type suffixResult struct {
	Primary    grammar.Primary
	Quantifier grammar.Quantifier
}

// ruleSuffix (left-recursive): Primary (QUESTION / STAR / PLUS / Repetition)?
func (p *Parser) ruleSuffix() (any, bool) {
	return p.eng.Apply("Suffix", func() (any, bool) {
		begin := p.mark()
		primaryVal, ok := p.rulePrimary()
		if !ok {
			p.reset(begin)
			return nil, false
		}
		quantVal, ok := p.maybe(func() (any, bool) {
			return p.eng.ApplyPlain("Suffix__GEN_1", func() (any, bool) {
				inner := p.mark()
				if v, ok := p.ruleQUESTION(); ok {
					return v, true
				}
				p.reset(inner)
				if v, ok := p.ruleSTAR(); ok {
					return v, true
				}
				p.reset(inner)
				if v, ok := p.rulePLUS(); ok {
					return v, true
				}
				p.reset(inner)
				if v, ok := p.ruleRepetition(); ok {
					return v, true
				}
				p.reset(inner)
				return nil, false
			})
		})
		if !ok {
			p.reset(begin)
			return nil, false
		}
		var quant grammar.Quantifier
		if quantVal != nil {
			quant = quantVal.(grammar.Quantifier)
		}
		return suffixResult{Primary: primaryVal.(grammar.Primary), Quantifier: quant}, true
	})
}

// rulePrimary (left-recursive): Identifier !LEFTARROW / OPEN Expression CLOSE / Literal / Class / DOT
func (p *Parser) rulePrimary() (any, bool) {
	return p.eng.Apply("Primary", func() (any, bool) {
		begin := p.mark()
		if idVal, ok := p.ruleIdentifier(); ok {
			if p.eng.Lookahead(false, func() bool {
				_, ok := p.ruleLEFTARROW()
				return ok
			}) {
				return idVal.(grammar.Primary), true
			}
		}
		p.reset(begin)
		if _, ok := p.ruleOPEN(); ok {
			if exprVal, ok := p.ruleExpression(); ok {
				if _, ok := p.ruleCLOSE(); ok {
					return exprVal.(grammar.Primary), true
				}
			}
		}
		p.reset(begin)
		if v, ok := p.ruleLiteral(); ok {
			return v.(grammar.Primary), true
		}
		p.reset(begin)
		if v, ok := p.ruleClass(); ok {
			return v.(grammar.Primary), true
		}
		p.reset(begin)
		if v, ok := p.ruleDOT(); ok {
			return v.(grammar.Primary), true
		}
		p.reset(begin)
		return nil, false
	})
}

// maybe never fails: it reports the inner result (nil if fn failed) as a
// successful match, mirroring the original grammar's _maybe.
func (p *Parser) maybe(fn func() (any, bool)) (any, bool) {
	v, ok := fn()
	if !ok {
		return nil, true
	}
	return v, true
}
