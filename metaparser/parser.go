// Package metaparser implements the hand-written recognizer for the PEG
// meta-grammar: it reads a CharSource and builds a grammar.Grammar tree.
//
// The meta-grammar is recursive (Expression, Sequence, Prefix, Suffix,
// Primary, and NestedBody reach one another again after an opening '('
// or '{'), and those six rules are run through the left-recursion-aware
// Engine.Apply, so this package is built directly on packrat.Engine
// rather than a plain hand-rolled recursive descent — the generator's
// own front-end is the first proof that its runtime contract
// (component F) is correct.
package metaparser

import (
	"github.com/glebzlat/polygen/charsource"
	"github.com/glebzlat/polygen/grammar"
	"github.com/glebzlat/polygen/packrat"
)

// Parser recognizes one grammar source against one CharSource. Build a
// fresh Parser per input; it is not safe to reuse across sources.
type Parser struct {
	src charsource.CharSource
	eng *packrat.Engine

	genCounter int // disambiguates synthetic Primary names, unused here
}

// NewParser returns a Parser reading from src.
func NewParser(src charsource.CharSource) *Parser {
	return &Parser{src: src, eng: packrat.New(src)}
}

// Parse runs the meta-grammar's entry rule over the full input. It
// returns a *ParserFailure if the input does not match.
func Parse(src charsource.CharSource) (*grammar.Grammar, error) {
	p := NewParser(src)
	v, ok := p.ruleGrammar()
	if !ok {
		return nil, p.failure()
	}
	return v.(*grammar.Grammar), nil
}

func (p *Parser) failure() *ParserFailure {
	mark := p.eng.Source.Mark()
	pos := p.position(mark)
	return &ParserFailure{Offset: pos.Offset, Line: pos.Line, Col: pos.Col}
}

type positioner interface {
	PositionAt(int) charsource.Position
}

func (p *Parser) position(mark int) charsource.Position {
	if ps, ok := p.src.(positioner); ok {
		return ps.PositionAt(mark)
	}
	return charsource.Position{Offset: mark}
}

func (p *Parser) gpos(mark int) grammar.Position {
	cp := p.position(mark)
	return grammar.Position{Line: cp.Line, Col: cp.Col, Offset: cp.Offset}
}

// mark/reset are thin aliases kept for readability at call sites that
// mirror the original grammar's _begin_pos bookkeeping.
func (p *Parser) mark() int         { return p.eng.Source.Mark() }
func (p *Parser) reset(pos int)     { p.eng.Source.Reset(pos) }
