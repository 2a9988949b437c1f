package grammar

import (
	"strconv"
	"strings"
)

// String renders a node as the error/warning reporter shows it: enough
// to identify the node in a diagnostic, not a full pretty-printer for
// the meta-grammar surface syntax.
func String(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch x := n.(type) {
	case *Grammar:
		b.WriteString("grammar(")
		b.WriteString(strconv.Itoa(len(x.Rules)))
		b.WriteString(" rules)")
	case *Rule:
		b.WriteString("rule ")
		b.WriteString(x.ID.Name)
		b.WriteString(" at ")
		b.WriteString(x.pos.String())
	case *Identifier:
		b.WriteString(x.Name)
	case *Expression:
		b.WriteString("expression(")
		b.WriteString(strconv.Itoa(len(x.Alts)))
		b.WriteString(" alts) at ")
		b.WriteString(x.pos.String())
	case *Alt:
		b.WriteString("alt at ")
		b.WriteString(x.pos.String())
	case *Part:
		b.WriteString("part ")
		if x.Predicate != NoPredicate {
			b.WriteString(x.Predicate.String())
		}
		writeNode(b, x.Primary)
		if x.Quantifier != nil {
			writeNode(b, x.Quantifier)
		}
		b.WriteString(" at ")
		b.WriteString(x.pos.String())
	case *String:
		b.WriteString(strconv.Quote(x.Value))
	case *Char:
		b.WriteString(strconv.QuoteRune(x.Value))
	case *Class:
		b.WriteByte('[')
		for i, r := range x.Ranges {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeNode(b, r)
		}
		b.WriteByte(']')
	case *Range:
		b.WriteString(strconv.QuoteRune(x.Beg))
		if x.End != nil {
			b.WriteByte('-')
			b.WriteString(strconv.QuoteRune(*x.End))
		}
	case *AnyChar:
		b.WriteByte('.')
	case *Opt:
		b.WriteByte('?')
	case *Star:
		b.WriteByte('*')
	case *Plus:
		b.WriteByte('+')
	case *Repetition:
		b.WriteByte('{')
		b.WriteString(strconv.Itoa(x.Beg))
		if x.End != nil {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(*x.End))
		}
		b.WriteByte('}')
	case *MetaRule:
		b.WriteByte('$')
		b.WriteString(x.Name)
	case *MetaRef:
		b.WriteByte('$')
		b.WriteString(x.Name)
	default:
		b.WriteString("<node>")
	}
}
