/*
Command polygen generates Go parsers from a PEG grammar.

From Wikipedia:

	A parsing expression grammar is a type of analytic formal grammar, i.e.
	it describes a formal language in terms of a set of rules for recognizing
	strings in the language.

polygen compiles such a grammar into a self-contained packrat recognizer:
one Go function per rule, memoized per (rule, position) pair, with direct
and indirect left recursion resolved via the Warth/Douglass/Millstein/Megacz
seed-growing algorithm. The generated parser does not import polygen; the
runtime it needs is re-emitted verbatim at the top of the output file.

Command-line usage

	polygen [options] [GRAMMAR_FILE]

The grammar may be provided by a file or read from stdin. The generated
parser is written to stdout by default.

	-h -help
		display the help message.
	-o=FILE
		output file where the generated parser will be written
		(default: stdout).
	-package=NAME
		package name of the generated parser (default: main).
	-x
		do not generate the parser, just parse and normalize the
		grammar; useful to check a grammar for errors.

The tool makes no attempt to format the generated code. Pipe the output
through goimports if that matters:

	polygen GRAMMAR_FILE | goimports > output_file.go

Grammar syntax

A polygen grammar consists of a set of rule definitions, each optionally
preceded by directives, and optionally interleaved with meta-action
definitions. A rule is an identifier followed by the rule definition
operator "<-" and an expression:

	Digit <- [0-9]

Directives

A rule may carry one or more "@name" directives before its identifier.
"@entry" marks the grammar's start rule (exactly one rule must carry it).
"@ignore" marks a rule whose matches are elided from its callers' default
result construction, for grammars that want to name whitespace or comment
rules without threading their values through every action.

	@entry Program <- Statement+
	@ignore Spacing <- ' '*

Expressions

Expressions are built from the usual PEG operators: choice "/", sequence
(juxtaposition), the "&" and "!" lookahead predicates, the "?", "*", "+"
quantifiers, and the bounded repetition "{n}" / "{n,m}" form. Parentheses
group a sub-expression. A character class is written "[...]", with ranges
as "[a-z]"; "." matches any single character. A class has no negated
form — write "![a-z] ." for "any character not in a-z".

	Expr <- Term (('+' / '-') Term)*
	Term <- 'a'{2,4}

Labeled expression

A labeled expression is an identifier followed by ":" and an expression;
the label becomes the name of the captured value inside the rule's
meta-action. A label on a quoted literal is replaced by a positional
name (_1, _2, ...) during normalization, and a label on a "&" or "!"
predicate is dropped with a warning.

	Pair <- key:Identifier ':' value:Value

Meta-actions

A meta-action is a block of opaque target-language text, either attached
directly to an alternative with "${...}", or defined once by name with
"$name{...}" and referenced from an alternative with "$name". The text is
never parsed by polygen; it is spliced verbatim into the generated code
as the body of a function literal with access to the alternative's
labeled captures.

	$sum{ return a + b }
	Expr <- a:Term '+' b:Term $sum
	      / Term

If an alternative carries no meta-action, its default result is nil for
zero captures, the lone value for one capture, or a []interface{} of all
captures, in order, for more than one.
*/
package main
