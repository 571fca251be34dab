/*
Command pegomancy generates Go parsers from a PEG grammar.

From Wikipedia [0]:

	A parsing expression grammar is a type of analytic formal grammar, i.e.
	it describes a formal language in terms of a set of rules for recognizing
	strings in the language.

pegomancy's grammar syntax favors fewer sigils than pigeon's: quantifiers and
captures read close to the resulting Go value, ordered choice is written
"|" rather than "/", and backtracking failures are reported by a runtime
library (package rt) rather than by code the grammar author writes by hand.

	[0]: http://en.wikipedia.org/wiki/Parsing_expression_grammar

Command-line usage

pegomancy must be called with a grammar file as defined by the accepted
grammar syntax below. The grammar may be provided by a file or read from
stdin. The generated parser is written to stdout by default.

	pegomancy [options] [GRAMMAR_FILE]

The following options can be specified:

	-o, --output FILE : string, output file where the generated parser will
	be written (default: stdout).

	-x, --no-build : boolean, if set, do not build the parser, just parse
	the input grammar (default: false).

	--package-name NAME : string, package clause for the generated parser
	(default: main).

	--class-name NAME : string, type name for the generated parser struct
	(default: Parser).

	--receiver-name NAME : string, name of the receiver variable for the
	generated methods (default: p).

	--log-level LEVEL : string, one of debug, info, warn, error (default:
	info).

	--log-format FORMAT : string, one of text, json, json-pretty (default:
	json).

The tool formats the generated code with go/format before writing it, so
there is no separate goimports step; the generated file imports only
github.com/doom/pegomancy/rt and github.com/doom/pegomancy/source plus
whatever the grammar's own %{ ... %} prelude blocks import.

Grammar syntax

A grammar is a sequence of optional @verbatim %{ ... %} prelude blocks,
optional "@set name" settings, and one or more newline-terminated rules. Rule names are snake_case
identifiers; the rule definition operator is ":".

	# entry point
	expr: expr "+" term
	    | term
	term: r'[0-9]+'

String and regex literals have no escape sequences: the text between the
quotes is taken as written and cannot contain the quote character that
delimits it. A "#" outside a string starts a line comment that runs to
the end of the line.

Rules

A rule is an identifier followed by ":" and one or more alternatives
separated by "|". Each alternative is a sequence of items matched in
order; the first alternative that matches the full sequence wins the
rule, the same first-match-wins ordered choice every PEG uses. A rule
that refers to itself as the first item of one of its own alternatives
is left-recursive and is compiled using seed-and-grow rather than plain
recursive descent, so direct left recursion is allowed:

	expr: expr "+" term
	    | term

Items

A literal matcher is a single- or double-quoted string, matched
verbatim, with a keyword boundary check (no following letter or digit)
when the literal is itself alphanumeric.

A regex matcher is written r'...' and is matched with Go's regexp
package anchored at the current position.

A rule reference is a bare rule name.

Quantifiers wrap an item: "item?" is optional, "item*" is zero or more,
"item+" is one or more. "{ element "," ... }*" and "{ element "," ... }+" are
separated-list quantifiers: the first matches zero or more elements
separated by the given separator item, the second requires at least
one.

"&item" is a positive lookahead: it succeeds without consuming input if
item matches. "!item" is a negative lookahead: it succeeds without
consuming input if item does not match.

"~" is the cut operator: once an alternative matches past a cut, the
rule commits to that alternative and any later failure is fatal rather
than triggering a fall-through to the next alternative.

"EOF" matches end of input.

An item can be given a name with "name:item"; a named item's value is
kept and exposed under that name in the alternative's result even when
unnamed items in the same alternative would otherwise have been kept
positionally.

Using the generated parser

The generated package exports a struct named by --class-name (Parser by
default) embedding *rt.BaseParser, a constructor New<ClassName>(text
string) and one exported method per grammar rule, named by
converting the rule's snake_case name to PascalCase. Each rule method
returns (interface{}, error); the value's shape follows the node-shape
rules: ignored items (cut and EOF) contribute nothing, named values are
returned in a map keyed by name (unnamed values are then left out),
otherwise a single kept value is returned unwrapped, and otherwise an
ordered []interface{} of the kept values is returned, empty when nothing
was kept.

Error reporting

Parse errors are returned as *rt.ParseError, carrying a message and a
source location (line, column, byte offset). A rule that exhausts its
alternatives reports "expected a <rule name>" at the position where the
rule started; no furthest-failure position is tracked. Reaching a cut operator and then
failing produces a *rt.CutError instead, which is not recovered by
backtracking into a sibling alternative.
*/
package main
