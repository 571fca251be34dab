// Package front is the bootstrapped grammar-text parser: a hand-written,
// recursive-descent reader of pegomancy's own grammar language, producing a
// *grammar.Grammar for codegen to lower into generated Go source. It plays
// the same role as the Go parser generated by pegomancy itself would play
// for any other grammar, but it is written by hand because pegomancy cannot
// yet generate its own front end. It is the Go counterpart of
// original_source/pegomancy/grammar_parser.py, translated rule for rule.
package front

import (
	"strings"

	"github.com/doom/pegomancy/grammar"
	"github.com/doom/pegomancy/rt"
	"github.com/doom/pegomancy/source"
)

// CommentsPattern enables `#`-to-end-of-line comments in grammar source,
// matching original_source/pegomancy/grammar.py's
// `Grammar.from_specification`, the only place the original project turns
// comment skipping on. The trailing `\n?` is consumed along with the
// comment itself — the grammar language's own newline-terminated
// constructs (rule, setting, verbatim_block) expect to match a real `\n`
// token right after their own content, and a comment line's newline would
// otherwise sit stranded between non-significant runs, unreachable by
// either the whitespace pattern (which excludes `\n`) or a second comment
// match.
const CommentsPattern = `#[^\n]*\n?`

// Parser parses pegomancy grammar source text into a *grammar.Grammar.
type Parser struct {
	*rt.BaseParser
	builder *grammar.Builder
}

// NewParser builds a Parser over text.
func NewParser(text string) *Parser {
	b := &grammar.Builder{}
	cfg := source.Config{
		WhitespacePattern: source.DefaultWhitespacePattern,
		CommentsPattern:   CommentsPattern,
	}
	return &Parser{BaseParser: rt.NewBaseParser(text, cfg, b), builder: b}
}

// Parse runs the grammar rule over the whole input and returns the
// resulting Grammar, or the first parse error encountered.
func (p *Parser) Parse() (*grammar.Grammar, error) {
	v, err := p.grammarRule()
	if err != nil {
		return nil, err
	}
	return v.(*grammar.Grammar), nil
}

func (p *Parser) wrap(rule string, values []interface{}, attrs []rt.Attributes) interface{} {
	return rt.WrapNode(rule, values, attrs, p.Handler)
}

// expectUntil scans from the cursor to the next occurrence of delim without
// consuming it, matching original_source/pegomancy/grammar_parser.py's
// verbatim_block content regex `^(.*?)(?=%})`. Go's RE2 engine has no
// lookahead, so the lazy-match-up-to-a-delimiter this needs is expressed as
// a literal substring search instead of a regex.
func (p *Parser) expectUntil(delim string) (string, error) {
	pos := p.Mark()
	text := p.Reader.Text[pos:]
	idx := strings.Index(text, delim)
	if idx < 0 {
		return "", p.MakeError("expected to find "+delim, pos)
	}
	p.Rewind(pos + idx)
	return text[:idx], nil
}

// namePrefix matches the optional `name:` prefix on a named_item
// (original_source/pegomancy/grammar_parser.py's synthesized_rule_0, lifted
// there by the real compiler's own parenthesized-group synthesis; written
// out by hand here since front is not itself generated).
func (p *Parser) namePrefix() (interface{}, error) {
	return p.ParsingRule("name_prefix", func() (interface{}, error) {
		pos := p.Mark()
		v0, err := p.ExpectRegex(`[a-zA-Z_][a-zA-Z0-9_]*`)
		if err != nil {
			return nil, err
		}
		v1, err := p.ExpectString(":")
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		return p.wrap("name_prefix", []interface{}{v0, v1},
			[]rt.Attributes{{Name: "name"}, {}}), nil
	})
}

// ws matches optional whitespace or newlines, allowing alternatives to wrap
// across lines at the `|` separator.
func (p *Parser) ws() (interface{}, error) {
	return p.ParsingRule("__", func() (interface{}, error) {
		v0, err := p.Maybe(func() (interface{}, error) {
			return p.ExpectRegex(`[ \n\t]+`)
		})
		if err != nil {
			return nil, err
		}
		return p.wrap("__", []interface{}{v0}, []rt.Attributes{{}}), nil
	})
}

func (p *Parser) verbatimBlock() (interface{}, error) {
	return p.ParsingRule("verbatim_block", func() (interface{}, error) {
		pos := p.Mark()
		cut := false

		v0, err := p.ExpectString("@verbatim")
		if err != nil {
			return nil, err
		}
		cut = true
		v1, err := p.ExpectString("%{")
		if err != nil {
			return p.fail(pos, cut, err)
		}
		v2, err := p.expectUntil("%}")
		if err != nil {
			return p.fail(pos, cut, err)
		}
		v3, err := p.ExpectString("%}")
		if err != nil {
			return p.fail(pos, cut, err)
		}
		v4, err := p.Repeat(1, func() (interface{}, error) { return p.ExpectString("\n") })
		if err != nil {
			return p.fail(pos, cut, err)
		}
		return p.wrap("verbatim_block", []interface{}{v0, v1, v2, v3, v4},
			[]rt.Attributes{{}, {}, {Name: "block"}, {}, {}}), nil
	})
}

func (p *Parser) setting() (interface{}, error) {
	return p.ParsingRule("setting", func() (interface{}, error) {
		pos := p.Mark()
		cut := false

		v0, err := p.ExpectString("@set")
		if err != nil {
			return nil, err
		}
		cut = true
		// The reader skips blanks before every match, so the blanks that
		// must separate @set from the name are consumed here directly and
		// their presence is checked by the cursor having moved.
		wsStart := p.Mark()
		p.Reader.ConsumeNonSignificant()
		if p.Mark() == wsStart {
			return p.fail(pos, cut, p.MakeError("expected to match /[ \\t]+/", wsStart))
		}
		v1 := p.Reader.Text[wsStart:p.Mark()]
		v2, err := p.ExpectRegex(`[a-zA-Z_][a-zA-Z0-9_]*`)
		if err != nil {
			return p.fail(pos, cut, err)
		}
		v3, err := p.Repeat(1, func() (interface{}, error) { return p.ExpectString("\n") })
		if err != nil {
			return p.fail(pos, cut, err)
		}
		return p.wrap("setting", []interface{}{v0, v1, v2, v3},
			[]rt.Attributes{{}, {}, {Name: "setting"}, {}}), nil
	})
}

func (p *Parser) ruleName() (interface{}, error) {
	return p.ParsingRule("rule_name", func() (interface{}, error) {
		v0, err := p.ExpectRegex(`[a-zA-Z_][a-zA-Z0-9_]*`)
		if err != nil {
			return nil, err
		}
		return p.wrap("rule_name", []interface{}{v0}, []rt.Attributes{{}}), nil
	})
}

func (p *Parser) literal() (interface{}, error) {
	return p.ParsingRule("literal", func() (interface{}, error) {
		if node, err := p.quotedBy(`"`); err == nil {
			return node, nil
		} else if _, ok := err.(*rt.ParseError); !ok {
			return nil, err
		}
		return p.quotedBy("'")
	})
}

func (p *Parser) quotedBy(quote string) (interface{}, error) {
	pos := p.Mark()
	v0, err := p.ExpectString(quote)
	if err != nil {
		return nil, err
	}
	// expectUntil, unlike ExpectRegex, does not skip non-significant text
	// first, so leading blanks or a '#' inside the quotes stay part of the
	// literal.
	v1, err := p.expectUntil(quote)
	if err != nil {
		p.Rewind(pos)
		return nil, err
	}
	v2, err := p.ExpectString(quote)
	if err != nil {
		p.Rewind(pos)
		return nil, err
	}
	return p.wrap("literal", []interface{}{v0, v1, v2}, []rt.Attributes{{}, {}, {}}), nil
}

func (p *Parser) regex() (interface{}, error) {
	return p.ParsingRule("regex", func() (interface{}, error) {
		pos := p.Mark()
		v0, err := p.ExpectString("r")
		if err != nil {
			return nil, err
		}
		v1, err := p.literal()
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		return p.wrap("regex", []interface{}{v0, v1}, []rt.Attributes{{}, {}}), nil
	})
}

func (p *Parser) atom() (interface{}, error) {
	return p.ParsingRule("atom", func() (interface{}, error) {
		if v, err := p.regex(); err == nil {
			return p.wrap("atom", []interface{}{v}, []rt.Attributes{{}}), nil
		} else if _, ok := err.(*rt.ParseError); !ok {
			return nil, err
		}

		if v, err := p.literal(); err == nil {
			return p.wrap("atom", []interface{}{v}, []rt.Attributes{{}}), nil
		} else if _, ok := err.(*rt.ParseError); !ok {
			return nil, err
		}

		if v, err := p.ruleName(); err == nil {
			return p.wrap("atom", []interface{}{v}, []rt.Attributes{{Name: "rule_name"}}), nil
		} else if _, ok := err.(*rt.ParseError); !ok {
			return nil, err
		}

		pos := p.Mark()
		cut := false
		v0, err := p.ExpectString("(")
		if err != nil {
			return nil, err
		}
		cut = true
		v2, err := p.alternatives()
		if err != nil {
			return p.fail(pos, cut, err)
		}
		v3, err := p.ExpectString(")")
		if err != nil {
			return p.fail(pos, cut, err)
		}
		return p.wrap("atom", []interface{}{v0, nil, v2, v3},
			[]rt.Attributes{{}, {Ignore: true}, {Name: "parenthesized_alts"}, {}}), nil
	})
}

func (p *Parser) maybe() (interface{}, error) {
	return p.ParsingRule("maybe", func() (interface{}, error) {
		pos := p.Mark()
		v0, err := p.atom()
		if err != nil {
			return nil, err
		}
		v1, err := p.ExpectString("?")
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		return p.wrap("maybe", []interface{}{v0, v1}, []rt.Attributes{{Name: "atom"}, {}}), nil
	})
}

func (p *Parser) oneOrMore() (interface{}, error) {
	return p.ParsingRule("one_or_more", func() (interface{}, error) {
		pos := p.Mark()
		v0, err := p.atom()
		if err != nil {
			return nil, err
		}
		v1, err := p.ExpectString("+")
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		return p.wrap("one_or_more", []interface{}{v0, v1}, []rt.Attributes{{Name: "atom"}, {}}), nil
	})
}

func (p *Parser) zeroOrMore() (interface{}, error) {
	return p.ParsingRule("zero_or_more", func() (interface{}, error) {
		pos := p.Mark()
		v0, err := p.atom()
		if err != nil {
			return nil, err
		}
		v1, err := p.ExpectString("*")
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		return p.wrap("zero_or_more", []interface{}{v0, v1}, []rt.Attributes{{Name: "atom"}, {}}), nil
	})
}

func (p *Parser) maybeSepBy() (interface{}, error) {
	return p.ParsingRule("maybe_sep_by", func() (interface{}, error) {
		pos := p.Mark()
		v0, err := p.ExpectString("{")
		if err != nil {
			return nil, err
		}
		v1, err := p.item()
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		v2, err := p.atom()
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		v3, err := p.ExpectString("...")
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		v4, err := p.ExpectString("}")
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		v5, err := p.ExpectString("*")
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		return p.wrap("maybe_sep_by", []interface{}{v0, v1, v2, v3, v4, v5},
			[]rt.Attributes{{}, {Name: "element"}, {Name: "separator"}, {}, {}, {}}), nil
	})
}

func (p *Parser) sepBy() (interface{}, error) {
	return p.ParsingRule("sep_by", func() (interface{}, error) {
		pos := p.Mark()
		v0, err := p.ExpectString("{")
		if err != nil {
			return nil, err
		}
		v1, err := p.item()
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		v2, err := p.atom()
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		v3, err := p.ExpectString("...")
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		v4, err := p.ExpectString("}")
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		v5, err := p.ExpectString("+")
		if err != nil {
			p.Rewind(pos)
			return nil, err
		}
		return p.wrap("sep_by", []interface{}{v0, v1, v2, v3, v4, v5},
			[]rt.Attributes{{}, {Name: "element"}, {Name: "separator"}, {}, {}, {}}), nil
	})
}

func (p *Parser) lookahead() (interface{}, error) {
	return p.ParsingRule("lookahead", func() (interface{}, error) {
		pos := p.Mark()
		cut := false
		v0, err := p.ExpectString("&")
		if err != nil {
			return nil, err
		}
		cut = true
		v2, err := p.item()
		if err != nil {
			return p.fail(pos, cut, err)
		}
		return p.wrap("lookahead", []interface{}{v0, nil, v2},
			[]rt.Attributes{{}, {Ignore: true}, {Name: "item"}}), nil
	})
}

func (p *Parser) negativeLookahead() (interface{}, error) {
	return p.ParsingRule("negative_lookahead", func() (interface{}, error) {
		pos := p.Mark()
		cut := false
		v0, err := p.ExpectString("!")
		if err != nil {
			return nil, err
		}
		cut = true
		v2, err := p.item()
		if err != nil {
			return p.fail(pos, cut, err)
		}
		return p.wrap("negative_lookahead", []interface{}{v0, nil, v2},
			[]rt.Attributes{{}, {Ignore: true}, {Name: "item"}}), nil
	})
}

func (p *Parser) cut() (interface{}, error) {
	return p.ParsingRule("cut", func() (interface{}, error) {
		v0, err := p.ExpectString("~")
		if err != nil {
			return nil, err
		}
		return p.wrap("cut", []interface{}{v0}, []rt.Attributes{{}}), nil
	})
}

func (p *Parser) eofItem() (interface{}, error) {
	return p.ParsingRule("eof_", func() (interface{}, error) {
		v0, err := p.ExpectString("EOF")
		if err != nil {
			return nil, err
		}
		return p.wrap("eof_", []interface{}{v0}, []rt.Attributes{{}}), nil
	})
}

// item is the ordered choice over every item form. Order matters: maybe,
// one_or_more and zero_or_more all start by matching atom, so they must be
// tried before the bare atom fallback, and sep_by/maybe_sep_by must be
// tried before maybe/one_or_more/zero_or_more since both forms can start
// with the same '{' + item prefix as a parenthesized atom nested inside
// them (original_source/pegomancy/grammar_parser.py's item rule preserves
// this exact order).
func (p *Parser) item() (interface{}, error) {
	return p.ParsingRule("item", func() (interface{}, error) {
		alts := []func() (interface{}, error){
			p.cut, p.eofItem, p.sepBy, p.maybeSepBy,
			p.maybe, p.oneOrMore, p.zeroOrMore,
			p.lookahead, p.negativeLookahead, p.atom,
		}
		pos := p.Mark()
		for _, alt := range alts {
			if v, err := alt(); err == nil {
				return v, nil
			} else if _, ok := err.(*rt.ParseError); !ok {
				return nil, err
			}
			p.Rewind(pos)
		}
		return nil, p.MakeError("expected an item", pos)
	})
}

func (p *Parser) namedItem() (interface{}, error) {
	return p.ParsingRule("named_item", func() (interface{}, error) {
		v0, err := p.Maybe(p.namePrefix)
		if err != nil {
			return nil, err
		}
		v1, err := p.item()
		if err != nil {
			return nil, err
		}
		return p.wrap("named_item", []interface{}{v0, v1},
			[]rt.Attributes{{Name: "name"}, {Name: "item"}}), nil
	})
}

func (p *Parser) alternative() (interface{}, error) {
	return p.ParsingRule("alternative", func() (interface{}, error) {
		v0, err := p.Repeat(1, p.namedItem)
		if err != nil {
			return nil, err
		}
		return p.wrap("alternative", []interface{}{v0}, []rt.Attributes{{}}), nil
	})
}

func (p *Parser) alternatives() (interface{}, error) {
	return p.LeftRecursiveParsingRule("alternatives", func() (interface{}, error) {
		pos := p.Mark()
		cut := false

		v0, err := p.alternatives()
		if err == nil {
			if _, err := p.ws(); err != nil {
				return p.fail(pos, cut, err)
			}
			if _, err := p.ExpectString("|"); err != nil {
				return p.fail(pos, cut, err)
			}
			cut = true
			v4, err := p.alternative()
			if err != nil {
				return p.fail(pos, cut, err)
			}
			return p.wrap("alternatives", []interface{}{v0, nil, nil, nil, v4},
				[]rt.Attributes{{Name: "alts"}, {}, {}, {Ignore: true}, {Name: "alt"}}), nil
		}
		if _, ok := err.(*rt.ParseError); !ok {
			return nil, err
		}
		p.Rewind(pos)

		v0, err = p.alternative()
		if err != nil {
			return nil, err
		}
		return p.wrap("alternatives", []interface{}{v0}, []rt.Attributes{{Name: "alt"}}), nil
	})
}

func (p *Parser) rule() (interface{}, error) {
	return p.ParsingRule("rule", func() (interface{}, error) {
		pos := p.Mark()
		cut := false

		v0, err := p.ruleName()
		if err != nil {
			return nil, err
		}
		if _, err := p.ExpectString(":"); err != nil {
			return p.fail(pos, cut, err)
		}
		cut = true
		v3, err := p.alternatives()
		if err != nil {
			return p.fail(pos, cut, err)
		}
		if _, err := p.Repeat(1, func() (interface{}, error) { return p.ExpectString("\n") }); err != nil {
			return p.fail(pos, cut, err)
		}
		return p.wrap("rule", []interface{}{v0, nil, nil, v3, nil},
			[]rt.Attributes{{Name: "name"}, {}, {Ignore: true}, {Name: "alts"}, {}}), nil
	})
}

func (p *Parser) grammarRule() (interface{}, error) {
	return p.ParsingRule("grammar", func() (interface{}, error) {
		pos := p.Mark()
		cut := false

		v0, err := p.Repeat(0, p.verbatimBlock)
		if err != nil {
			return nil, err
		}
		v1, err := p.Repeat(0, p.setting)
		if err != nil {
			return nil, err
		}
		v2, err := p.Repeat(1, p.rule)
		if err != nil {
			return nil, err
		}
		cut = true
		if _, err := p.ExpectEOF(); err != nil {
			return p.fail(pos, cut, err)
		}
		return p.wrap("grammar", []interface{}{v0, v1, v2, nil, nil},
			[]rt.Attributes{{Name: "verbatim"}, {Name: "settings"}, {Name: "rules"}, {Ignore: true}, {Ignore: true}}), nil
	})
}

// fail rewinds to pos and, if cut was already set when err occurred,
// promotes err to a *rt.CutError so ordered choice cannot recover from it
// (spec.md §4.2, "Cut").
func (p *Parser) fail(pos int, cut bool, err error) (interface{}, error) {
	p.Rewind(pos)
	if cut {
		return nil, rt.Cut(err)
	}
	return nil, err
}
