package front

import (
	"testing"

	"github.com/doom/pegomancy/grammar"
)

func TestParseArithmeticGrammar(t *testing.T) {
	src := `@verbatim %{
package arith
%}
@set memoize_all
# entry point
expr: expr "+" term
    | term
term: r'[0-9]+'
`
	p := NewParser(src)
	g, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(g.Prelude) != 1 || g.Prelude[0] != "\npackage arith\n" {
		t.Fatalf("prelude = %#v", g.Prelude)
	}
	if !g.Setting("memoize_all") {
		t.Fatal("expected memoize_all setting")
	}

	expr := g.RuleByName("expr")
	if expr == nil {
		t.Fatal("expected rule expr")
	}
	if !expr.IsLeftRecursive() {
		t.Fatal("expected expr to be detected as left-recursive")
	}
	if len(expr.Alternatives) != 2 {
		t.Fatalf("expr alternatives = %#v", expr.Alternatives)
	}
	alt0 := expr.Alternatives[0]
	if len(alt0.Items) != 3 {
		t.Fatalf("alt0 items = %#v", alt0.Items)
	}
	if alt0.Items[0].Kind != grammar.KindRule || alt0.Items[0].RuleName != "expr" {
		t.Fatalf("alt0[0] = %#v", alt0.Items[0])
	}
	if alt0.Items[1].Kind != grammar.KindLiteral || alt0.Items[1].Target != "+" {
		t.Fatalf("alt0[1] = %#v", alt0.Items[1])
	}
	if alt0.Items[2].Kind != grammar.KindRule || alt0.Items[2].RuleName != "term" {
		t.Fatalf("alt0[2] = %#v", alt0.Items[2])
	}

	term := g.RuleByName("term")
	if term == nil || len(term.Alternatives) != 1 {
		t.Fatalf("term = %#v", term)
	}
	if term.Alternatives[0].Items[0].Kind != grammar.KindRegex {
		t.Fatalf("term alt = %#v", term.Alternatives[0].Items[0])
	}
}

func TestParseNamedItemsAndQuantifiers(t *testing.T) {
	src := `list: "[" { item "," ... }* "]"
item: r'[a-z]+'
`
	p := NewParser(src)
	g, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := g.RuleByName("list")
	if list == nil {
		t.Fatal("expected rule list")
	}
	alt := list.Alternatives[0]
	if len(alt.Items) != 3 {
		t.Fatalf("items = %#v", alt.Items)
	}
	if alt.Items[1].Kind != grammar.KindMaybeSepBy {
		t.Fatalf("items[1] = %#v", alt.Items[1])
	}
	if alt.Items[1].Element.RuleName != "item" {
		t.Fatalf("element = %#v", alt.Items[1].Element)
	}
	if alt.Items[1].Separator.Kind != grammar.KindLiteral || alt.Items[1].Separator.Target != "," {
		t.Fatalf("separator = %#v", alt.Items[1].Separator)
	}
}

func TestParseNamedCaptureAndLookahead(t *testing.T) {
	src := `greeting: name:r'[a-z]+' &EOF
`
	p := NewParser(src)
	g, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rule := g.RuleByName("greeting")
	if rule == nil {
		t.Fatal("expected rule greeting")
	}
	alt := rule.Alternatives[0]
	if len(alt.Items) != 2 {
		t.Fatalf("items = %#v", alt.Items)
	}
	if alt.Items[0].Attributes.Name != "name" {
		t.Fatalf("named item = %#v", alt.Items[0])
	}
	if alt.Items[1].Kind != grammar.KindLookahead || alt.Items[1].Inner.Kind != grammar.KindEOF {
		t.Fatalf("lookahead item = %#v", alt.Items[1])
	}
}

func TestParseParenthesizedGroupSynthesizesRule(t *testing.T) {
	src := `expr: ("a" | "b") "c"
`
	p := NewParser(src)
	g, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expr := g.RuleByName("expr")
	if expr == nil {
		t.Fatal("expected rule expr")
	}
	group := expr.Alternatives[0].Items[0]
	if group.Kind != grammar.KindRule {
		t.Fatalf("group = %#v", group)
	}
	synth := g.RuleByName(group.RuleName)
	if synth == nil || len(synth.Alternatives) != 2 {
		t.Fatalf("synthesized rule = %#v", synth)
	}
}

func TestParseInvalidGrammarReturnsError(t *testing.T) {
	p := NewParser("expr: \n")
	if _, err := p.Parse(); err == nil {
		t.Fatal("expected a parse error")
	}
}
