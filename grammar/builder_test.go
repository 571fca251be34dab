package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuilderLiteralAndRegex(t *testing.T) {
	b := &Builder{}

	lit, ok := b.Handle("literal", []interface{}{`"`, "foo", `"`})
	if !ok {
		t.Fatal("expected literal to be handled")
	}
	if lit.(*Item).Kind != KindLiteral || lit.(*Item).Target != "foo" {
		t.Fatalf("got %#v", lit)
	}

	re, ok := b.Handle("regex", []interface{}{"r", lit})
	if !ok {
		t.Fatal("expected regex to be handled")
	}
	if re.(*Item).Kind != KindRegex || re.(*Item).Target != "foo" {
		t.Fatalf("got %#v", re)
	}
}

func TestBuilderAtomParenthesizedSynthesizesRule(t *testing.T) {
	b := &Builder{}
	alts := []Alternative{{Items: []*Item{NewLiteral("x")}}}

	got, ok := b.Handle("atom", map[string]interface{}{"parenthesized_alts": alts})
	if !ok {
		t.Fatal("expected atom to be handled")
	}
	item := got.(*Item)
	if item.Kind != KindRule || item.RuleName != "synthesized_rule_0" {
		t.Fatalf("got %#v", item)
	}
	if len(b.SynthesizedRules) != 1 || b.SynthesizedRules[0].Name != "synthesized_rule_0" {
		t.Fatalf("synthesized rules = %#v", b.SynthesizedRules)
	}
}

func TestBuilderNamedItemSetsName(t *testing.T) {
	b := &Builder{}
	item := NewLiteral("x")
	node := map[string]interface{}{
		"name": map[string]interface{}{"name": "value"},
		"item": item,
	}
	got, ok := b.Handle("named_item", node)
	if !ok {
		t.Fatal("expected named_item to be handled")
	}
	if got.(*Item).Attributes.Name != "value" {
		t.Fatalf("got %#v", got)
	}
}

func TestBuilderNamedItemWithoutName(t *testing.T) {
	b := &Builder{}
	item := NewLiteral("x")
	node := map[string]interface{}{"name": nil, "item": item}
	got, ok := b.Handle("named_item", node)
	if !ok {
		t.Fatal("expected named_item to be handled")
	}
	if got.(*Item).Attributes.Name != "" {
		t.Fatalf("got %#v, expected no name", got)
	}
}

func TestBuilderAlternativesAccumulates(t *testing.T) {
	b := &Builder{}
	first := Alternative{Items: []*Item{NewLiteral("a")}}
	second := Alternative{Items: []*Item{NewLiteral("b")}}

	step1, ok := b.Handle("alternatives", map[string]interface{}{"alt": first})
	if !ok {
		t.Fatal("expected alternatives to be handled")
	}
	if len(step1.([]Alternative)) != 1 {
		t.Fatalf("got %#v", step1)
	}

	step2, ok := b.Handle("alternatives", map[string]interface{}{"alts": step1, "alt": second})
	if !ok {
		t.Fatal("expected alternatives to be handled")
	}
	alts := step2.([]Alternative)
	if len(alts) != 2 || alts[0].Items[0].Target != "a" || alts[1].Items[0].Target != "b" {
		t.Fatalf("got %#v", alts)
	}
}

func TestBuilderGrammarAssemblesRulesAndSettings(t *testing.T) {
	b := &Builder{}
	rule := &Rule{Name: "r", Alternatives: []Alternative{{Items: []*Item{NewLiteral("a")}}}}

	got, ok := b.Handle("grammar", map[string]interface{}{
		"verbatim": []interface{}{"package x"},
		"settings": []interface{}{"memoize_all"},
		"rules":    []interface{}{rule},
	})
	if !ok {
		t.Fatal("expected grammar to be handled")
	}
	g := got.(*Grammar)
	if len(g.Prelude) != 1 || g.Prelude[0] != "package x" {
		t.Fatalf("prelude = %#v", g.Prelude)
	}
	if !g.Setting("memoize_all") {
		t.Fatal("expected memoize_all setting to be set")
	}
	if g.RuleByName("r") == nil {
		t.Fatal("expected rule r to be present")
	}
}

func TestBuilderGrammarDeepEquality(t *testing.T) {
	b := &Builder{}
	rule := &Rule{
		Name: "expr",
		Alternatives: []Alternative{
			{Items: []*Item{NewRuleRef("expr"), NewLiteral("+"), NewRuleRef("term")}},
			{Items: []*Item{NewRuleRef("term")}},
		},
	}

	got, ok := b.Handle("grammar", map[string]interface{}{
		"verbatim": []interface{}{"package arith"},
		"settings": []interface{}{},
		"rules":    []interface{}{rule},
	})
	if !ok {
		t.Fatal("expected grammar to be handled")
	}

	want := &Grammar{
		Prelude:  []string{"package arith"},
		Settings: map[string]bool{},
		Rules:    []*Rule{rule},
	}

	// cmp.Diff gives a field-by-field report of exactly which part of the
	// assembled tree diverges, which a bool reflect.DeepEqual comparison
	// would not when this grammar grows past a handful of rules.
	if diff := cmp.Diff(want, got.(*Grammar)); diff != "" {
		t.Fatalf("assembled grammar mismatch (-want +got):\n%s", diff)
	}
}

func TestDedent(t *testing.T) {
	in := "  package foo\n\n  func Bar() {}\n"
	want := "package foo\n\nfunc Bar() {}\n"
	if got := dedent(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
