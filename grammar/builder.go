package grammar

import (
	"fmt"
	"strings"
)

// Builder is the rt.RuleHandler the front package's grammar-text parser
// installs: it is invoked once per rule match and turns the raw node
// rt.WrapNode built (maps, slices, and values from nested rules already
// turned into grammar.Item/Alternative/Rule by earlier Handle calls) into
// the grammar package's own types. It is the Go counterpart of
// original_source/pegomancy/grammar.py's GrammarParserRuleHandler.
//
// Rules with no case below (rule_name, the bootstrap's "__" and name-prefix
// helpers) need no transformation: the node rt.WrapNode already produced is
// exactly the value the grammar wants, so Handle reports ok=false and the
// untouched node is used as-is. The atom case likewise returns a regex or
// literal item unchanged, reporting ok=true.
type Builder struct {
	SynthesizedRules []*Rule
}

// synthesizeRule lifts a parenthesized alternative group into its own rule,
// named the way original_source/pegomancy/grammar.py's
// GrammarParserRuleHandler._synthesize_rule names it, so the name shows up
// in generated-parser error messages (SPEC_FULL.md, "Supplemented
// features").
func (b *Builder) synthesizeRule(alts []Alternative) string {
	name := fmt.Sprintf("synthesized_rule_%d", len(b.SynthesizedRules))
	b.SynthesizedRules = append(b.SynthesizedRules, &Rule{Name: name, Alternatives: alts})
	return name
}

func (b *Builder) Handle(ruleName string, node interface{}) (interface{}, bool) {
	switch ruleName {
	case "literal":
		parts := node.([]interface{})
		return NewLiteral(parts[1].(string)), true

	case "regex":
		parts := node.([]interface{})
		inner := parts[1].(*Item)
		return NewRegex(inner.Target), true

	case "cut":
		return NewCut(), true

	case "eof_":
		return NewEOF(), true

	case "atom":
		if m, ok := node.(map[string]interface{}); ok {
			if alts, ok := m["parenthesized_alts"]; ok {
				name := b.synthesizeRule(alts.([]Alternative))
				return NewRuleRef(name), true
			}
			if name, ok := m["rule_name"]; ok {
				return NewRuleRef(name.(string)), true
			}
		}
		return node, true

	case "maybe":
		m := node.(map[string]interface{})
		return NewMaybe(m["atom"].(*Item)), true

	case "one_or_more":
		m := node.(map[string]interface{})
		return NewOneOrMore(m["atom"].(*Item)), true

	case "zero_or_more":
		m := node.(map[string]interface{})
		return NewZeroOrMore(m["atom"].(*Item)), true

	case "maybe_sep_by":
		m := node.(map[string]interface{})
		return NewMaybeSepBy(m["element"].(*Item), m["separator"].(*Item)), true

	case "sep_by":
		m := node.(map[string]interface{})
		return NewSepBy(m["element"].(*Item), m["separator"].(*Item)), true

	case "lookahead":
		m := node.(map[string]interface{})
		return NewLookahead(m["item"].(*Item)), true

	case "negative_lookahead":
		m := node.(map[string]interface{})
		return NewNegativeLookahead(m["item"].(*Item)), true

	case "named_item":
		m := node.(map[string]interface{})
		item := m["item"].(*Item)
		if nameField, ok := m["name"]; ok && nameField != nil {
			nameNode := nameField.(map[string]interface{})
			item.Attributes.Name = nameNode["name"].(string)
		}
		return item, true

	case "alternative":
		raw := node.([]interface{})
		items := make([]*Item, len(raw))
		for i, v := range raw {
			items[i] = v.(*Item)
		}
		return Alternative{Items: items}, true

	case "alternatives":
		m := node.(map[string]interface{})
		var alts []Alternative
		if prior, ok := m["alts"]; ok && prior != nil {
			alts = prior.([]Alternative)
		}
		return append(alts, m["alt"].(Alternative)), true

	case "rule":
		m := node.(map[string]interface{})
		return &Rule{
			Name:         m["name"].(string),
			Alternatives: m["alts"].([]Alternative),
		}, true

	case "verbatim_block":
		m := node.(map[string]interface{})
		return dedent(m["block"].(string)), true

	case "setting":
		m := node.(map[string]interface{})
		return m["setting"].(string), true

	case "grammar":
		m := node.(map[string]interface{})
		return &Grammar{
			Prelude:  toStringSlice(m["verbatim"]),
			Settings: toSettingsMap(toStringSlice(m["settings"])),
			Rules:    append(append([]*Rule{}, b.SynthesizedRules...), toRuleSlice(m["rules"])...),
		}, true

	default:
		return nil, false
	}
}

func toStringSlice(raw interface{}) []string {
	items, _ := raw.([]interface{})
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.(string)
	}
	return out
}

func toRuleSlice(raw interface{}) []*Rule {
	items, _ := raw.([]interface{})
	out := make([]*Rule, len(items))
	for i, v := range items {
		out[i] = v.(*Rule)
	}
	return out
}

func toSettingsMap(names []string) map[string]bool {
	settings := make(map[string]bool, len(names))
	for _, n := range names {
		settings[n] = true
	}
	return settings
}

// dedent strips the longest common leading whitespace run shared by every
// non-blank line of s, matching Python's textwrap.dedent as used on
// @verbatim blocks (original_source/pegomancy/grammar.py's
// GrammarParserRuleHandler.verbatim_block).
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	prefix := ""
	havePrefix := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !havePrefix {
			prefix = indent
			havePrefix = true
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}

	if prefix == "" {
		return s
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
