package grammar

// Grammar is a fully parsed grammar specification: the verbatim prelude
// blocks, the rules in declaration order (synthesized rules first, matching
// original_source/pegomancy/grammar.py's
// `self.synthesized_rules + node["rules"]`), and any `@set` settings
// collected along the way (spec.md §3, "Grammar"; SPEC_FULL.md "Supplemented
// features").
type Grammar struct {
	Prelude  []string
	Rules    []*Rule
	Settings map[string]bool
}

// RuleByName returns the rule named name, or nil if there is none.
func (g *Grammar) RuleByName(name string) *Rule {
	for _, r := range g.Rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Setting reports whether the named `@set` flag was present in the source
// grammar. Unrecognized names simply read as false; this module defines no
// settings of its own (SPEC_FULL.md "Supplemented features" — the hook
// exists for embedders, not for missing functionality here).
func (g *Grammar) Setting(name string) bool {
	return g.Settings[name]
}
