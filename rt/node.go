package rt

import "fmt"

// Attributes carries the per-item name/ignore flags attached to every
// grammar item (spec.md §3, "Grammar item"). It is the runtime mirror of
// grammar.Attributes, threaded parallel to the matched values so
// WrapNode can see each value's original name and ignore flag.
type Attributes struct {
	Name   string // empty means unnamed
	Ignore bool
}

// WrapNode builds the value an alternative produces from the items it
// matched, following the node-shape law (spec.md §4.2 step 3, §8 property
// 7):
//
//  1. items with Ignore=true contribute nothing;
//  2. if any retained item is named, the result is a map from name to
//     value (names must be unique within the alternative — a violation is
//     a grammar-construction bug, not a recoverable parse failure, so it
//     panics rather than returning an error);
//  3. else if exactly one item is retained, the result collapses to that
//     value;
//  4. else the result is the ordered slice of retained values.
//
// Finally, if handler is non-nil and recognizes ruleName, its replacement
// is substituted for the computed result (spec.md §6, "Rule handler
// contract").
func WrapNode(ruleName string, values []interface{}, attrs []Attributes, handler RuleHandler) interface{} {
	if len(values) != len(attrs) {
		panic(fmt.Sprintf("rule %q: %d values but %d attributes", ruleName, len(values), len(attrs)))
	}

	var kept []interface{}
	named := make(map[string]interface{})
	var names []string

	for i, attr := range attrs {
		if attr.Ignore {
			continue
		}
		v := values[i]
		kept = append(kept, v)
		if attr.Name != "" {
			if _, exists := named[attr.Name]; exists {
				panic(fmt.Sprintf("rule %q: duplicate item name %q", ruleName, attr.Name))
			}
			named[attr.Name] = v
			names = append(names, attr.Name)
		}
	}

	var result interface{}
	switch {
	case len(names) > 0:
		result = named
	case len(kept) == 1:
		result = kept[0]
	default:
		if kept == nil {
			kept = []interface{}{}
		}
		result = kept
	}

	if handler != nil {
		if replaced, ok := handler.Handle(ruleName, result); ok {
			return replaced
		}
	}
	return result
}
