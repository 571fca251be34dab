// Package grammar holds the in-memory representation a parsed grammar
// specification is built into: items, alternatives, rules and the grammar
// as a whole. It is the Go counterpart of
// original_source/pegomancy/grammar_items.py and grammar.py, reshaped from
// an abstract-base-class-plus-subclasses hierarchy into a single tagged
// variant (spec.md §9, "Item hierarchy as tagged variant") since Go has no
// class hierarchy to mirror it with.
package grammar

import (
	"fmt"
	"strconv"
)

// Kind discriminates the variant an Item holds.
type Kind int

const (
	KindLiteral Kind = iota
	KindRegex
	KindRule
	KindMaybe
	KindZeroOrMore
	KindOneOrMore
	KindSepBy
	KindMaybeSepBy
	KindLookahead
	KindNegativeLookahead
	KindCut
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindRegex:
		return "regex"
	case KindRule:
		return "rule"
	case KindMaybe:
		return "maybe"
	case KindZeroOrMore:
		return "zero_or_more"
	case KindOneOrMore:
		return "one_or_more"
	case KindSepBy:
		return "sep_by"
	case KindMaybeSepBy:
		return "maybe_sep_by"
	case KindLookahead:
		return "lookahead"
	case KindNegativeLookahead:
		return "negative_lookahead"
	case KindCut:
		return "cut"
	case KindEOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Attributes is the name/ignore pair attached to every item
// (original_source/pegomancy/grammar_items.py's ItemAttributes).
type Attributes struct {
	Name   string
	Ignore bool
}

// IsNamed reports whether the item was given an explicit name with `name=`.
func (a Attributes) IsNamed() bool { return a.Name != "" }

// Item is every grammar item's single representation: the Kind field picks
// which of the variant-specific fields below are meaningful. Nested items
// (Maybe, ZeroOrMore, OneOrMore, Lookahead, NegativeLookahead) use Inner;
// SepBy and MaybeSepBy use Element and Separator; Literal and Regex use
// Target; Rule uses RuleName. Cut and EOF use neither.
type Item struct {
	Kind       Kind
	Attributes Attributes

	Target    string // Literal, Regex
	RuleName  string // Rule
	Inner     *Item  // Maybe, ZeroOrMore, OneOrMore, Lookahead, NegativeLookahead
	Element   *Item  // SepBy, MaybeSepBy
	Separator *Item  // SepBy, MaybeSepBy
}

func NewLiteral(target string) *Item  { return &Item{Kind: KindLiteral, Target: target} }
func NewRegex(target string) *Item    { return &Item{Kind: KindRegex, Target: target} }
func NewRuleRef(name string) *Item    { return &Item{Kind: KindRule, RuleName: name} }
func NewCut() *Item                   { return &Item{Kind: KindCut, Attributes: Attributes{Ignore: true}} }
func NewEOF() *Item                   { return &Item{Kind: KindEOF, Attributes: Attributes{Ignore: true}} }
func NewMaybe(inner *Item) *Item      { return &Item{Kind: KindMaybe, Inner: inner} }
func NewZeroOrMore(inner *Item) *Item { return &Item{Kind: KindZeroOrMore, Inner: inner} }
func NewOneOrMore(inner *Item) *Item  { return &Item{Kind: KindOneOrMore, Inner: inner} }
func NewLookahead(inner *Item) *Item  { return &Item{Kind: KindLookahead, Inner: inner} }
func NewNegativeLookahead(inner *Item) *Item {
	return &Item{Kind: KindNegativeLookahead, Inner: inner}
}
func NewSepBy(element, separator *Item) *Item {
	return &Item{Kind: KindSepBy, Element: element, Separator: separator}
}
func NewMaybeSepBy(element, separator *Item) *Item {
	return &Item{Kind: KindMaybeSepBy, Element: element, Separator: separator}
}

// IsNested reports whether the item wraps exactly one other item that left
// recursion detection (Rule.IsLeftRecursive) and code generation must recurse
// through (original_source/pegomancy/grammar_items.py's NestedItemMixin).
func (it *Item) IsNested() bool {
	switch it.Kind {
	case KindMaybe, KindZeroOrMore, KindOneOrMore, KindLookahead, KindNegativeLookahead:
		return true
	default:
		return false
	}
}

// Peel returns the item's single wrapped sub-item, following Element rather
// than Inner for SepBy/MaybeSepBy so left-recursion detection can see
// through `expr , expr` style self-references in the element position too.
// It panics if the item wraps nothing, which would be a bug in the caller,
// not a malformed grammar.
func (it *Item) Peel() *Item {
	switch it.Kind {
	case KindSepBy, KindMaybeSepBy:
		return it.Element
	case KindMaybe, KindZeroOrMore, KindOneOrMore, KindLookahead, KindNegativeLookahead:
		return it.Inner
	default:
		panic(fmt.Sprintf("item kind %s does not wrap another item", it.Kind))
	}
}

// IsWrapping reports whether Peel is valid for this item — true for every
// nested kind (IsNested) plus SepBy and MaybeSepBy, which are not "nested"
// in the IsNested sense (their generated condition takes two
// sub-expressions, not one) but still wrap an Element item that
// left-recursion detection peels through.
func (it *Item) IsWrapping() bool {
	return it.IsNested() || it.Kind == KindSepBy || it.Kind == KindMaybeSepBy
}

// GenExpr returns the Go expression codegen emits to attempt this item's
// match: a call on receiver returning (interface{}, error), recursing
// through wrapped items as nested closures. This is the Go counterpart of
// original_source/pegomancy/grammar.py's AbstractItem.generate_condition,
// each subclass's version of which builds the matching Python expression
// string; here a single method switches on Kind instead of dispatching
// through a class hierarchy (package doc, "tagged variant").
func (it *Item) GenExpr(receiver string, ruleMethod func(string) string) string {
	switch it.Kind {
	case KindLiteral:
		return fmt.Sprintf("%s.ExpectString(%s)", receiver, strconv.Quote(it.Target))
	case KindRegex:
		return fmt.Sprintf("%s.ExpectRegex(%s)", receiver, strconv.Quote(it.Target))
	case KindRule:
		return fmt.Sprintf("%s.%s()", receiver, ruleMethod(it.RuleName))
	case KindEOF:
		return fmt.Sprintf("%s.ExpectEOF()", receiver)
	case KindMaybe:
		return fmt.Sprintf("%s.Maybe(func() (interface{}, error) { return %s })",
			receiver, it.Inner.GenExpr(receiver, ruleMethod))
	case KindZeroOrMore:
		return fmt.Sprintf("%s.Repeat(0, func() (interface{}, error) { return %s })",
			receiver, it.Inner.GenExpr(receiver, ruleMethod))
	case KindOneOrMore:
		return fmt.Sprintf("%s.Repeat(1, func() (interface{}, error) { return %s })",
			receiver, it.Inner.GenExpr(receiver, ruleMethod))
	case KindLookahead:
		return fmt.Sprintf("%s.Lookahead(func() (interface{}, error) { return %s })",
			receiver, it.Inner.GenExpr(receiver, ruleMethod))
	case KindNegativeLookahead:
		return fmt.Sprintf("%s.NotLookahead(func() (interface{}, error) { return %s })",
			receiver, it.Inner.GenExpr(receiver, ruleMethod))
	case KindSepBy:
		return fmt.Sprintf("%s.SepBy(func() (interface{}, error) { return %s }, func() (interface{}, error) { return %s })",
			receiver, it.Element.GenExpr(receiver, ruleMethod), it.Separator.GenExpr(receiver, ruleMethod))
	case KindMaybeSepBy:
		return fmt.Sprintf("%s.MaybeSepBy(func() (interface{}, error) { return %s }, func() (interface{}, error) { return %s })",
			receiver, it.Element.GenExpr(receiver, ruleMethod), it.Separator.GenExpr(receiver, ruleMethod))
	case KindCut:
		return "cut = true"
	default:
		panic(fmt.Sprintf("unhandled item kind %s", it.Kind))
	}
}
