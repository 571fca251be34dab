package rt

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/doom/pegomancy/source"
)

func newTestParser(text string) *BaseParser {
	return NewBaseParser(text, source.DefaultConfig, nil)
}

// arithParser implements spec.md §8's "Arithmetic left-recursion" scenario
// by hand: expr := expr "+" term | term ; term := /[0-9]+/.
type arithParser struct {
	*BaseParser
}

func (a *arithParser) term() (interface{}, error) {
	return a.ParsingRule("term", func() (interface{}, error) {
		return a.ExpectRegex(`[0-9]+`)
	})
}

func (a *arithParser) expr() (interface{}, error) {
	return a.LeftRecursiveParsingRule("expr", func() (interface{}, error) {
		pos := a.Mark()

		// alternative 1: expr "+" term
		v0, err := a.expr()
		if err == nil {
			v1, err := a.ExpectString("+")
			if err == nil {
				v2, err := a.term()
				if err == nil {
					return WrapNode("expr", []interface{}{v0, v1, v2},
						[]Attributes{{}, {Ignore: true}, {}}, nil), nil
				}
				a.Rewind(pos)
				return nil, err
			}
			a.Rewind(pos)
			return nil, err
		}
		if _, ok := isParseError(err); !ok {
			return nil, err
		}
		a.Rewind(pos)

		// alternative 2: term
		return a.term()
	})
}

func TestArithmeticLeftRecursion(t *testing.T) {
	p := &arithParser{newTestParser("1+2+3")}
	got, err := p.expr()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []interface{}{
		[]interface{}{"1", "2"},
		"3",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
	if p.Mark() != 5 {
		t.Fatalf("cursor = %d, want 5", p.Mark())
	}
}

func TestParsingRuleMemoizes(t *testing.T) {
	p := newTestParser("abc")
	calls := 0
	rule := func() (interface{}, error) {
		return p.ParsingRule("r", func() (interface{}, error) {
			calls++
			return p.ExpectString("abc")
		})
	}

	v1, err1 := rule()
	pos1 := p.Mark()
	p.Rewind(0)
	v2, err2 := rule()
	pos2 := p.Mark()

	if calls != 1 {
		t.Fatalf("body invoked %d times, want 1", calls)
	}
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if v1 != v2 || pos1 != pos2 {
		t.Fatalf("cached replay diverged: (%v,%d) vs (%v,%d)", v1, pos1, v2, pos2)
	}
}

func TestOrderedChoiceFirstMatchWins(t *testing.T) {
	p := newTestParser("ifx")
	kw := func() (interface{}, error) {
		return p.ParsingRule("kw", func() (interface{}, error) {
			pos := p.Mark()
			if v, err := p.ExpectString("if"); err == nil {
				return v, nil
			} else if _, ok := isParseError(err); !ok {
				return nil, err
			}
			p.Rewind(pos)
			return p.ExpectString("ifx")
		})
	}

	got, err := kw()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "if" {
		t.Fatalf("got %v, want %q", got, "if")
	}
	if p.Mark() != 2 {
		t.Fatalf("cursor = %d, want 2", p.Mark())
	}
}

func TestKeywordBoundaryFails(t *testing.T) {
	p := newTestParser("iffy")
	_, err := p.ExpectString("if")
	if err == nil {
		t.Fatal("expected a keyword-boundary failure")
	}
	if p.Mark() != 0 {
		t.Fatalf("cursor moved on failure: %d", p.Mark())
	}
}

// cutParser implements spec.md §8's "Cut commits" scenario:
// s := "(" ~ expr ")" | "x"
type cutParser struct {
	*BaseParser
}

func (c *cutParser) expr() (interface{}, error) {
	return c.ParsingRule("expr", func() (interface{}, error) {
		return c.ExpectRegex(`[a-z]+`)
	})
}

func (c *cutParser) s() (interface{}, error) {
	return c.ParsingRule("s", func() (interface{}, error) {
		pos := c.Mark()
		cut := false

		v0, err := c.ExpectString("(")
		if err == nil {
			cut = true
			v1, err := c.expr()
			if err == nil {
				v2, err := c.ExpectString(")")
				if err == nil {
					return WrapNode("s", []interface{}{v0, v1, v2}, []Attributes{{}, {}, {}}, nil), nil
				}
				c.Rewind(pos)
				if cut {
					return nil, Cut(err)
				}
				return nil, err
			}
			c.Rewind(pos)
			if cut {
				return nil, Cut(err)
			}
			return nil, err
		}
		if _, ok := isParseError(err); !ok {
			return nil, err
		}
		c.Rewind(pos)

		return c.ExpectString("x")
	})
}

func TestCutCommits(t *testing.T) {
	p := &cutParser{newTestParser("(x")}
	_, err := p.s()
	if err == nil {
		t.Fatal("expected a fatal error")
	}
	if _, ok := err.(*CutError); !ok {
		t.Fatalf("got %T, want *CutError", err)
	}
}

func TestCutNotReachedFallsThroughToNextAlternative(t *testing.T) {
	// Same grammar, different input: alt 1 fails at "(" before reaching
	// its cut, so ordered choice still falls through to alt 2 and matches "x".
	p := &cutParser{newTestParser("x")}
	got, err := p.s()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x" {
		t.Fatalf("got %v, want %q", got, "x")
	}
}

func TestOptionalAndRepeatNodeShape(t *testing.T) {
	item := func(p *BaseParser) Expr {
		return func() (interface{}, error) {
			return p.ParsingRule("item", func() (interface{}, error) {
				return p.ExpectRegex(`[a-z]+`)
			})
		}
	}
	list := func(p *BaseParser) (interface{}, error) {
		return p.ParsingRule("list", func() (interface{}, error) {
			v0, err := p.ExpectString("[")
			if err != nil {
				return nil, err
			}
			v1, err := p.Repeat(0, item(p))
			if err != nil {
				return nil, err
			}
			v2, err := p.ExpectString("]")
			if err != nil {
				return nil, err
			}
			return WrapNode("list", []interface{}{v0, v1, v2}, []Attributes{{}, {}, {}}, nil), nil
		})
	}

	p := newTestParser("[]")
	got, err := list(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []interface{}{"[", []interface{}{}, "]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}

	p2 := newTestParser("[a b c]")
	got2, err := list(p2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want2 := []interface{}{"[", []interface{}{"a", "b", "c"}, "]"}
	if !reflect.DeepEqual(got2, want2) {
		t.Fatalf("got %#v, want %#v", got2, want2)
	}
}

func TestSepBy(t *testing.T) {
	elem := func(p *BaseParser) Expr {
		return func() (interface{}, error) { return p.ExpectRegex(`[a-z]+`) }
	}
	sep := func(p *BaseParser) Expr {
		return func() (interface{}, error) { return p.ExpectString(",") }
	}

	p := newTestParser("a,b,c")
	got, err := p.SepBy(elem(p), sep(p))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []interface{}{"a", ",", "b", ",", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}

	p2 := newTestParser("a,")
	if _, err := p2.SepBy(elem(p2), sep(p2)); err == nil {
		t.Fatal("expected an error for a trailing separator")
	} else if p2.Mark() != 0 {
		t.Fatalf("cursor not restored: %d", p2.Mark())
	}
}

func TestWrapNodeDuplicateNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on duplicate item names")
		}
	}()
	WrapNode("r", []interface{}{1, 2}, []Attributes{{Name: "x"}, {Name: "x"}}, nil)
}

type upcaseHandler struct{}

func (upcaseHandler) Handle(ruleName string, node interface{}) (interface{}, bool) {
	if ruleName != "word" {
		return nil, false
	}
	return fmt.Sprintf("%v!", node), true
}

func TestRuleHandlerDispatch(t *testing.T) {
	got := WrapNode("word", []interface{}{"hi"}, []Attributes{{}}, upcaseHandler{})
	if got != "hi!" {
		t.Fatalf("got %v", got)
	}
	got2 := WrapNode("other", []interface{}{"hi"}, []Attributes{{}}, upcaseHandler{})
	if got2 != "hi" {
		t.Fatalf("got %v, want untouched", got2)
	}
}
