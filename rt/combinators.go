package rt

// Expr is a nullary sub-expression: a primitive match, a rule invocation,
// or another combinator, already bound to its arguments. Every combinator
// below corresponds to one grammar item quantifier/assertion from spec.md
// §3 and is emitted by codegen wrapping a lambda over the item's own
// generated condition (spec.md §4.2, §4.5).
type Expr func() (interface{}, error)

func isParseError(err error) (*ParseError, bool) {
	pe, ok := err.(*ParseError)
	return pe, ok
}

// Maybe matches f zero or one time. A failed match is not an error: it
// rewinds and returns a nil value (spec.md §9, Open Questions — Maybe
// returns the absent value as nil rather than a sentinel).
func (p *BaseParser) Maybe(f Expr) (interface{}, error) {
	pos := p.Mark()
	v, err := f()
	if err == nil {
		return v, nil
	}
	if _, ok := isParseError(err); ok {
		p.Rewind(pos)
		return nil, nil
	}
	return nil, err
}

// Repeat matches f as many times as possible, requiring at least min
// matches.
func (p *BaseParser) Repeat(min int, f Expr) (interface{}, error) {
	start := p.Mark()
	values := []interface{}{}

	for {
		pos := p.Mark()
		v, err := f()
		if err != nil {
			if _, ok := isParseError(err); ok {
				p.Rewind(pos)
				break
			}
			return nil, err
		}
		values = append(values, v)
	}

	if len(values) >= min {
		return values, nil
	}
	p.Rewind(start)
	return nil, p.failure("expected at least one repetition")
}

// Lookahead matches f without consuming input: the cursor is always
// restored, and f's failure (ParseError or CutError) propagates unchanged.
func (p *BaseParser) Lookahead(f Expr) (interface{}, error) {
	pos := p.Mark()
	v, err := f()
	p.Rewind(pos)
	return v, err
}

// NotLookahead succeeds, consuming nothing, iff f would fail.
func (p *BaseParser) NotLookahead(f Expr) (interface{}, error) {
	_, err := p.Lookahead(f)
	if err == nil {
		return nil, p.failure("unexpected match")
	}
	if _, ok := isParseError(err); ok {
		return nil, nil
	}
	return nil, err
}

// SepBy matches one-or-more elem separated by sep, with no trailing
// separator. The result interleaves element and separator values in match
// order (spec.md §8, "Sep-by": "a,b,c" → ["a", ",", "b", ",", "c"]).
func (p *BaseParser) SepBy(elem, sep Expr) (interface{}, error) {
	start := p.Mark()
	first, err := elem()
	if err != nil {
		return nil, err
	}
	values := []interface{}{first}

	for {
		pos := p.Mark()
		sepVal, err := sep()
		if err != nil {
			if _, ok := isParseError(err); ok {
				p.Rewind(pos)
				break
			}
			return nil, err
		}
		elemVal, err := elem()
		if err != nil {
			if _, ok := isParseError(err); ok {
				p.Rewind(start)
				return nil, p.failure("expected element after separator")
			}
			return nil, err
		}
		values = append(values, sepVal, elemVal)
	}
	return values, nil
}

// MaybeSepBy is SepBy but succeeds with an empty sequence when elem does
// not match at all.
func (p *BaseParser) MaybeSepBy(elem, sep Expr) (interface{}, error) {
	v, err := p.SepBy(elem, sep)
	if err != nil {
		if _, ok := isParseError(err); ok {
			return []interface{}{}, nil
		}
		return nil, err
	}
	return v, nil
}
