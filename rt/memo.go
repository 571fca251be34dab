package rt

// lookupCache returns the memoized entry for (pos, ruleID), if any.
func (p *BaseParser) lookupCache(pos int, ruleID string) (cacheEntry, bool) {
	byRule, ok := p.cache[pos]
	if !ok {
		return cacheEntry{}, false
	}
	entry, ok := byRule[ruleID]
	return entry, ok
}

func (p *BaseParser) storeCache(pos int, ruleID string, entry cacheEntry) {
	byRule, ok := p.cache[pos]
	if !ok {
		byRule = make(map[string]cacheEntry)
		p.cache[pos] = byRule
	}
	byRule[ruleID] = entry
}

// ParsingRule wraps a plain (non-left-recursive) rule body with packrat
// memoization (spec.md §4.3, "Plain rule invocation"). ruleID identifies
// the rule — rule names are unique within a grammar (spec.md §3), so the
// rule name itself serves as the memoization key's rule-identity component.
func (p *BaseParser) ParsingRule(ruleID string, body func() (interface{}, error)) (interface{}, error) {
	p.Reader.ConsumeNonSignificant()
	pos := p.Mark()

	if entry, ok := p.lookupCache(pos, ruleID); ok {
		p.Rewind(entry.end)
		return entry.value, entry.err
	}

	value, err := body()
	end := p.Mark()
	p.storeCache(pos, ruleID, cacheEntry{value: value, err: err, end: end})
	return value, err
}

// LeftRecursiveParsingRule wraps a directly left-recursive rule body with
// the Warth/Medeiros seed-and-grow algorithm (spec.md §4.3, "Left-recursive
// rule invocation"). It supports direct left recursion only; an indirectly
// left-recursive grammar diverges or fails to match, undetected.
func (p *BaseParser) LeftRecursiveParsingRule(ruleID string, body func() (interface{}, error)) (interface{}, error) {
	p.Reader.ConsumeNonSignificant()
	pos := p.Mark()

	if entry, ok := p.lookupCache(pos, ruleID); ok {
		p.Rewind(entry.end)
		return entry.value, entry.err
	}

	seed := p.errAt(pos, "left-recursive base case")
	p.storeCache(pos, ruleID, cacheEntry{value: nil, err: seed, end: pos})

	lastEnd := pos
	var lastValue interface{}
	var lastErr error = seed

	for {
		p.Rewind(pos)
		value, err := body()
		end := p.Mark()
		if end <= lastEnd {
			break
		}
		p.storeCache(pos, ruleID, cacheEntry{value: value, err: err, end: end})
		lastValue, lastErr, lastEnd = value, err, end
	}

	p.Rewind(lastEnd)
	return lastValue, lastErr
}
