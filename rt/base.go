// Package rt is the runtime every generated parser, and the bootstrapped
// grammar front-end, links against: cursor/memoization management, the
// left-recursion driver, ordered-choice combinators and node wrapping.
// It is the Go counterpart of original_source/pegomancy/parse.py, reshaped
// around Go's explicit (value, error) returns instead of exceptions.
package rt

import (
	"fmt"

	"github.com/doom/pegomancy/source"
)

// RuleHandler post-processes the node built for a rule by WrapNode. A nil
// RuleHandler, or one that returns ok=false, leaves the node untouched
// (spec.md §6, "Rule handler contract").
type RuleHandler interface {
	Handle(ruleName string, node interface{}) (replacement interface{}, ok bool)
}

type cacheEntry struct {
	value interface{}
	err   error
	end   int
}

// BaseParser is the shared parsing state every generated parser embeds: a
// Reader over the input, a source Index for error locations, the rule
// handler (if any), and the packrat memoization cache.
type BaseParser struct {
	Reader  *source.Reader
	Index   *source.Index
	Handler RuleHandler

	cache map[int]map[string]cacheEntry
}

// NewBaseParser constructs a BaseParser over text, configured per cfg, with
// handler consulted by every WrapNode call (handler may be nil).
func NewBaseParser(text string, cfg source.Config, handler RuleHandler) *BaseParser {
	return &BaseParser{
		Reader:  source.NewReader(text, cfg),
		Index:   source.NewIndex(text),
		Handler: handler,
		cache:   make(map[int]map[string]cacheEntry),
	}
}

// Mark returns the current cursor position.
func (p *BaseParser) Mark() int { return p.Reader.Mark() }

// Rewind resets the cursor to a position returned by Mark.
func (p *BaseParser) Rewind(pos int) { p.Reader.Rewind(pos) }

// EOF reports whether the cursor is at the end of the input.
func (p *BaseParser) EOF() bool { return p.Reader.EOF() }

func (p *BaseParser) errAt(pos int, message string) *ParseError {
	return &ParseError{Message: message, Location: p.Index.LocationFromOffset(pos)}
}

func (p *BaseParser) failure(message string) *ParseError {
	return p.errAt(p.Mark(), message)
}

// MakeError builds the ParseError a generated rule raises once every
// alternative has been exhausted (spec.md §4.5, §7).
func (p *BaseParser) MakeError(message string, pos int) *ParseError {
	return p.errAt(pos, message)
}

// ExpectString is the Literal item's generated condition: the reader first
// skips non-significant text, then matches literal with a keyword boundary
// when literal is alphanumeric.
func (p *BaseParser) ExpectString(literal string) (interface{}, error) {
	if v, ok := p.Reader.ExpectString(literal, true); ok {
		return v, nil
	}
	return nil, p.failure(fmt.Sprintf("expected %q", literal))
}

// ExpectRegex is the Regex item's generated condition.
func (p *BaseParser) ExpectRegex(pattern string) (interface{}, error) {
	if v, ok := p.Reader.ExpectRegex(pattern); ok {
		return v, nil
	}
	return nil, p.failure(fmt.Sprintf("expected to match /%s/", pattern))
}

// ExpectEOF is the EOF item's generated condition.
func (p *BaseParser) ExpectEOF() (interface{}, error) {
	if p.EOF() {
		return nil, nil
	}
	return nil, p.failure("expected EOF")
}
