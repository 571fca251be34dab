package source

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultWhitespacePattern is the whitespace regex a Reader uses when none
// is supplied, matching original_source/pegomancy/reader.py's default.
const DefaultWhitespacePattern = `[ \t]+`

// Config configures a Reader's handling of non-significant text.
// WhitespacePattern and CommentsPattern are regular expressions anchored at
// the cursor; an empty string disables that kind of non-significant text.
type Config struct {
	WhitespacePattern string
	CommentsPattern   string
}

// DefaultConfig is the Reader configuration generated parsers use unless
// told otherwise: whitespace is skipped, comments are not (spec.md §4.1 —
// comments are only enabled by default in the bootstrapped grammar parser).
var DefaultConfig = Config{WhitespacePattern: DefaultWhitespacePattern}

// Reader maintains a cursor over an immutable source text and matches
// literals and regular expressions at that cursor. Reader operations never
// panic on a failed match; they return ok=false and do not advance past
// the failed match. ExpectString and ExpectRegex skip non-significant text
// before matching, and the cursor stays past that skipped text on failure.
type Reader struct {
	Text string

	whitespace   *regexp.Regexp
	comments     *regexp.Regexp
	cursor       int
	patternCache map[string]*regexp.Regexp
}

// NewReader builds a Reader over text using cfg. An empty pattern in cfg
// disables the corresponding kind of non-significant text.
func NewReader(text string, cfg Config) *Reader {
	r := &Reader{Text: text, patternCache: make(map[string]*regexp.Regexp)}
	if cfg.WhitespacePattern != "" {
		r.whitespace = anchoredRegexp(cfg.WhitespacePattern)
	}
	if cfg.CommentsPattern != "" {
		r.comments = anchoredRegexp(cfg.CommentsPattern)
	}
	return r
}

func anchoredRegexp(pattern string) *regexp.Regexp {
	// (?s) = DOTALL, (?m) = MULTILINE, matching reader.py's
	// re.DOTALL | re.MULTILINE flags on every expect_regex call.
	return regexp.MustCompile(`(?sm)\A(?:` + pattern + `)`)
}

// Mark returns the current cursor position.
func (r *Reader) Mark() int { return r.cursor }

// Rewind resets the cursor to a position previously returned by Mark.
func (r *Reader) Rewind(pos int) { r.cursor = pos }

// EOF reports whether the cursor is at the end of the text.
func (r *Reader) EOF() bool { return r.cursor >= len(r.Text) }

// ExpectString succeeds and advances past literal iff the text at the
// cursor starts with literal. When matchFullToken is true and literal is
// entirely alphanumeric, the match additionally requires that it not be
// followed by another alphanumeric rune (a keyword boundary) — exactly
// reader.py's expect_string behavior, including for non-alphanumeric
// literals, which never require a boundary (spec.md §9, Open Questions).
func (r *Reader) ExpectString(literal string, matchFullToken bool) (string, bool) {
	r.ConsumeNonSignificant()
	pos := r.Mark()
	if !strings.HasPrefix(r.Text[r.cursor:], literal) {
		return "", false
	}
	r.cursor += len(literal)

	if !matchFullToken || r.EOF() || !isAlphanumeric(literal) {
		return literal, true
	}
	next, _ := utf8.DecodeRuneInString(r.Text[r.cursor:])
	if !unicode.IsLetter(next) && !unicode.IsDigit(next) {
		return literal, true
	}
	r.Rewind(pos)
	return "", false
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

// ExpectRegex anchors pattern at the cursor and, on a match, advances past
// it and returns the matched text.
func (r *Reader) ExpectRegex(pattern string) (string, bool) {
	r.ConsumeNonSignificant()
	re, ok := r.patternCache[pattern]
	if !ok {
		re = anchoredRegexp(pattern)
		r.patternCache[pattern] = re
	}
	loc := re.FindStringIndex(r.Text[r.cursor:])
	if loc == nil {
		return "", false
	}
	match := r.Text[r.cursor : r.cursor+loc[1]]
	r.cursor += loc[1]
	return match, true
}

// ConsumeNonSignificant alternately consumes comment and whitespace matches
// until neither advances the cursor.
func (r *Reader) ConsumeNonSignificant() {
	for {
		advanced := false
		if r.comments != nil {
			if loc := r.comments.FindStringIndex(r.Text[r.cursor:]); loc != nil && loc[1] > 0 {
				r.cursor += loc[1]
				advanced = true
			}
		}
		if r.whitespace != nil {
			if loc := r.whitespace.FindStringIndex(r.Text[r.cursor:]); loc != nil && loc[1] > 0 {
				r.cursor += loc[1]
				advanced = true
			}
		}
		if !advanced {
			return
		}
	}
}
