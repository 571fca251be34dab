// Package source provides the cursor-over-text primitives shared by the
// grammar front-end and every generated parser: a Reader that matches
// literals and regular expressions at a byte offset, and an Index
// that turns offsets into 1-based line/column locations.
package source

import "fmt"

// Location identifies a single point in the source text.
type Location struct {
	Offset int
	Line   int
	Column int
}

// String formats a location the way generated parsers report it in error
// messages: "line:column".
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Range identifies a span of source text between two locations.
type Range struct {
	Start Location
	End   Location
}
