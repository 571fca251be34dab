package rt

import (
	"fmt"

	"github.com/doom/pegomancy/source"
)

// ParseError is a recoverable parse failure. Ordered choice catches it and
// tries the next alternative (spec.md §7).
type ParseError struct {
	Message  string
	Location source.Location
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s (at %s)", e.Message, e.Location)
}

// CutError is a fatal parse failure: once an alternative has executed a cut
// (`~`), any later ParseError in that alternative is promoted to a CutError,
// which bypasses ordered-choice recovery all the way out of the enclosing
// rule (spec.md §4.2, §7).
type CutError struct {
	Message  string
	Location source.Location
}

func (e *CutError) Error() string {
	return fmt.Sprintf("parse error: %s (at %s)", e.Message, e.Location)
}

// Cut promotes a ParseError to the CutError a preceding `~` commits it to.
// Generated alternative code calls this when its own cut flag was set
// before the ParseError occurred (spec.md §4.2, §7). Errors that are
// already a CutError, or of any other kind, are returned unchanged.
func Cut(err error) error {
	if pe, ok := err.(*ParseError); ok {
		return &CutError{Message: pe.Message, Location: pe.Location}
	}
	return err
}
