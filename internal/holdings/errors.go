package holdings

import (
	"errors"
	"fmt"
)

// ErrTableNotFound is returned when the table selector matches nothing on a page
var ErrTableNotFound = errors.New("table not found")

// MalformedMarkupError reports an element missing an attribute the scraper depends on
type MalformedMarkupError struct {
	URL      string
	Selector string
	Index    int
	Attr     string
}

// Error implements the error interface
func (e *MalformedMarkupError) Error() string {
	return fmt.Sprintf("malformed markup on %s: element %d matching %q has no %s attribute",
		e.URL, e.Index, e.Selector, e.Attr)
}

// SkipError marks a per-link failure that is expected and isolated:
// the page could not be retrieved or had no holdings table.
type SkipError struct {
	Link string
	Err  error
}

// Error implements the error interface
func (e *SkipError) Error() string {
	return fmt.Sprintf("skipped %s: %v", e.Link, e.Err)
}

// Unwrap returns the underlying error
func (e *SkipError) Unwrap() error {
	return e.Err
}

// IsSkip reports whether err is a SkipError
func IsSkip(err error) bool {
	var se *SkipError
	return errors.As(err, &se)
}
