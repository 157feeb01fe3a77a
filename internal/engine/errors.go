// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
	"net/http"
)

// Common engine errors
var (
	ErrParseError = errors.New("failed to parse response")
	ErrInvalidURL = errors.New("invalid URL")
)

// StatusCoder is implemented by errors that carry an HTTP status code
type StatusCoder interface {
	GetStatusCode() int
}

// FetchError reports a response whose status was not 200 OK
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
}

// NewFetchError creates a FetchError, filling Status from the code when empty
func NewFetchError(url string, statusCode int, status string) *FetchError {
	if status == "" {
		status = http.StatusText(statusCode)
	}
	return &FetchError{URL: url, StatusCode: statusCode, Status: status}
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("failed to retrieve %s: HTTP %d (%s)", e.URL, e.StatusCode, e.Status)
	}
	return fmt.Sprintf("failed to retrieve %s: HTTP %d", e.URL, e.StatusCode)
}

// GetStatusCode returns the HTTP status code
func (e *FetchError) GetStatusCode() int {
	return e.StatusCode
}

// AsFetchError unwraps err looking for a *FetchError
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
