package apitopy

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidExpression is returned when a path expression cannot be parsed.
	ErrInvalidExpression = errors.New("apitopy: invalid path expression")

	// ErrInvalidJSON is returned when a non-empty response body is not JSON.
	ErrInvalidJSON = errors.New("apitopy: response body is not valid JSON")

	// ErrUnknownVerb is returned when a verb outside Verbs is requested.
	ErrUnknownVerb = errors.New("apitopy: unknown HTTP verb")
)

// StatusError is returned for any response with a status code of 400 or above.
type StatusError struct {
	StatusCode int
	Verb       string
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP Status: %d", e.StatusCode)
}

// NotFoundError is the StatusError returned for 404 responses.
// errors.As with a *StatusError target also matches it.
type NotFoundError struct {
	*StatusError
}

// Unwrap exposes the embedded StatusError.
func (e *NotFoundError) Unwrap() error {
	return e.StatusError
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// statusErrorFor maps a failing status code to its error kind, or returns
// nil below 400.
func statusErrorFor(verb, url string, code int, body []byte) error {
	if code < 400 {
		return nil
	}
	base := &StatusError{StatusCode: code, Verb: verb, URL: url, Body: body}
	if code == http.StatusNotFound {
		return &NotFoundError{StatusError: base}
	}
	return base
}
