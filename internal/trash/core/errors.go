package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors that can be returned by Storage implementations
var (
	ErrNoTrashSegment = errors.New(`path has no "trash/" segment`)
	ErrInvalidConfig  = errors.New("invalid storage configuration")
)

// RequestError is returned when the server answers with a non-2xx status
type RequestError struct {
	Op     string // Operation that failed ("list" or "restore")
	Path   string // Path the request was sent to
	Status int    // HTTP status code
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Op, e.Path, e.Status, http.StatusText(e.Status))
}

// Temporary reports whether retrying the same request may succeed.
// Server errors, timeouts, locks and throttling are temporary.
// Redirects and other client errors are not.
func (e *RequestError) Temporary() bool {
	switch e.Status {
	case http.StatusRequestTimeout, http.StatusLocked, http.StatusTooManyRequests:
		return true
	}
	return e.Status >= 500
}

// ParseError is returned when a listing response is not the expected XML
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "parse " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsPermanent reports whether err cannot be fixed by retrying
func IsPermanent(err error) bool {
	if errors.Is(err, ErrNoTrashSegment) || errors.Is(err, ErrInvalidConfig) {
		return true
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return !reqErr.Temporary()
	}
	return false
}

// IsRequestError returns true if err is or wraps a RequestError
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// IsParseError returns true if err is or wraps a ParseError
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
