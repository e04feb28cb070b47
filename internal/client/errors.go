package client

import (
	"fmt"
	"net/http"
)

// Common Dataverse API error kinds
var (
	ErrConnectionFailed = fmt.Errorf("connection failed")
	ErrBadRequest       = fmt.Errorf("bad request")
	ErrUnauthorized     = fmt.Errorf("unauthorized")
	ErrNotFound         = fmt.Errorf("not found")
	ErrRateLimited      = fmt.Errorf("rate limited")
	ErrServerError      = fmt.Errorf("server error")
	ErrDecodeFailed     = fmt.Errorf("decode failed")
)

// APIError provides detailed error information for a failed API call:
// what went wrong, which URL was requested, the HTTP status (0 when the
// failure happened before any response arrived) and the raw response body.
type APIError struct {
	Kind       error
	Message    string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s; URL: %s; status code: %d", msg, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s; URL: %s", msg, e.URL)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// NewAPIError creates a new API error for a failure without an HTTP status.
func NewAPIError(kind error, message, url string) *APIError {
	if message == "" {
		message = kind.Error()
	}
	return &APIError{
		Kind:    kind,
		Message: message,
		URL:     url,
	}
}

// classifyStatus maps an HTTP status code to an error kind.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= http.StatusInternalServerError:
		return ErrServerError
	default:
		return ErrBadRequest
	}
}
