package client

import (
	"fmt"
	"net/http"
)

// ErrorMode controls what a failed API call returns.
type ErrorMode string

const (
	// ErrorModeRaise surfaces every failure as an *APIError.
	ErrorModeRaise ErrorMode = "raise"

	// ErrorModeSuppress logs the failure and returns a nil result. The
	// caller cannot tell which error occurred, so prefer ErrorModeRaise
	// unless a missing result is genuinely all that matters.
	ErrorModeSuppress ErrorMode = "none"
)

// ValidateErrorMode rejects unknown error modes at construction time.
func ValidateErrorMode(mode ErrorMode) error {
	switch mode {
	case ErrorModeRaise, ErrorModeSuppress:
		return nil
	default:
		return fmt.Errorf("invalid error mode %q (must be %q or %q)",
			mode, ErrorModeRaise, ErrorModeSuppress)
	}
}

// ResponseMode controls the shape of a successful response.
type ResponseMode string

const (
	// ResponseModeJSON decodes the body into a map.
	ResponseModeJSON ResponseMode = "json"

	// ResponseModeText returns the body as a string.
	ResponseModeText ResponseMode = "text"

	// ResponseModeResponse returns the raw *http.Response with the body
	// unread; the caller owns closing it.
	ResponseModeResponse ResponseMode = "response"
)

// ValidateResponseMode rejects unknown response modes at construction time.
func ValidateResponseMode(mode ResponseMode) error {
	switch mode {
	case ResponseModeJSON, ResponseModeText, ResponseModeResponse:
		return nil
	default:
		return fmt.Errorf("invalid response mode %q (must be %q, %q or %q)",
			mode, ResponseModeJSON, ResponseModeText, ResponseModeResponse)
	}
}

// Result is a successful API response. Exactly one field is populated,
// matching the client's response mode.
type Result struct {
	JSON     map[string]interface{}
	Text     string
	Response *http.Response
}
