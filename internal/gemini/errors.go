package gemini

import (
	"errors"
	"fmt"
)

// ErrSafetyFiltered indicates the first candidate was blocked by the
// upstream safety filter.
var ErrSafetyFiltered = errors.New("response filtered for safety")

// APIError represents a non-success response from the Gemini API.
type APIError struct {
	StatusCode int
	Message    string
	Status     string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gemini API error (status %d)", e.StatusCode)
}

// PublicMessage returns the message to expose to clients: the upstream's own
// message when present, otherwise a generic one naming the status code.
func (e *APIError) PublicMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Gemini API error (status %d)", e.StatusCode)
}
