package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured failure from the repository API. Code is a stable
// machine-readable identifier ("http_404", "request_failed", ...); Details
// carries whatever the server attached to the response.
type Error struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	StatusCode int            `json:"statusCode,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// httpError builds an Error from an HTTP error response.
func httpError(statusCode int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("HTTP %d %s", statusCode, http.StatusText(statusCode))
	}
	return &Error{
		Code:       fmt.Sprintf("http_%d", statusCode),
		Message:    message,
		StatusCode: statusCode,
	}
}

// requestError builds an Error for a pre-response failure (transport,
// marshaling, request construction).
func requestError(code string, err error) *Error {
	return &Error{Code: code, Message: err.Error()}
}

// IsNotFound reports whether err is a repository 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
