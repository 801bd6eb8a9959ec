package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("virtualta: %d %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("virtualta: %d %s", e.StatusCode, e.Message)
}

// IsValidation reports whether err is a 400 from the server.
func IsValidation(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

// IsRateLimited reports whether err is a 429 from the server.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
