package client

import (
	"errors"
	"fmt"
)

// APIError is the failure shape every request can surface: a human-readable
// message plus the structured fields the backend attaches to rejections.
type APIError struct {
	Status  int
	Code    string
	Field   string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Status == status
	}
	return false
}

// IsTimeout reports whether err is the 408 raised when a request exceeds the
// configured timeout.
func IsTimeout(err error) bool {
	return IsStatus(err, 408)
}

func httpStatusMessage(status int) string {
	return fmt.Sprintf("HTTP %d", status)
}
