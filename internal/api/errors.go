package api

import (
	"fmt"
	"net/http"
)

// ValidationError reports a client-side precondition failure. When one is
// returned no request has been issued.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// AuthError is returned for HTTP 401 responses. By the time a caller sees
// one, the unauthorized callback has already fired and the session has been
// invalidated.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// APIError carries a non-2xx status and the server-provided message when
// one was present in the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// NotFound reports whether the error is a 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// NetworkError wraps transport failures and timeouts.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
