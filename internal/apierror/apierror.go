// Package apierror defines the error taxonomy shared by handlers and
// repositories, plus the JSON envelope returned on 4xx/5xx responses so
// internal details (driver errors, stack traces) never leak to clients.
package apierror

import "errors"

var (
	// ErrNotFound reports that a referenced bean, roast or review does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference reports a malformed 24-hex id token.
	ErrInvalidReference = errors.New("invalid id")

	// ErrInvalidTransition reports a roast lifecycle operation issued from a
	// state that does not permit it, e.g. ending a roast that never started.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// APIError is the canonical error envelope for all error responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}
