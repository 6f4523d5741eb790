package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure so screens can decide between a specific
// message and a generic "try again".
type Kind int

const (
	KindTransport Kind = iota
	KindUnauthenticated
	KindValidation
	KindNotFound
	KindInsufficientStock
	KindInvalidCredentials
	KindInvalidOrExpiredToken
	KindServer
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return "api: " + e.Message
}

// KindOf extracts the failure Kind from err, defaulting to KindTransport for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransport
}

// Message returns the human-readable failure message, with a fallback for
// errors that did not come from the API.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsUnauthenticated reports whether the session's credential was missing or
// rejected. Callers are expected to clear the session when this is true.
func IsUnauthenticated(err error) bool {
	return KindOf(err) == KindUnauthenticated
}
