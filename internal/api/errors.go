package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the task API. Status is the HTTP status
// code; Message is the server-provided message when one was sent.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// statusIs reports whether err is an *Error with one of the given statuses.
func statusIs(err error, statuses ...int) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, s := range statuses {
		if apiErr.Status == s {
			return true
		}
	}
	return false
}

// IsUnauthorized reports a missing, invalid or revoked token (401).
func IsUnauthorized(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

// IsNotFound reports a mutation against an id unknown server-side (404).
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsConflict reports a duplicate registration email (409).
func IsConflict(err error) bool {
	return statusIs(err, http.StatusConflict)
}

// IsValidation reports missing or malformed required fields (400/422).
func IsValidation(err error) bool {
	return statusIs(err, http.StatusBadRequest, http.StatusUnprocessableEntity)
}

// Message extracts a user-facing message from err, preferring the
// server-provided one and falling back to the given default.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
