// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the acting principal's plan doesn't permit the action.
	ErrForbidden = errors.New("forbidden")

	// ErrConfigMissing indicates a required setting (base URL, signing secret) is
	// absent. Fatal for the current request, user-actionable, never retried.
	ErrConfigMissing = errors.New("configuration missing")

	// ErrSecretUnavailable indicates the signing secret could not be decrypted.
	// Callers must treat this as "secret not usable" without distinguishing
	// absent from corrupt.
	ErrSecretUnavailable = errors.New("signing secret unavailable")

	// ErrRateLimited indicates the per-principal cooldown window has not elapsed.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransport indicates the outbound call failed before an HTTP response
	// was received (DNS, TLS, timeout, connection refused).
	ErrTransport = errors.New("transport failure")

	// ErrUpstream indicates the remote backend answered with a server error.
	ErrUpstream = errors.New("upstream server error")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
