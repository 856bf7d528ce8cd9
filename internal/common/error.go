// Package common defines shared constants and sentinel errors used across
// the bucketlist server. Callers should use errors.Is / errors.As to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingToken = errors.New("missing token")

	// Session lifecycle errors.
	ErrTokenExpired = errors.New("expired token")

	// Password reset: old password did not match. The HTTP layer renders
	// this as a 200 with a message body, matching the public contract.
	ErrWrongOldPassword = errors.New("invalid old password")
)

// ConflictError reports a uniqueness violation at registration. Field is
// the duplicate attribute ("email" or "username") and is echoed to the
// client in the 409 payload.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return "already taken: " + e.Field
}

// ValidationError reports a missing or malformed request field. Field is
// echoed to the client in the 400 payload.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "invalid field: " + e.Field
}

// NotFoundError reports an absent (or not owned) resource. Resource is the
// user-facing name, e.g. "Bucket" or "BucketItem". It matches
// errors.Is(err, ErrorNotFound) so callers that do not care which resource
// is missing can treat both uniformly.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " does not exist"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrorNotFound
}
