// Package common defines shared constants and sentinel errors used across
// client and server layers of todosync. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Identity errors returned by account creation.
	ErrEmailInUse   = errors.New("email already in use")
	ErrInvalidEmail = errors.New("invalid email")
	ErrWeakPassword = errors.New("password should be at least 6 characters")

	// Document store errors.
	ErrInvalidFields     = errors.New("invalid document fields")
	ErrInvalidCollection = errors.New("collection is required")
	ErrPermissionDenied  = errors.New("permission denied")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
