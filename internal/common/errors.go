// Package common contains shared sentinel errors used across the
// contacthub layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Auth errors (invalid or malformed token, wrong scope claim).
	ErrInvalidToken  = errors.New("invalid token")
	ErrScopeMismatch = errors.New("invalid scope for token")

	// Login is refused until the confirmation link has been followed.
	ErrEmailNotConfirmed = errors.New("email not confirmed")
)
