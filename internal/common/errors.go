// Package common defines the sentinel errors shared by services,
// repositories and the HTTP layer. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")

	// Registration / credential errors.
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and include one special character")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Policy errors.
	ErrForbidden = errors.New("forbidden")

	// Validation / flow-control errors.
	ErrValidation = errors.New("validation error")
	ErrInternal   = errors.New("internal error")
)
