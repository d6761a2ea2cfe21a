// Package common defines shared constants and sentinel errors used across
// the Phoenix client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")
	ErrNotFound    = errors.New("not found")

	// Auth lifecycle errors.
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNoRefreshToken = errors.New("no refresh token")
	ErrRefreshFailed  = errors.New("token refresh failed")

	// Validation errors surfaced by the API.
	ErrValidation    = errors.New("validation error")
	ErrAlreadyExists = errors.New("already exists")
)
