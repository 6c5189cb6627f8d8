// Package common defines shared constants and sentinel errors used across
// the propkeeper client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors (login and local token lifecycle).
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrRefreshFailed      = errors.New("token refresh failed")

	// Authorization errors. ErrUnauthorized means the server no longer
	// accepts our credential; ErrForbidden means the action is outside
	// the caller's role.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Transport-level errors, distinct from authorization failures.
	ErrUnavailable = errors.New("server unavailable")
)
