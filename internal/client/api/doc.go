// Package api contains the REST edge of the propkeeper client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the property-listing backend: login/logout, signup, property CRUD
//     and user management.
//  2. A concrete HTTP implementation (see HTTPClient) that is the single
//     choke point for every outbound request: it attaches the bearer token,
//     tags each request with a correlation id, detects authorization
//     failures, hands renewal to the session coordinator and replays the
//     original request exactly once with the fresh token.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors in the common package
// that callers can match with errors.Is: ErrInvalidCredentials,
// ErrUnauthorized, ErrForbidden, ErrRefreshFailed, ErrUnavailable,
// ErrorNotFound.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts; a caller's cancellation
// never aborts a token renewal other callers are waiting on.
package api
