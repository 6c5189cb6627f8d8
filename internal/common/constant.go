package common

// AuthorizationHeaderName is the HTTP header that carries the bearer token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is prepended to the token in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries a per-request correlation id, echoed in logs.
const RequestIDHeaderName = "X-Request-Id"

// TokenStorageKey is the fixed key under which the bearer token is kept in
// local storage. It is the only value this client persists for the session.
const TokenStorageKey = "token"
