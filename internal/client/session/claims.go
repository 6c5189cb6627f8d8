package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/propkeeper/internal/client/policy"
	"github.com/dmitrijs2005/propkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity the server embedded in the bearer token.
// Immutable for the token's lifetime; recomputed from the raw token on every
// session evaluation, never cached.
type Claims struct {
	UserID    int64
	Username  string
	Role      policy.Role
	ExpiresAt time.Time
}

// ExpiredAt reports whether the claims were already expired at the given
// instant.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// DecodeClaims extracts Claims from the token's payload segment without
// verifying the signature (the client has no secret material; the server
// re-validates every call).
//
// Required fields are the subject id ("user_id", falling back to "id"),
// "role" and "exp". Malformed structure, a non-JSON payload or a missing
// required field yields an error wrapping common.ErrInvalidToken; this
// function never panics past its boundary.
func DecodeClaims(token string) (*Claims, error) {
	raw := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	userID, ok := numericClaim(raw, "user_id")
	if !ok {
		userID, ok = numericClaim(raw, "id")
	}
	if !ok {
		return nil, fmt.Errorf("%w: missing subject id", common.ErrInvalidToken)
	}

	roleRaw, ok := raw["role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing role", common.ErrInvalidToken)
	}
	// Unknown role strings are kept; the policy package treats them as
	// least-privileged.
	role, _ := policy.ParseRole(roleRaw)

	exp, err := raw.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: missing expiry", common.ErrInvalidToken)
	}

	username, _ := raw["username"].(string)

	return &Claims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		ExpiresAt: exp.Time,
	}, nil
}

func numericClaim(m jwt.MapClaims, key string) (int64, bool) {
	switch v := m[key].(type) {
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
