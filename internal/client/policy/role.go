// Package policy contains the client-side authorization rules: which property
// records a user may see and which actions a user may take.
//
// Everything here is a pure function of the caller's role/identity and the
// record in question. The server enforces the same rules independently; this
// package only decides what the UI offers, it is not a security boundary.
package policy

import "fmt"

// Role is the closed set of account categories known to the service.
// Keeping it a dedicated type forces every new action to state its rule
// for each role in one place instead of scattering string comparisons.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// ParseRole maps a raw role claim to a Role. Unknown values are returned
// as-is with an error; policy functions treat them as least-privileged.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return Role(s), nil
	default:
		return Role(s), fmt.Errorf("unknown role %q", s)
	}
}

// Known reports whether r is one of the roles this client understands.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
