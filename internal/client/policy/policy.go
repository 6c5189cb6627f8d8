package policy

import "github.com/dmitrijs2005/propkeeper/internal/client/models"

// VisibleProperties returns the subset of records the given caller may see:
//
//   - admin sees everything,
//   - a seller sees their own listings (verified or not),
//   - everyone else (buyers, unknown roles, no session) sees only verified
//     listings.
//
// The input slice is never mutated; relative order is preserved, so the
// result depends only on set membership, not on input ordering.
func VisibleProperties(role Role, userID int64, records []models.Property) []models.Property {
	if role == RoleAdmin {
		out := make([]models.Property, len(records))
		copy(out, records)
		return out
	}

	out := make([]models.Property, 0, len(records))
	for _, r := range records {
		switch role {
		case RoleSeller:
			if r.SellerID == userID {
				out = append(out, r)
			}
		default:
			if r.Verified {
				out = append(out, r)
			}
		}
	}
	return out
}

// CanVerify reports whether the role may mark listings as verified.
func CanVerify(role Role) bool {
	return role == RoleAdmin
}

// CanCreate reports whether the role may create listings.
func CanCreate(role Role) bool {
	switch role {
	case RoleAdmin, RoleSeller:
		return true
	default:
		return false
	}
}

// CanEdit reports whether the caller may modify the record: admins always,
// sellers only for listings they own.
func CanEdit(role Role, userID int64, record models.Property) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleSeller:
		return record.SellerID == userID
	default:
		return false
	}
}

// CanDelete follows the same ownership rule as CanEdit.
func CanDelete(role Role, userID int64, record models.Property) bool {
	return CanEdit(role, userID, record)
}

// CanManageUsers reports whether the role may list and administer accounts.
func CanManageUsers(role Role) bool {
	return role == RoleAdmin
}

// CanEditUser reports whether the caller may update the given account:
// admins may edit anyone, everyone else only themselves.
func CanEditUser(role Role, userID int64, target models.User) bool {
	if role == RoleAdmin {
		return true
	}
	return target.ID == userID
}
