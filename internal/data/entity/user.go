package entity

import "github.com/google/uuid"

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleOwner      UserRole = "owner"
	RoleCrew       UserRole = "crew"
	RoleSeller     UserRole = "seller"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleOwner, RoleCrew, RoleSeller:
		return true
	}
	return false
}

// In reports whether r is one of roles. super_admin is always allowed.
func (r UserRole) In(roles ...UserRole) bool {
	if r == RoleSuperAdmin {
		return true
	}
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	BaseNoDelete
	FullName     string     `db:"full_name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         UserRole   `db:"role"`
	AgencyID     *uuid.UUID `db:"agency_id"`
	IsActive     bool       `db:"is_active"`
}
