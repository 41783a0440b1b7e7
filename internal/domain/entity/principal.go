package entity

import "github.com/google/uuid"

// Principal is the authenticated identity resolved from a verified credential.
// It is the only identity information the business layer ever sees.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
