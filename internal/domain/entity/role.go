package entity

import "fmt"

// Role is an enumerated user role. It is an attribute of the user and of the
// authenticated principal, not a stored lookup table.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDentist Role = "odontologo"
	RolePatient Role = "paciente"
)

// ParseRole converts a raw role string into a Role. Unrecognized values are
// rejected so authorization branches stay default-deny.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleDentist, RolePatient:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
