package entity

import "github.com/google/uuid"

// AppointmentScope is a domain-level visibility filter for listing appointments.
// Used by the repository layer to avoid coupling with delivery DTOs.
type AppointmentScope struct {
	All       bool
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	None      bool
}

// ScopeForPrincipal computes the subset of appointments a principal may list:
// admins see everything, dentists see appointments assigned to them, patients
// see their own. Unrecognized roles match nothing.
func ScopeForPrincipal(p Principal) AppointmentScope {
	switch p.Role {
	case RoleAdmin:
		return AppointmentScope{All: true}
	case RoleDentist:
		id := p.ID
		return AppointmentScope{DoctorID: &id}
	case RolePatient:
		id := p.ID
		return AppointmentScope{PatientID: &id}
	default:
		return AppointmentScope{None: true}
	}
}
