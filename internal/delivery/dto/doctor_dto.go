package dto

import "github.com/google/uuid"

// DoctorResponse represents a dentist in the public directory
type DoctorResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	FullName      string    `json:"full_name"`
	Specialty     string    `json:"specialty"`
	LicenseNumber string    `json:"license_number"`
	Bio           string    `json:"bio,omitempty"`
}

// DoctorListResponse wraps the dentist directory
type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
