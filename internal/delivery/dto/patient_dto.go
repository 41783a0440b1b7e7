package dto

import "github.com/google/uuid"

// UpdatePatientRequest carries the editable patient directory fields. Only
// the fields present in the request are applied.
type UpdatePatientRequest struct {
	FirstName   string  `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName    string  `json:"last_name" validate:"omitempty,min=2,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	DateOfBirth string  `json:"date_of_birth" validate:"omitempty"`
	Gender      string  `json:"gender" validate:"omitempty,oneof=masculino femenino otro"`
}

// PatientResponse represents a patient in the directory
type PatientResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	DateOfBirth string    `json:"date_of_birth"`
	Phone       string    `json:"phone,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	IsActive    bool      `json:"is_active"`
}

// PatientListResponse wraps the patient directory
type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
