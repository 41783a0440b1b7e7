package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateClinicalRecordRequest represents the payload to open a clinical record
type CreateClinicalRecordRequest struct {
	PatientID        uuid.UUID `json:"patient_id" validate:"required"`
	GeneralDiagnosis string    `json:"general_diagnosis" validate:"omitempty"`
	Observations     string    `json:"observations" validate:"omitempty"`
	MedicalHistory   string    `json:"medical_history" validate:"omitempty"`
}

// UpdateClinicalRecordRequest represents a partial clinical record update
type UpdateClinicalRecordRequest struct {
	GeneralDiagnosis *string `json:"general_diagnosis" validate:"omitempty"`
	Observations     *string `json:"observations" validate:"omitempty"`
	MedicalHistory   *string `json:"medical_history" validate:"omitempty"`
}

// CreateTreatmentRequest represents the payload to attach a treatment to a record
type CreateTreatmentRequest struct {
	Type          string          `json:"type" validate:"required,max=100"`
	Description   string          `json:"description" validate:"omitempty"`
	Cost          decimal.Decimal `json:"cost" validate:"required"`
	StartDate     string          `json:"start_date" validate:"required"` // Format: YYYY-MM-DD
	AppointmentID *uuid.UUID      `json:"appointment_id" validate:"omitempty"`
}

// UpdateTreatmentStatusRequest represents a treatment status transition
type UpdateTreatmentStatusRequest struct {
	Status  string  `json:"status" validate:"required,oneof=in_progress finished suspended"`
	EndDate *string `json:"end_date" validate:"omitempty"` // Format: YYYY-MM-DD
}

// TreatmentResponse represents a treatment returned to clients
type TreatmentResponse struct {
	ID            uuid.UUID       `json:"id"`
	RecordID      uuid.UUID       `json:"record_id"`
	DoctorID      uuid.UUID       `json:"doctor_id"`
	DoctorName    string          `json:"doctor_name,omitempty"`
	AppointmentID *uuid.UUID      `json:"appointment_id,omitempty"`
	Type          string          `json:"type"`
	Description   string          `json:"description,omitempty"`
	Status        string          `json:"status"`
	Cost          decimal.Decimal `json:"cost"`
	StartDate     string          `json:"start_date"`
	EndDate       *string         `json:"end_date,omitempty"`
}

// ClinicalRecordResponse represents a clinical record with its treatments
type ClinicalRecordResponse struct {
	ID               uuid.UUID           `json:"id"`
	PatientID        uuid.UUID           `json:"patient_id"`
	PatientName      string              `json:"patient_name,omitempty"`
	GeneralDiagnosis string              `json:"general_diagnosis,omitempty"`
	Observations     string              `json:"observations,omitempty"`
	MedicalHistory   string              `json:"medical_history,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Treatments       []TreatmentResponse `json:"treatments,omitempty"`
}
