package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID  uuid.UUID  `json:"doctor_id" validate:"required"`
	ServiceID *int       `json:"service_id" validate:"required"`
	Date      string     `json:"date" validate:"required"`       // Format: YYYY-MM-DD
	StartTime string     `json:"start_time" validate:"required"` // Format: HH:mm
	PatientID *uuid.UUID `json:"patient_id" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	DoctorID  *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	ServiceID *int       `json:"service_id" validate:"omitempty"`
	Date      string     `json:"date" validate:"omitempty"`       // Format: YYYY-MM-DD
	StartTime string     `json:"start_time" validate:"omitempty"` // Format: HH:mm
}

// Response DTOs

type AppointmentResponse struct {
	ID           uuid.UUID        `json:"id"`
	PatientID    uuid.UUID        `json:"patient_id"`
	DoctorID     uuid.UUID        `json:"doctor_id"`
	ServiceID    *int             `json:"service_id,omitempty"`
	Date         string           `json:"date"`
	StartTime    string           `json:"start_time"`
	Status       string           `json:"status"`
	PatientName  string           `json:"patient_name,omitempty"`
	DoctorName   string           `json:"doctor_name,omitempty"`
	Specialty    string           `json:"specialty,omitempty"`
	ServiceName  string           `json:"service_name,omitempty"`
	ServicePrice *decimal.Decimal `json:"service_price,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
