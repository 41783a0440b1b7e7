package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TreatmentStatus represents the progress of a dental treatment
type TreatmentStatus string

const (
	TreatmentInProgress TreatmentStatus = "in_progress"
	TreatmentFinished   TreatmentStatus = "finished"
	TreatmentSuspended  TreatmentStatus = "suspended"
)

// Treatment is a dental treatment recorded against a clinical record,
// performed by a dentist and optionally linked to the originating appointment
type Treatment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"record_id"`
	DoctorID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentID *uuid.UUID      `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Type          string          `gorm:"type:varchar(100);not null" json:"type"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	Status        TreatmentStatus `gorm:"type:varchar(20);not null;default:'in_progress'" json:"status"`
	Cost          decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost"`
	StartDate     time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate       *time.Time      `gorm:"type:date" json:"end_date,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Record ClinicalRecord `gorm:"foreignKey:RecordID" json:"record,omitempty"`
	Doctor DentistProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Treatment) TableName() string {
	return "tratamientos"
}

// IsFinished checks if the treatment has concluded
func (t *Treatment) IsFinished() bool {
	return t.Status == TreatmentFinished
}

// DurationDays returns the treatment length in whole days, or 0 when still open.
func (t *Treatment) DurationDays() int {
	if t.EndDate == nil {
		return 0
	}
	return int(t.EndDate.Sub(t.StartDate).Hours()/24 + 0.5)
}
