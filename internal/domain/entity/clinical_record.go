package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClinicalRecord represents an entry in a patient's dental clinical history
type ClinicalRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID        uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	GeneralDiagnosis string    `gorm:"type:text" json:"general_diagnosis,omitempty"`
	Observations     string    `gorm:"type:text" json:"observations,omitempty"`
	MedicalHistory   string    `gorm:"type:text" json:"medical_history,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient    PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Treatments []Treatment    `gorm:"foreignKey:RecordID" json:"treatments,omitempty"`
}

func (ClinicalRecord) TableName() string {
	return "historiales"
}

// HasDiagnosis checks whether a general diagnosis has been captured
func (r *ClinicalRecord) HasDiagnosis() bool {
	return strings.TrimSpace(r.GeneralDiagnosis) != ""
}
