package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile holds patient-specific profile data
type PatientProfile struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DateOfBirth time.Time `gorm:"type:date" json:"date_of_birth"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Gender      string    `gorm:"type:varchar(10)" json:"gender,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (PatientProfile) TableName() string {
	return "pacientes"
}

// Gender values
const (
	GenderMale   = "masculino"
	GenderFemale = "femenino"
	GenderOther  = "otro"
)
