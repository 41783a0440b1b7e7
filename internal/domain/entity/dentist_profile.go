package entity

import "github.com/google/uuid"

// DentistProfile holds dentist-specific profile data
type DentistProfile struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialty     string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	LicenseNumber string    `gorm:"column:license_number;type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Bio           string    `gorm:"type:text" json:"bio,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DentistProfile) TableName() string {
	return "odontologos"
}
