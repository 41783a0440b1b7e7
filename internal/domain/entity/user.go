package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized account table shared by admins, dentists and patients
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'paciente';index" json:"role"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	DentistProfile *DentistProfile `gorm:"foreignKey:UserID" json:"dentist_profile,omitempty"`
	PatientProfile *PatientProfile `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
}

func (User) TableName() string {
	return "usuarios"
}

// FullName returns the display name used in flattened appointment listings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
