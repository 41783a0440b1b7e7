package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentAbsent    AppointmentStatus = "absent"
)

// Date and time-of-day layouts used on the wire and in storage.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment links a patient, a dentist, a date and a starting time slot.
// A slot (doctor_id, date, start_time) is exclusive among non-cancelled rows;
// migration 000001 enforces this with a partial unique index, the usecase layer
// additionally pre-checks it for a fast conflict rejection.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ServiceID *int              `gorm:"index" json:"service_id,omitempty"`
	Date      time.Time         `gorm:"type:date;not null;index" json:"date"`
	StartTime string            `gorm:"type:time;not null" json:"start_time"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DentistProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Service *Service       `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "citas"
}

// IsCancelled checks if the appointment has been soft-deleted
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentCancelled
}

// IsScheduled checks if the appointment is still pending attendance
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentScheduled
}

// Cancel marks the appointment cancelled, freeing its slot
func (a *Appointment) Cancel() {
	a.Status = AppointmentCancelled
}

// StartsBefore reports whether the appointment's date plus start time falls
// strictly before the given instant. Used by the overdue sweep.
func (a *Appointment) StartsBefore(t time.Time) bool {
	start, err := time.ParseInLocation(DateLayout+" "+TimeLayout, a.Date.Format(DateLayout)+" "+a.StartTime, t.Location())
	if err != nil {
		return false
	}
	return start.Before(t)
}
