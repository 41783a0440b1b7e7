package repository

import (
	"context"
	"time"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentRepository is the persistence capability the appointment lifecycle
// depends on. Implementations own the storage technology; callers never see it.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	// FindConflicting returns the non-cancelled appointment occupying the
	// (doctorID, date, startTime) slot, ignoring excludeID when it is not
	// uuid.Nil. Returns nil when the slot is free.
	FindConflicting(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime string, excludeID uuid.UUID) (*entity.Appointment, error)
	// FindScoped lists appointments visible under the given scope, with
	// patient, doctor and service relations loaded, ordered by date then
	// start time ascending.
	FindScoped(ctx context.Context, scope entity.AppointmentScope) ([]entity.Appointment, error)
	// FindOverdue returns scheduled appointments whose date plus start time
	// lies strictly before now.
	FindOverdue(ctx context.Context, now time.Time) ([]entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
