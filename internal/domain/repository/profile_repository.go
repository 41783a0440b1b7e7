package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DentistProfileRepository persists dentist profile rows. Create takes the
// registration transaction handle; reads run on the shared connection.
type DentistProfileRepository interface {
	Create(tx *gorm.DB, profile *entity.DentistProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DentistProfile, error)
	FindAll(ctx context.Context) ([]entity.DentistProfile, error)
}

// PatientProfileRepository persists patient profile rows.
type PatientProfileRepository interface {
	Create(tx *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error)
	FindAll(ctx context.Context) ([]entity.PatientProfile, error)
	Update(ctx context.Context, profile *entity.PatientProfile) error
}
