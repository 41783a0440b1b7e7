package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

type ClinicalRecordRepository interface {
	Create(ctx context.Context, record *entity.ClinicalRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ClinicalRecord, error)
	// FindByPatientID returns the patient's records oldest first, with
	// treatments loaded.
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.ClinicalRecord, error)
	Update(ctx context.Context, record *entity.ClinicalRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TreatmentRepository interface {
	Create(ctx context.Context, treatment *entity.Treatment) error
	FindByRecordID(ctx context.Context, recordID uuid.UUID) ([]entity.Treatment, error)
}
