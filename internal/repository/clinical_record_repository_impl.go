package repository

import (
	"context"
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clinicalRecordRepository struct {
	db *gorm.DB
}

func NewClinicalRecordRepository(db *gorm.DB) domainRepo.ClinicalRecordRepository {
	return &clinicalRecordRepository{db: db}
}

func (r *clinicalRecordRepository) Create(ctx context.Context, record *entity.ClinicalRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *clinicalRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ClinicalRecord, error) {
	var record entity.ClinicalRecord
	err := r.db.WithContext(ctx).Preload("Treatments").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *clinicalRecordRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.ClinicalRecord, error) {
	var records []entity.ClinicalRecord
	err := r.db.WithContext(ctx).
		Preload("Treatments").
		Where("patient_id = ?", patientID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *clinicalRecordRepository) Update(ctx context.Context, record *entity.ClinicalRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *clinicalRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ClinicalRecord{}).Error
}

type treatmentRepository struct {
	db *gorm.DB
}

func NewTreatmentRepository(db *gorm.DB) domainRepo.TreatmentRepository {
	return &treatmentRepository{db: db}
}

func (r *treatmentRepository) Create(ctx context.Context, treatment *entity.Treatment) error {
	return r.db.WithContext(ctx).Create(treatment).Error
}

func (r *treatmentRepository) FindByRecordID(ctx context.Context, recordID uuid.UUID) ([]entity.Treatment, error) {
	var treatments []entity.Treatment
	err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("start_date ASC").
		Find(&treatments).Error
	if err != nil {
		return nil, err
	}
	return treatments, nil
}
