package repository

import (
	"context"
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dentistProfileRepository struct {
	db *gorm.DB
}

func NewDentistProfileRepository(db *gorm.DB) domainRepo.DentistProfileRepository {
	return &dentistProfileRepository{db: db}
}

func (r *dentistProfileRepository) Create(tx *gorm.DB, profile *entity.DentistProfile) error {
	return tx.Create(profile).Error
}

func (r *dentistProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DentistProfile, error) {
	var profile entity.DentistProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *dentistProfileRepository) FindAll(ctx context.Context) ([]entity.DentistProfile, error) {
	var profiles []entity.DentistProfile
	err := r.db.WithContext(ctx).Preload("User").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

type patientProfileRepository struct {
	db *gorm.DB
}

func NewPatientProfileRepository(db *gorm.DB) domainRepo.PatientProfileRepository {
	return &patientProfileRepository{db: db}
}

func (r *patientProfileRepository) Create(tx *gorm.DB, profile *entity.PatientProfile) error {
	return tx.Create(profile).Error
}

func (r *patientProfileRepository) FindAll(ctx context.Context) ([]entity.PatientProfile, error) {
	var profiles []entity.PatientProfile
	err := r.db.WithContext(ctx).Preload("User").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *patientProfileRepository) Update(ctx context.Context, profile *entity.PatientProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *patientProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
