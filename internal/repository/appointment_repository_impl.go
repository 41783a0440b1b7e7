package repository

import (
	"context"
	"errors"
	"time"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Doctor.User").
		Preload("Service").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindConflicting(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime string, excludeID uuid.UUID) (*entity.Appointment, error) {
	query := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ? AND start_time = ? AND status != ?",
			doctorID, date.Format(entity.DateLayout), startTime, entity.AppointmentCancelled)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	var appointment entity.Appointment
	err := query.First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindScoped(ctx context.Context, scope entity.AppointmentScope) ([]entity.Appointment, error) {
	if scope.None {
		return []entity.Appointment{}, nil
	}

	query := r.db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Doctor.User").
		Preload("Service")
	if scope.PatientID != nil {
		query = query.Where("patient_id = ?", *scope.PatientID)
	}
	if scope.DoctorID != nil {
		query = query.Where("doctor_id = ?", *scope.DoctorID)
	}

	var appointments []entity.Appointment
	err := query.Order("date ASC, start_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindOverdue(ctx context.Context, now time.Time) ([]entity.Appointment, error) {
	day := now.Format(entity.DateLayout)
	clock := now.Format(entity.TimeLayout)

	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("status = ? AND (date < ? OR (date = ? AND start_time < ?))",
			entity.AppointmentScheduled, day, day, clock).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{}).Error
}
