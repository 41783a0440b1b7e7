package usecase

import (
	"context"
	"errors"
	"time"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrPatientForbidden = errors.New("you do not have access to this patient")

// PatientUsecase exposes the patient directory. Admins and dentists browse
// it when booking on a patient's behalf or writing records; patients only
// reach their own entry.
type PatientUsecase interface {
	List(ctx context.Context, principal entity.Principal) (*dto.PatientListResponse, error)
	GetByID(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientProfileRepository
	userRepo    repository.UserRepository
	audit       service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientProfileRepository,
	userRepo repository.UserRepository,
	audit service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:         log,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		audit:       audit,
	}
}

func (u *patientUsecase) List(ctx context.Context, principal entity.Principal) (*dto.PatientListResponse, error) {
	if !isStaff(principal) {
		return nil, ErrPatientForbidden
	}

	profiles, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(profiles),
		Total:    len(profiles),
	}, nil
}

func (u *patientUsecase) GetByID(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.findAccessible(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(profile), nil
}

func (u *patientUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	profile, err := u.findAccessible(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	before := *profile

	if req.FirstName != "" {
		profile.User.FirstName = req.FirstName
	}
	if req.LastName != "" {
		profile.User.LastName = req.LastName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.DateOfBirth != "" {
		dateOfBirth, err := time.ParseInLocation(entity.DateLayout, req.DateOfBirth, time.Local)
		if err != nil {
			return nil, ErrInvalidDateOfBirth
		}
		profile.DateOfBirth = dateOfBirth
	}

	if err := u.userRepo.Update(ctx, &profile.User); err != nil {
		u.log.Warnf("Failed to update patient user %s: %+v", id, err)
		return nil, err
	}
	if err := u.patientRepo.Update(ctx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile %s: %+v", id, err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionPatientUpdate, "patient", id.String(), before, profile)

	return converter.PatientToResponse(profile), nil
}

// findAccessible loads the profile and applies directory access: staff see
// anyone, patients only themselves.
func (u *patientUsecase) findAccessible(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.PatientProfile, error) {
	if !isStaff(principal) && principal.ID != id {
		return nil, ErrPatientForbidden
	}

	profile, err := u.patientRepo.FindByUserID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}
	return profile, nil
}

func isStaff(principal entity.Principal) bool {
	return principal.Role == entity.RoleAdmin || principal.Role == entity.RoleDentist
}
