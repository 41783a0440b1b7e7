package usecase

import (
	"context"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// DoctorUsecase exposes the dentist directory patients browse when booking.
type DoctorUsecase interface {
	List(ctx context.Context) (*dto.DoctorListResponse, error)
}

type doctorUsecase struct {
	log         *logrus.Logger
	dentistRepo repository.DentistProfileRepository
}

func NewDoctorUsecase(log *logrus.Logger, dentistRepo repository.DentistProfileRepository) DoctorUsecase {
	return &doctorUsecase{
		log:         log,
		dentistRepo: dentistRepo,
	}
}

func (u *doctorUsecase) List(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.dentistRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list dentists: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(profiles),
		Total:   len(profiles),
	}, nil
}
