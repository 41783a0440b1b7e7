package usecase

import (
	"context"
	"errors"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/service"

	"github.com/sirupsen/logrus"
)

var ErrOfficeNotFound = errors.New("office not found")

type OfficeUsecase interface {
	Create(ctx context.Context, principal entity.Principal, req *dto.CreateOfficeRequest) (*dto.OfficeResponse, error)
	List(ctx context.Context, address string) ([]dto.OfficeResponse, error)
	GetByID(ctx context.Context, id int) (*dto.OfficeResponse, error)
	Update(ctx context.Context, principal entity.Principal, id int, req *dto.UpdateOfficeRequest) (*dto.OfficeResponse, error)
	Delete(ctx context.Context, principal entity.Principal, id int) error
}

type officeUsecase struct {
	log        *logrus.Logger
	officeRepo repository.OfficeRepository
	audit      service.AuditService
}

func NewOfficeUsecase(log *logrus.Logger, officeRepo repository.OfficeRepository, audit service.AuditService) OfficeUsecase {
	return &officeUsecase{
		log:        log,
		officeRepo: officeRepo,
		audit:      audit,
	}
}

func (u *officeUsecase) Create(ctx context.Context, principal entity.Principal, req *dto.CreateOfficeRequest) (*dto.OfficeResponse, error) {
	office := &entity.Office{
		Name:    req.Name,
		Address: req.Address,
		Number:  req.Number,
	}

	if err := u.officeRepo.Create(ctx, office); err != nil {
		u.log.Warnf("Failed to create office: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionOfficeWrite, "office", office.Name, nil, office)

	return converter.OfficeToResponse(office), nil
}

// List returns all offices, or only those matching the address filter when
// one is given.
func (u *officeUsecase) List(ctx context.Context, address string) ([]dto.OfficeResponse, error) {
	var (
		offices []entity.Office
		err     error
	)
	if address != "" {
		offices, err = u.officeRepo.FindByAddress(ctx, address)
	} else {
		offices, err = u.officeRepo.FindAll(ctx)
	}
	if err != nil {
		u.log.Warnf("Failed to list offices: %+v", err)
		return nil, err
	}

	return converter.OfficesToResponses(offices), nil
}

func (u *officeUsecase) GetByID(ctx context.Context, id int) (*dto.OfficeResponse, error) {
	office, err := u.officeRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find office %d: %+v", id, err)
		return nil, err
	}
	if office == nil {
		return nil, ErrOfficeNotFound
	}
	return converter.OfficeToResponse(office), nil
}

func (u *officeUsecase) Update(ctx context.Context, principal entity.Principal, id int, req *dto.UpdateOfficeRequest) (*dto.OfficeResponse, error) {
	office, err := u.officeRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find office %d: %+v", id, err)
		return nil, err
	}
	if office == nil {
		return nil, ErrOfficeNotFound
	}

	if req.Name != "" {
		office.Name = req.Name
	}
	if req.Address != nil {
		office.Address = *req.Address
	}
	if req.Number != nil {
		office.Number = *req.Number
	}

	if err := u.officeRepo.Update(ctx, office); err != nil {
		u.log.Warnf("Failed to update office %d: %+v", id, err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionOfficeWrite, "office", office.Name, nil, office)

	return converter.OfficeToResponse(office), nil
}

func (u *officeUsecase) Delete(ctx context.Context, principal entity.Principal, id int) error {
	office, err := u.officeRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find office %d: %+v", id, err)
		return err
	}
	if office == nil {
		return ErrOfficeNotFound
	}

	if err := u.officeRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete office %d: %+v", id, err)
		return err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionOfficeWrite, "office", office.Name, office, nil)

	return nil
}
