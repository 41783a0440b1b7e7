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

var ErrServiceInUse = errors.New("service is referenced by existing appointments")

type ServiceUsecase interface {
	Create(ctx context.Context, principal entity.Principal, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	List(ctx context.Context, page, limit int) ([]dto.ServiceResponse, int64, error)
	GetByID(ctx context.Context, id int) (*dto.ServiceResponse, error)
	Update(ctx context.Context, principal entity.Principal, id int, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Delete(ctx context.Context, principal entity.Principal, id int) error
}

type serviceUsecase struct {
	log         *logrus.Logger
	serviceRepo repository.ServiceRepository
	audit       service.AuditService
}

func NewServiceUsecase(log *logrus.Logger, serviceRepo repository.ServiceRepository, audit service.AuditService) ServiceUsecase {
	return &serviceUsecase{
		log:         log,
		serviceRepo: serviceRepo,
		audit:       audit,
	}
}

func (u *serviceUsecase) Create(ctx context.Context, principal entity.Principal, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	svc := &entity.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}

	if err := u.serviceRepo.Create(ctx, svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionServiceWrite, "service", svc.Name, nil, svc)

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) List(ctx context.Context, page, limit int) ([]dto.ServiceResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	services, total, err := u.serviceRepo.FindAll(ctx, limit, (page-1)*limit)
	if err != nil {
		u.log.Warnf("Failed to list services: %+v", err)
		return nil, 0, err
	}

	return converter.ServicesToResponses(services), total, nil
}

func (u *serviceUsecase) GetByID(ctx context.Context, id int) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) Update(ctx context.Context, principal entity.Principal, id int, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.ImageURL != nil {
		svc.ImageURL = *req.ImageURL
	}

	if err := u.serviceRepo.Update(ctx, svc); err != nil {
		u.log.Warnf("Failed to update service %d: %+v", id, err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionServiceWrite, "service", svc.Name, nil, svc)

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) Delete(ctx context.Context, principal entity.Principal, id int) error {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", id, err)
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	if err := u.serviceRepo.Delete(ctx, id); err != nil {
		if isForeignKeyError(err) {
			return ErrServiceInUse
		}
		u.log.Warnf("Failed to delete service %d: %+v", id, err)
		return err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionServiceWrite, "service", svc.Name, svc, nil)

	return nil
}
