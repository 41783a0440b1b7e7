package repository

import (
	"context"
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.Service, int64, error) {
	var services []entity.Service
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Service{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Order("name ASC").Find(&services).Error; err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id int) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Service{}).Error
}
