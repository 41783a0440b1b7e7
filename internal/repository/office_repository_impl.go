package repository

import (
	"context"
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type officeRepository struct {
	db *gorm.DB
}

func NewOfficeRepository(db *gorm.DB) domainRepo.OfficeRepository {
	return &officeRepository{db: db}
}

func (r *officeRepository) Create(ctx context.Context, office *entity.Office) error {
	return r.db.WithContext(ctx).Create(office).Error
}

func (r *officeRepository) FindAll(ctx context.Context) ([]entity.Office, error) {
	var offices []entity.Office
	err := r.db.WithContext(ctx).Order("name ASC").Find(&offices).Error
	if err != nil {
		return nil, err
	}
	return offices, nil
}

func (r *officeRepository) FindByID(ctx context.Context, id int) (*entity.Office, error) {
	var office entity.Office
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&office).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &office, nil
}

func (r *officeRepository) FindByAddress(ctx context.Context, address string) ([]entity.Office, error) {
	var offices []entity.Office
	err := r.db.WithContext(ctx).Where("address ILIKE ?", "%"+address+"%").Find(&offices).Error
	if err != nil {
		return nil, err
	}
	return offices, nil
}

func (r *officeRepository) Update(ctx context.Context, office *entity.Office) error {
	return r.db.WithContext(ctx).Save(office).Error
}

func (r *officeRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Office{}).Error
}
