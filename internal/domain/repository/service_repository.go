package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindAll(ctx context.Context, limit, offset int) ([]entity.Service, int64, error)
	FindByID(ctx context.Context, id int) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id int) error
}
