package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"
)

type OfficeRepository interface {
	Create(ctx context.Context, office *entity.Office) error
	FindAll(ctx context.Context) ([]entity.Office, error)
	FindByID(ctx context.Context, id int) (*entity.Office, error)
	FindByAddress(ctx context.Context, address string) ([]entity.Office, error)
	Update(ctx context.Context, office *entity.Office) error
	Delete(ctx context.Context, id int) error
}
