package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	// Create inserts the user using the given transaction handle so that
	// user and profile rows commit together.
	Create(tx *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
