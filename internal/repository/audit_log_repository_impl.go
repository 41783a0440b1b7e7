package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditLogRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.AuditLog, int64, error) {
	var logs []entity.AuditLog
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Preload("User").Limit(limit).Offset(offset).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
