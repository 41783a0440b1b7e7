package service

import (
	"context"

	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService records who did what to which record. Audit failures are
// logged and swallowed: the audited operation must never fail because the
// trail could not be written.
type AuditService interface {
	Record(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{})
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	metadata := entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	}

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}
}
