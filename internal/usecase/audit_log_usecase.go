package usecase

import (
	"context"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AuditLogUsecase interface {
	List(ctx context.Context, page, limit int) (*dto.AuditLogListResponse, int64, error)
}

type auditLogUsecase struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		log:       log,
		auditRepo: auditRepo,
	}
}

// List returns a page of audit entries, newest first.
func (u *auditLogUsecase) List(ctx context.Context, page, limit int) (*dto.AuditLogListResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	logs, total, err := u.auditRepo.FindAll(ctx, limit, (page-1)*limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, 0, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, total, nil
}
