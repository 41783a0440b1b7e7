package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// AuditLogToResponse converts an AuditLog entity to its DTO
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	response := &dto.AuditLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		Metadata:  map[string]interface{}(log.Metadata),
		CreatedAt: log.CreatedAt,
	}

	if log.User != nil {
		response.UserEmail = log.User.Email
	}

	return response
}

// AuditLogsToResponses converts a slice of AuditLog entities to DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i, log := range logs {
		responses[i] = *AuditLogToResponse(&log)
	}
	return responses
}
