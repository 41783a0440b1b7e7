package handler

import (
	"net/http"
	"strconv"

	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	logs, total, err := h.auditLogUsecase.List(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs")
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", logs, &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}
