package dto

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogResponse represents an audit trail entry returned to admins
type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	UserID    *uuid.UUID             `json:"user_id,omitempty"`
	UserEmail string                 `json:"user_email,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// AuditLogListResponse wraps a page of audit entries
type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
