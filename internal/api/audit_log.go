// File: internal/api/audit_log.go
package api

import (
	"time"

	"auth-backend/internal/model"
)

// swagger:model api.AuditLogResponse
type AuditLogResponse struct {
	ID           string         `json:"id"`
	Action       string         `json:"action" example:"create"`
	ResourceType string         `json:"resource_type" example:"service_account"`
	ResourceID   string         `json:"resource_id"`
	Details      map[string]any `json:"details"`
	PerformedBy  string         `json:"performed_by"`
	Timestamp    time.Time      `json:"timestamp"`
}

func NewAuditLogResponse(l *model.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:           l.ID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Details:      l.Details,
		PerformedBy:  l.PerformedBy,
		Timestamp:    l.Timestamp,
	}
}
