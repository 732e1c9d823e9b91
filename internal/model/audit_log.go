// File: internal/model/audit_log.go
package model

import "time"

// AuditLog 為 append-only 紀錄，核心操作只寫入、不更新不刪除
type AuditLog struct {
	ID           string         `db:"id" json:"id"`
	Action       string         `db:"action" json:"action"`
	ResourceType string         `db:"resource_type" json:"resource_type"`
	ResourceID   string         `db:"resource_id" json:"resource_id"`
	Details      map[string]any `db:"details" json:"details"`
	PerformedBy  string         `db:"performed_by" json:"performed_by"`
	Timestamp    time.Time      `db:"timestamp" json:"timestamp"`
}
