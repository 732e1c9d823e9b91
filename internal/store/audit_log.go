// File: internal/store/audit_log.go
package store

import (
	"context"
	"fmt"

	"auth-backend/internal/database"
	"auth-backend/internal/model"

	"github.com/google/uuid"
)

// InsertAuditLog 寫入一筆稽核紀錄（append-only）
func InsertAuditLog(ctx context.Context, db database.DB, entry *model.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	row := db.QueryRow(ctx, `
        INSERT INTO audit_logs (id, action, resource_type, resource_id, details, performed_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING timestamp
    `,
		entry.ID,
		entry.Action,
		entry.ResourceType,
		entry.ResourceID,
		entry.Details,
		entry.PerformedBy,
	)
	if err := row.Scan(&entry.Timestamp); err != nil {
		return wrapErr("InsertAuditLog", err)
	}
	return nil
}

// ListAuditLogs 依 resource 過濾列出最近的稽核紀錄
func ListAuditLogs(ctx context.Context, db database.DB, resourceType, resourceID string, limit int) ([]model.AuditLog, error) {
	query := `SELECT id, action, resource_type, resource_id, details, performed_by, timestamp
	          FROM audit_logs`
	args := []any{}
	where := ""
	if resourceType != "" {
		args = append(args, resourceType)
		where = fmt.Sprintf(` WHERE resource_type = $%d`, len(args))
	}
	if resourceID != "" {
		args = append(args, resourceID)
		if where == "" {
			where = fmt.Sprintf(` WHERE resource_id = $%d`, len(args))
		} else {
			where += fmt.Sprintf(` AND resource_id = $%d`, len(args))
		}
	}
	args = append(args, limit)
	query += where + fmt.Sprintf(` ORDER BY timestamp DESC LIMIT $%d`, len(args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("ListAuditLogs", err)
	}
	defer rows.Close()

	var logs []model.AuditLog
	for rows.Next() {
		var l model.AuditLog
		if err := rows.Scan(&l.ID, &l.Action, &l.ResourceType, &l.ResourceID, &l.Details, &l.PerformedBy, &l.Timestamp); err != nil {
			return nil, wrapErr("ListAuditLogs", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListAuditLogs", err)
	}
	return logs, nil
}
