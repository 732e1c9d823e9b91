// File: internal/store/scope.go
package store

import (
	"context"
	"fmt"

	"auth-backend/internal/database"
	"auth-backend/internal/model"

	"github.com/google/uuid"
)

// CreateScope 新增 scope
func CreateScope(ctx context.Context, db database.DB, s *model.Scope) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	row := db.QueryRow(ctx, `
        INSERT INTO scopes (id, name, description, applies_to, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at
    `, s.ID, s.Name, s.Description, s.AppliesTo, s.IsActive)
	if err := row.Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return wrapErr("CreateScope", err)
	}
	return nil
}

func GetScopeByID(ctx context.Context, db database.DB, id string) (*model.Scope, error) {
	s := &model.Scope{}
	row := db.QueryRow(ctx,
		`SELECT id, name, description, applies_to, is_active, created_at, updated_at
		 FROM scopes WHERE id = $1`, id)
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.AppliesTo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, wrapErr("GetScopeByID", err)
	}
	return s, nil
}

func GetScopeByName(ctx context.Context, db database.DB, name string) (*model.Scope, error) {
	s := &model.Scope{}
	row := db.QueryRow(ctx,
		`SELECT id, name, description, applies_to, is_active, created_at, updated_at
		 FROM scopes WHERE name = $1`, name)
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.AppliesTo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, wrapErr("GetScopeByName", err)
	}
	return s, nil
}

func ListScopes(ctx context.Context, db database.DB, skip, limit int, activeOnly bool) ([]model.Scope, error) {
	query := `SELECT id, name, description, applies_to, is_active, created_at, updated_at FROM scopes`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := db.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, wrapErr("ListScopes", err)
	}
	defer rows.Close()

	var scopes []model.Scope
	for rows.Next() {
		var s model.Scope
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.AppliesTo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, wrapErr("ListScopes", err)
		}
		scopes = append(scopes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListScopes", err)
	}
	return scopes, nil
}

func UpdateScope(ctx context.Context, db database.DB, s *model.Scope) error {
	row := db.QueryRow(ctx, `
        UPDATE scopes SET name = $1, description = $2, applies_to = $3, is_active = $4, updated_at = now()
        WHERE id = $5
        RETURNING updated_at
    `, s.Name, s.Description, s.AppliesTo, s.IsActive, s.ID)
	if err := row.Scan(&s.UpdatedAt); err != nil {
		return wrapErr("UpdateScope", err)
	}
	return nil
}

func DeleteScope(ctx context.Context, db database.DB, id string) error {
	tag, err := db.Exec(ctx, `DELETE FROM scopes WHERE id = $1`, id)
	if err != nil {
		return wrapErr("DeleteScope", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteScope: %w", ErrNotFound)
	}
	return nil
}
