// File: internal/store/role.go
package store

import (
	"context"
	"fmt"

	"auth-backend/internal/database"
	"auth-backend/internal/model"

	"github.com/google/uuid"
)

// CreateRole 新增 role
func CreateRole(ctx context.Context, db database.DB, r *model.Role) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	row := db.QueryRow(ctx, `
        INSERT INTO roles (id, name, description)
        VALUES ($1, $2, $3)
        RETURNING created_at, updated_at
    `, r.ID, r.Name, r.Description)
	if err := row.Scan(&r.CreatedAt, &r.UpdatedAt); err != nil {
		return wrapErr("CreateRole", err)
	}
	return nil
}

func GetRoleByID(ctx context.Context, db database.DB, id string) (*model.Role, error) {
	r := &model.Role{}
	row := db.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM roles WHERE id = $1`, id)
	if err := row.Scan(&r.ID, &r.Name, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, wrapErr("GetRoleByID", err)
	}
	return r, nil
}

func GetRoleByName(ctx context.Context, db database.DB, name string) (*model.Role, error) {
	r := &model.Role{}
	row := db.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM roles WHERE name = $1`, name)
	if err := row.Scan(&r.ID, &r.Name, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, wrapErr("GetRoleByName", err)
	}
	return r, nil
}

func ListRoles(ctx context.Context, db database.DB, skip, limit int) ([]model.Role, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, description, created_at, updated_at
		 FROM roles ORDER BY name LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, wrapErr("ListRoles", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var r model.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, wrapErr("ListRoles", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListRoles", err)
	}
	return roles, nil
}

func UpdateRole(ctx context.Context, db database.DB, r *model.Role) error {
	row := db.QueryRow(ctx, `
        UPDATE roles SET name = $1, description = $2, updated_at = now()
        WHERE id = $3
        RETURNING updated_at
    `, r.Name, r.Description, r.ID)
	if err := row.Scan(&r.UpdatedAt); err != nil {
		return wrapErr("UpdateRole", err)
	}
	return nil
}

func DeleteRole(ctx context.Context, db database.DB, id string) error {
	tag, err := db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return wrapErr("DeleteRole", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteRole: %w", ErrNotFound)
	}
	return nil
}
