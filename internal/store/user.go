// File: internal/store/user.go
package store

import (
	"context"
	"fmt"

	"auth-backend/internal/database"
	"auth-backend/internal/model"

	"github.com/google/uuid"
)

func GetUserByID(ctx context.Context, db database.DB, userID string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, is_admin, is_active, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, wrapErr("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, is_admin, is_active, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, wrapErr("GetUserByEmail", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, is_admin, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
		u.IsActive,
	)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, wrapErr("CreateUser", err)
	}
	return u, nil
}

func UpdateUser(ctx context.Context, db database.DB, u *model.User) error {
	row := db.QueryRow(ctx,
		`UPDATE users SET name = $1, email = $2, is_admin = $3, is_active = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING updated_at`,
		u.Name,
		u.Email,
		u.IsAdmin,
		u.IsActive,
		u.ID,
	)
	if err := row.Scan(&u.UpdatedAt); err != nil {
		return wrapErr("UpdateUser", err)
	}
	return nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID string, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return wrapErr("UpdateUserPassword", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserPassword: %w", ErrNotFound)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.DB, userID string) error {
	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return wrapErr("DeleteUser", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}
