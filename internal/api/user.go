// File: internal/api/user.go
package api

import (
	"time"

	"auth-backend/internal/model"
)

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required" example:"Alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"Secret123!"`
	IsAdmin  bool   `json:"is_admin" example:"false"`
}

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// swagger:model api.UserResponse
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
