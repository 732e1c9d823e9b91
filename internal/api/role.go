// File: internal/api/role.go
package api

import (
	"time"

	"auth-backend/internal/model"
)

// swagger:model api.CreateRoleRequest
type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required" example:"invoice-admin"`
	Description string `json:"description" example:"Manage invoices"`
}

// swagger:model api.UpdateRoleRequest
type UpdateRoleRequest struct {
	Name        *string `json:"name,omitempty" example:"invoice-admin"`
	Description *string `json:"description,omitempty"`
}

// swagger:model api.RoleResponse
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" example:"invoice-admin"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewRoleResponse(r *model.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
