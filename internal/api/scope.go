// File: internal/api/scope.go
package api

import (
	"time"

	"auth-backend/internal/model"
)

// swagger:model api.CreateScopeRequest
type CreateScopeRequest struct {
	Name        string   `json:"name" validate:"required" example:"invoices:read"`
	Description string   `json:"description" example:"Read invoices"`
	AppliesTo   []string `json:"applies_to" validate:"required,min=1,dive,oneof=Service-to-service Browser" example:"Service-to-service"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// swagger:model api.UpdateScopeRequest
type UpdateScopeRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	AppliesTo   []string `json:"applies_to,omitempty" validate:"omitempty,min=1,dive,oneof=Service-to-service Browser"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// swagger:model api.ScopeResponse
type ScopeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" example:"invoices:read"`
	Description string    `json:"description"`
	AppliesTo   []string  `json:"applies_to" example:"Service-to-service"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewScopeResponse(s *model.Scope) ScopeResponse {
	appliesTo := s.AppliesToList()
	if appliesTo == nil {
		appliesTo = []string{}
	}
	return ScopeResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		AppliesTo:   appliesTo,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
