// File: internal/api/service_account_response.go
package api

import (
	"time"

	"auth-backend/internal/model"
)

// swagger:model api.ServiceAccountResponse
type ServiceAccountResponse struct {
	ID                      string          `json:"id" example:"7f9c24e8-3b1a-4b6e-9f2d-8f0a1c2d3e4f"`
	ClientID                string          `json:"client_id" example:"billing-service"`
	ClientName              string          `json:"client_name" example:"Billing Service"`
	AccountType             string          `json:"account_type" example:"Service-to-service"`
	GrantTypes              []string        `json:"grant_types"`
	ResponseTypes           []string        `json:"response_types"`
	TokenEndpointAuthMethod string          `json:"token_endpoint_auth_method"`
	Audience                []string        `json:"audience"`
	RedirectURIs            []string        `json:"redirect_uris"`
	PostLogoutRedirectURIs  []string        `json:"post_logout_redirect_uris"`
	AllowedCORSOrigins      []string        `json:"allowed_cors_origins"`
	SkipConsent             bool            `json:"skip_consent"`
	IsActive                bool            `json:"is_active"`
	Owner                   *string         `json:"owner,omitempty"`
	Description             *string         `json:"description,omitempty"`
	CreatedBy               string          `json:"created_by"`
	LastUsedAt              *time.Time      `json:"last_used_at,omitempty"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
	Roles                   []RoleResponse  `json:"roles"`
	Scopes                  []ScopeResponse `json:"scopes"`
}

// NewServiceAccountResponse 由 model 轉成 API 回應，client_secret 一律不外洩
func NewServiceAccountResponse(sa *model.ServiceAccount) ServiceAccountResponse {
	resp := ServiceAccountResponse{
		ID:                      sa.ID,
		ClientID:                sa.ClientID,
		ClientName:              sa.ClientName,
		AccountType:             sa.AccountType,
		GrantTypes:              sa.GrantTypes,
		ResponseTypes:           sa.ResponseTypes,
		TokenEndpointAuthMethod: sa.TokenEndpointAuthMethod,
		Audience:                sa.Audience,
		RedirectURIs:            sa.RedirectURIs,
		PostLogoutRedirectURIs:  sa.PostLogoutRedirectURIs,
		AllowedCORSOrigins:      sa.AllowedCORSOrigins,
		SkipConsent:             sa.SkipConsent,
		IsActive:                sa.IsActive,
		Owner:                   sa.Owner,
		Description:             sa.Description,
		CreatedBy:               sa.CreatedBy,
		LastUsedAt:              sa.LastUsedAt,
		CreatedAt:               sa.CreatedAt,
		UpdatedAt:               sa.UpdatedAt,
		Roles:                   []RoleResponse{},
		Scopes:                  []ScopeResponse{},
	}
	for _, r := range sa.Roles {
		resp.Roles = append(resp.Roles, NewRoleResponse(&r))
	}
	for _, s := range sa.Scopes {
		resp.Scopes = append(resp.Scopes, NewScopeResponse(&s))
	}
	return resp
}
