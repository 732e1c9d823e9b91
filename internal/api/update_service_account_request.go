// File: internal/api/update_service_account_request.go
package api

// swagger:model api.UpdateServiceAccountRequest
// 所有欄位皆為選填；送出的欄位才會被更新，role_ids / scope_ids 為整組取代
type UpdateServiceAccountRequest struct {
	ClientSecret            *string  `json:"client_secret,omitempty" example:"new-secret"`
	ClientName              *string  `json:"client_name,omitempty" example:"Billing Service v2"`
	AccountType             *string  `json:"account_type,omitempty" validate:"omitempty,oneof=Service-to-service Browser"`
	GrantTypes              []string `json:"grant_types,omitempty" validate:"omitempty,dive,oneof=client_credentials authorization_code refresh_token implicit password"`
	ResponseTypes           []string `json:"response_types,omitempty"`
	TokenEndpointAuthMethod *string  `json:"token_endpoint_auth_method,omitempty" validate:"omitempty,oneof=client_secret_basic client_secret_post private_key_jwt none"`
	Audience                []string `json:"audience,omitempty"`
	RedirectURIs            []string `json:"redirect_uris,omitempty" validate:"omitempty,dive,uri"`
	PostLogoutRedirectURIs  []string `json:"post_logout_redirect_uris,omitempty" validate:"omitempty,dive,uri"`
	AllowedCORSOrigins      []string `json:"allowed_cors_origins,omitempty"`
	SkipConsent             *bool    `json:"skip_consent,omitempty"`
	IsActive                *bool    `json:"is_active,omitempty"`
	Owner                   *string  `json:"owner,omitempty"`
	Description             *string  `json:"description,omitempty"`
	RoleIDs                 []string `json:"role_ids,omitempty"`
	ScopeIDs                []string `json:"scope_ids,omitempty"`
}
