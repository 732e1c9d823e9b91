// File: internal/api/create_service_account_request.go
package api

// swagger:model api.CreateServiceAccountRequest
type CreateServiceAccountRequest struct {
	ClientID                string   `json:"client_id" validate:"required" example:"billing-service"`
	ClientSecret            string   `json:"client_secret" example:"secret"`
	ClientName              string   `json:"client_name" validate:"required" example:"Billing Service"`
	AccountType             string   `json:"account_type" validate:"required,oneof=Service-to-service Browser" example:"Service-to-service"`
	GrantTypes              []string `json:"grant_types" validate:"omitempty,dive,oneof=client_credentials authorization_code refresh_token implicit password" example:"client_credentials"`
	ResponseTypes           []string `json:"response_types" example:"code"`
	TokenEndpointAuthMethod string   `json:"token_endpoint_auth_method" validate:"omitempty,oneof=client_secret_basic client_secret_post private_key_jwt none" example:"client_secret_basic"`
	Audience                []string `json:"audience" example:"https://api.example.com"`
	RedirectURIs            []string `json:"redirect_uris" validate:"omitempty,dive,uri" example:"https://app.example.com/callback"`
	PostLogoutRedirectURIs  []string `json:"post_logout_redirect_uris" validate:"omitempty,dive,uri"`
	AllowedCORSOrigins      []string `json:"allowed_cors_origins"`
	SkipConsent             bool     `json:"skip_consent" example:"true"`
	Owner                   *string  `json:"owner,omitempty" example:"platform-team"`
	Description             *string  `json:"description,omitempty" example:"Issues invoices"`
	RoleIDs                 []string `json:"role_ids"`
	ScopeIDs                []string `json:"scope_ids"`
}
