// File: internal/model/service_account.go
package model

import "time"

// Service account 類型，決定可持有哪些 scope
const (
	AccountTypeServiceToService = "Service-to-service"
	AccountTypeBrowser          = "Browser"
)

// OAuth2 grant types 允許的固定集合
var AllowedGrantTypes = []string{
	"client_credentials",
	"authorization_code",
	"refresh_token",
	"implicit",
	"password",
}

// Token endpoint 認證方式允許值
var AllowedTokenEndpointAuthMethods = []string{
	"client_secret_basic",
	"client_secret_post",
	"private_key_jwt",
	"none",
}

// ServiceAccount 代表一個本地管理的 OAuth2 client。
// client_id 是跟遠端 registry 對應的唯一 join key；
// is_active 與管理欄位只存在本地，永遠不推送到 Hydra。
type ServiceAccount struct {
	ID                      string     `db:"id" json:"id"`
	ClientID                string     `db:"client_id" json:"client_id"`
	ClientSecret            *string    `db:"client_secret" json:"-"`
	ClientName              string     `db:"client_name" json:"client_name"`
	AccountType             string     `db:"account_type" json:"account_type"`
	GrantTypes              []string   `db:"grant_types" json:"grant_types"`
	ResponseTypes           []string   `db:"response_types" json:"response_types"`
	TokenEndpointAuthMethod string     `db:"token_endpoint_auth_method" json:"token_endpoint_auth_method"`
	Audience                []string   `db:"audience" json:"audience"`
	RedirectURIs            []string   `db:"redirect_uris" json:"redirect_uris"`
	PostLogoutRedirectURIs  []string   `db:"post_logout_redirect_uris" json:"post_logout_redirect_uris"`
	AllowedCORSOrigins      []string   `db:"allowed_cors_origins" json:"allowed_cors_origins"`
	SkipConsent             bool       `db:"skip_consent" json:"skip_consent"`
	IsActive                bool       `db:"is_active" json:"is_active"`
	Owner                   *string    `db:"owner" json:"owner,omitempty"`
	Description             *string    `db:"description" json:"description,omitempty"`
	CreatedBy               string     `db:"created_by" json:"created_by"`
	LastUsedAt              *time.Time `db:"last_used_at" json:"last_used_at,omitempty"`
	CreatedAt               time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at" json:"updated_at"`

	Roles  []Role  `json:"roles"`
	Scopes []Scope `json:"scopes"`
}

// ScopeNames 回傳已指派 scope 名稱列表
func (sa *ServiceAccount) ScopeNames() []string {
	names := make([]string, len(sa.Scopes))
	for i, s := range sa.Scopes {
		names[i] = s.Name
	}
	return names
}
