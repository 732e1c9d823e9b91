// File: internal/hydra/types.go
package hydra

// OAuthClient is the wire representation of an OAuth2 client in the Hydra
// admin API. Only fields this service manages are mapped; scope is a single
// space-delimited string on the wire.
type OAuthClient struct {
	ClientID                 string         `json:"client_id"`
	ClientSecret             string         `json:"client_secret,omitempty"`
	ClientName               string         `json:"client_name,omitempty"`
	GrantTypes               []string       `json:"grant_types,omitempty"`
	ResponseTypes            []string       `json:"response_types,omitempty"`
	Scope                    string         `json:"scope,omitempty"`
	TokenEndpointAuthMethod  string         `json:"token_endpoint_auth_method,omitempty"`
	Audience                 []string       `json:"audience,omitempty"`
	Owner                    string         `json:"owner,omitempty"`
	Metadata                 map[string]any `json:"metadata,omitempty"`
	RedirectURIs             []string       `json:"redirect_uris,omitempty"`
	PostLogoutRedirectURIs   []string       `json:"post_logout_redirect_uris,omitempty"`
	AllowedCORSOrigins       []string       `json:"allowed_cors_origins,omitempty"`
	SkipConsent              bool           `json:"skip_consent"`
	JSONWebKeys              map[string]any `json:"jwks,omitempty"`
	JSONWebKeysURI           string         `json:"jwks_uri,omitempty"`
	IDTokenSignedResponseAlg string         `json:"id_token_signed_response_alg,omitempty"`
}
