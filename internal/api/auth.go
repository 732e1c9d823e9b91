// File: internal/api/auth.go
package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email     string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password  string `json:"password" form:"password" validate:"required" example:"Secret123!"`
	Challenge string `json:"challenge" form:"challenge" validate:"required" example:"a1b2c3"`
	Remember  bool   `json:"remember" form:"remember"`
}

// swagger:model api.ConsentRequest
type ConsentRequest struct {
	Challenge   string   `json:"challenge" form:"challenge" validate:"required" example:"a1b2c3"`
	GrantScopes []string `json:"grant_scopes" form:"grant_scopes"`
	Remember    bool     `json:"remember" form:"remember"`
	Accept      bool     `json:"accept" form:"accept"`
}

// swagger:model api.LoginChallengeResponse
// GET /auth/login 在 challenge 不能 skip 時回傳的 challenge 內容
type LoginChallengeResponse struct {
	Challenge      string   `json:"challenge"`
	ClientID       string   `json:"client_id"`
	ClientName     string   `json:"client_name"`
	RequestedScope []string `json:"requested_scope"`
}

// swagger:model api.ConsentChallengeResponse
type ConsentChallengeResponse struct {
	Challenge      string   `json:"challenge"`
	Subject        string   `json:"subject"`
	ClientID       string   `json:"client_id"`
	ClientName     string   `json:"client_name"`
	RequestedScope []string `json:"requested_scope"`
}

// swagger:model api.RedirectResponse
type RedirectResponse struct {
	RedirectTo string `json:"redirect_to" example:"https://idp.example.com/oauth2/auth?..."`
}

// swagger:model api.TokenResponse
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int    `json:"expires_in" example:"3600"`
}
