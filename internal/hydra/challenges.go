// File: internal/hydra/challenges.go
package hydra

import (
	"context"
	"net/http"
	"net/url"
)

// Challenge-based login/consent/logout hand-off. Hydra redirects the browser
// to this service with an opaque challenge; we look the request up, decide,
// and send the browser to the returned redirect_to.

type LoginRequest struct {
	Challenge      string      `json:"challenge"`
	Skip           bool        `json:"skip"`
	Subject        string      `json:"subject"`
	RequestedScope []string    `json:"requested_scope"`
	Client         OAuthClient `json:"client"`
}

type ConsentRequest struct {
	Challenge      string      `json:"challenge"`
	Skip           bool        `json:"skip"`
	Subject        string      `json:"subject"`
	RequestedScope []string    `json:"requested_scope"`
	Client         OAuthClient `json:"client"`
}

type LogoutRequest struct {
	Challenge string `json:"challenge"`
	Subject   string `json:"subject"`
	SessionID string `json:"sid"`
}

type AcceptLoginPayload struct {
	Subject     string         `json:"subject"`
	Remember    bool           `json:"remember,omitempty"`
	RememberFor int            `json:"remember_for,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
}

type AcceptConsentPayload struct {
	GrantScope               []string       `json:"grant_scope,omitempty"`
	GrantAccessTokenAudience []string       `json:"grant_access_token_audience,omitempty"`
	Remember                 bool           `json:"remember,omitempty"`
	RememberFor              int            `json:"remember_for,omitempty"`
	Session                  map[string]any `json:"session,omitempty"`
}

type RejectPayload struct {
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// CompletedRequest carries the URL Hydra wants the browser sent to next.
type CompletedRequest struct {
	RedirectTo string `json:"redirect_to"`
}

func challengeQuery(kind, challenge string) url.Values {
	q := url.Values{}
	q.Set(kind+"_challenge", challenge)
	return q
}

func (c *Client) GetLoginRequest(ctx context.Context, challenge string) (*LoginRequest, error) {
	var lr LoginRequest
	if _, err := c.do(ctx, "get login request", http.MethodGet, "/admin/oauth2/auth/requests/login", challengeQuery("login", challenge), nil, &lr, http.StatusOK); err != nil {
		return nil, err
	}
	return &lr, nil
}

func (c *Client) AcceptLoginRequest(ctx context.Context, challenge string, payload *AcceptLoginPayload) (*CompletedRequest, error) {
	var cr CompletedRequest
	if _, err := c.do(ctx, "accept login request", http.MethodPut, "/admin/oauth2/auth/requests/login/accept", challengeQuery("login", challenge), payload, &cr, http.StatusOK); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *Client) RejectLoginRequest(ctx context.Context, challenge string, payload *RejectPayload) (*CompletedRequest, error) {
	var cr CompletedRequest
	if _, err := c.do(ctx, "reject login request", http.MethodPut, "/admin/oauth2/auth/requests/login/reject", challengeQuery("login", challenge), payload, &cr, http.StatusOK); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *Client) GetConsentRequest(ctx context.Context, challenge string) (*ConsentRequest, error) {
	var cr ConsentRequest
	if _, err := c.do(ctx, "get consent request", http.MethodGet, "/admin/oauth2/auth/requests/consent", challengeQuery("consent", challenge), nil, &cr, http.StatusOK); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *Client) AcceptConsentRequest(ctx context.Context, challenge string, payload *AcceptConsentPayload) (*CompletedRequest, error) {
	var cr CompletedRequest
	if _, err := c.do(ctx, "accept consent request", http.MethodPut, "/admin/oauth2/auth/requests/consent/accept", challengeQuery("consent", challenge), payload, &cr, http.StatusOK); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *Client) RejectConsentRequest(ctx context.Context, challenge string, payload *RejectPayload) (*CompletedRequest, error) {
	var cr CompletedRequest
	if _, err := c.do(ctx, "reject consent request", http.MethodPut, "/admin/oauth2/auth/requests/consent/reject", challengeQuery("consent", challenge), payload, &cr, http.StatusOK); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *Client) GetLogoutRequest(ctx context.Context, challenge string) (*LogoutRequest, error) {
	var lr LogoutRequest
	if _, err := c.do(ctx, "get logout request", http.MethodGet, "/admin/oauth2/auth/requests/logout", challengeQuery("logout", challenge), nil, &lr, http.StatusOK); err != nil {
		return nil, err
	}
	return &lr, nil
}

func (c *Client) AcceptLogoutRequest(ctx context.Context, challenge string) (*CompletedRequest, error) {
	var cr CompletedRequest
	if _, err := c.do(ctx, "accept logout request", http.MethodPut, "/admin/oauth2/auth/requests/logout/accept", challengeQuery("logout", challenge), nil, &cr, http.StatusOK); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *Client) RejectLogoutRequest(ctx context.Context, challenge string) error {
	_, err := c.do(ctx, "reject logout request", http.MethodPut, "/admin/oauth2/auth/requests/logout/reject", challengeQuery("logout", challenge), nil, nil, http.StatusOK, http.StatusNoContent)
	return err
}
