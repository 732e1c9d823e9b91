// File: internal/handler/auth/consent.go
package auth

import (
	"net/http"

	"auth-backend/internal/api"
	"auth-backend/internal/hydra"

	"github.com/labstack/echo/v4"
)

// ConsentChallengeHandler 查詢 consent challenge。client 設定 skip_consent
// 或使用者先前已同意過時 Hydra 會標記 skip，此時以原本請求的 scope 直接接受
// @Summary     Look up a Hydra consent challenge
// @Tags        auth
// @Produce     json
// @Param       consent_challenge query string true "consent challenge"
// @Success     200 {object} api.ConsentChallengeResponse "或 api.RedirectResponse（skip 時）"
// @Failure     400 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /auth/consent [get]
func ConsentChallengeHandler(hc ChallengeClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		challenge := c.QueryParam("consent_challenge")
		if challenge == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing consent_challenge"})
		}

		ctx := c.Request().Context()
		consent, err := hc.GetConsentRequest(ctx, challenge)
		if err != nil {
			return challengeError(c, "consent", err)
		}

		if consent.Skip {
			completed, err := hc.AcceptConsentRequest(ctx, challenge, &hydra.AcceptConsentPayload{GrantScope: consent.RequestedScope})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
			}
			return c.JSON(http.StatusOK, api.RedirectResponse{RedirectTo: completed.RedirectTo})
		}

		return c.JSON(http.StatusOK, api.ConsentChallengeResponse{
			Challenge:      consent.Challenge,
			Subject:        consent.Subject,
			ClientID:       consent.Client.ClientID,
			ClientName:     consent.Client.ClientName,
			RequestedScope: consent.RequestedScope,
		})
	}
}

// ConsentHandler 處理 Hydra consent challenge
// @Summary     Handle a Hydra consent challenge
// @Description accept 為 true 時授與 grant_scopes，否則拒絕；回傳 redirect_to
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.ConsentRequest true "consent decision"
// @Success     200 {object} api.RedirectResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /auth/consent [post]
func ConsentHandler(hc ChallengeClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ConsentRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		}

		ctx := c.Request().Context()
		consent, err := hc.GetConsentRequest(ctx, req.Challenge)
		if err != nil {
			return challengeError(c, "consent", err)
		}

		if !req.Accept {
			completed, err := hc.RejectConsentRequest(ctx, req.Challenge, &hydra.RejectPayload{
				Error:            "access_denied",
				ErrorDescription: "user denied consent",
			})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
			}
			return c.JSON(http.StatusOK, api.RedirectResponse{RedirectTo: completed.RedirectTo})
		}

		grant := req.GrantScopes
		if grant == nil {
			grant = consent.RequestedScope
		}
		payload := &hydra.AcceptConsentPayload{
			GrantScope:  grant,
			Remember:    req.Remember,
			RememberFor: rememberSeconds,
		}
		completed, err := hc.AcceptConsentRequest(ctx, req.Challenge, payload)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, api.RedirectResponse{RedirectTo: completed.RedirectTo})
	}
}

// LogoutHandler 處理 Hydra logout challenge
// @Summary     Handle a Hydra logout challenge
// @Tags        auth
// @Produce     json
// @Param       logout_challenge query string true "logout challenge"
// @Success     200 {object} api.RedirectResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /auth/logout [get]
func LogoutHandler(hc ChallengeClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		challenge := c.QueryParam("logout_challenge")
		if challenge == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing logout_challenge"})
		}

		ctx := c.Request().Context()
		if _, err := hc.GetLogoutRequest(ctx, challenge); err != nil {
			return challengeError(c, "logout", err)
		}

		completed, err := hc.AcceptLogoutRequest(ctx, challenge)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, api.RedirectResponse{RedirectTo: completed.RedirectTo})
	}
}
