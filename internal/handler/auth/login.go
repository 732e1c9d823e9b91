// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"auth-backend/internal/api"
	"auth-backend/internal/database"
	"auth-backend/internal/hydra"
	"auth-backend/internal/service"
	"auth-backend/internal/store"

	"github.com/labstack/echo/v4"
)

// ChallengeClient 是 login/consent/logout 流程所需的 Hydra challenge API 子集
type ChallengeClient interface {
	GetLoginRequest(ctx context.Context, challenge string) (*hydra.LoginRequest, error)
	AcceptLoginRequest(ctx context.Context, challenge string, payload *hydra.AcceptLoginPayload) (*hydra.CompletedRequest, error)
	RejectLoginRequest(ctx context.Context, challenge string, payload *hydra.RejectPayload) (*hydra.CompletedRequest, error)
	GetConsentRequest(ctx context.Context, challenge string) (*hydra.ConsentRequest, error)
	AcceptConsentRequest(ctx context.Context, challenge string, payload *hydra.AcceptConsentPayload) (*hydra.CompletedRequest, error)
	RejectConsentRequest(ctx context.Context, challenge string, payload *hydra.RejectPayload) (*hydra.CompletedRequest, error)
	GetLogoutRequest(ctx context.Context, challenge string) (*hydra.LogoutRequest, error)
	AcceptLogoutRequest(ctx context.Context, challenge string) (*hydra.CompletedRequest, error)
}

const rememberSeconds = 3600

var (
	getUserByEmail   = store.GetUserByEmail
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
)

// challengeError 把查詢 challenge 的失敗轉成回應：
// Hydra 回 404 代表 challenge 不存在或已用過，是呼叫端的錯
func challengeError(c echo.Context, kind string, err error) error {
	var ie *hydra.IntegrationError
	if errors.As(err, &ie) && ie.StatusCode == http.StatusNotFound {
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unknown " + kind + " challenge"})
	}
	return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
}

// LoginChallengeHandler 查詢 login challenge。Hydra 判定使用者已有 session
// （skip）時直接接受並回傳 redirect_to，否則回傳 challenge 內容讓前端出登入表單
// @Summary     Look up a Hydra login challenge
// @Tags        auth
// @Produce     json
// @Param       login_challenge query string true "login challenge"
// @Success     200 {object} api.LoginChallengeResponse "或 api.RedirectResponse（skip 時）"
// @Failure     400 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /auth/login [get]
func LoginChallengeHandler(hc ChallengeClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		challenge := c.QueryParam("login_challenge")
		if challenge == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing login_challenge"})
		}

		ctx := c.Request().Context()
		lr, err := hc.GetLoginRequest(ctx, challenge)
		if err != nil {
			return challengeError(c, "login", err)
		}

		if lr.Skip {
			completed, err := hc.AcceptLoginRequest(ctx, challenge, &hydra.AcceptLoginPayload{Subject: lr.Subject})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
			}
			return c.JSON(http.StatusOK, api.RedirectResponse{RedirectTo: completed.RedirectTo})
		}

		return c.JSON(http.StatusOK, api.LoginChallengeResponse{
			Challenge:      lr.Challenge,
			ClientID:       lr.Client.ClientID,
			ClientName:     lr.Client.ClientName,
			RequestedScope: lr.RequestedScope,
		})
	}
}

// LoginHandler 處理 Hydra login challenge：驗證帳密後接受或拒絕，
// 回傳瀏覽器下一步要去的 redirect_to
// @Summary     Handle a Hydra login challenge
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.LoginRequest true "credentials and challenge"
// @Success     200 {object} api.RedirectResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, hc ChallengeClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		}

		ctx := c.Request().Context()

		// challenge 必須真的存在於 Hydra
		if _, err := hc.GetLoginRequest(ctx, req.Challenge); err != nil {
			return challengeError(c, "login", err)
		}

		user, err := getUserByEmail(ctx, db, strings.ToLower(req.Email))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid credentials"})
		}
		authUser, err := authenticateUser(ctx, *user, req.Password)
		if err != nil {
			if _, rejErr := hc.RejectLoginRequest(ctx, req.Challenge, &hydra.RejectPayload{
				Error:            "access_denied",
				ErrorDescription: "invalid credentials",
			}); rejErr != nil {
				return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: rejErr.Error()})
			}
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid credentials"})
		}

		payload := &hydra.AcceptLoginPayload{Subject: authUser.ID}
		if req.Remember {
			payload.Remember = true
			payload.RememberFor = rememberSeconds
		}
		completed, err := hc.AcceptLoginRequest(ctx, req.Challenge, payload)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, api.RedirectResponse{RedirectTo: completed.RedirectTo})
	}
}

// TokenLoginHandler 管理介面直接登入：驗證帳密並回傳 JWT
// @Summary     Issue an admin API access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       email    formData string true "email"
// @Param       password formData string true "password"
// @Success     200 {object} api.TokenResponse
// @Failure     401 {object} api.ErrorResponse
// @Router      /auth/token [post]
func TokenLoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := strings.ToLower(c.FormValue("email"))
		password := c.FormValue("password")
		if email == "" || password == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "email and password required"})
		}

		ctx := c.Request().Context()
		user, err := getUserByEmail(ctx, db, email)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid credentials"})
		}
		authUser, err := authenticateUser(ctx, *user, password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid credentials"})
		}

		token, err := issueAccessToken(*authUser, time.Hour)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to issue token"})
		}
		return c.JSON(http.StatusOK, api.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresIn:   3600,
		})
	}
}
