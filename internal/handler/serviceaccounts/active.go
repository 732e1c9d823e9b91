// File: internal/handler/serviceaccounts/active.go
package serviceaccounts

import (
	"net/http"

	"auth-backend/internal/api"
	"auth-backend/internal/database"
	"auth-backend/internal/middleware"

	"github.com/labstack/echo/v4"
)

// ActivateHandler 啟用 service account
// @Summary     Activate a service account
// @Tags        service-accounts
// @Produce     json
// @Param       id path string true "service account ID"
// @Success     200 {object} api.ServiceAccountResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /service-accounts/{id}/activate [post]
func ActivateHandler(db database.DB) echo.HandlerFunc {
	return setActiveHandler(db, true)
}

// DeactivateHandler 停用 service account（只影響本地，不會移除 Hydra client）
// @Summary     Deactivate a service account
// @Tags        service-accounts
// @Produce     json
// @Param       id path string true "service account ID"
// @Success     200 {object} api.ServiceAccountResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /service-accounts/{id}/deactivate [post]
func DeactivateHandler(db database.DB) echo.HandlerFunc {
	return setActiveHandler(db, false)
}

func setActiveHandler(db database.DB, active bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		sa, err := setServiceAccountActive(c.Request().Context(), db, c.Param("id"), active, middleware.CallerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewServiceAccountResponse(sa))
	}
}
