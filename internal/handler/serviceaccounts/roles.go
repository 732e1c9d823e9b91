// File: internal/handler/serviceaccounts/roles.go
package serviceaccounts

import (
	"net/http"

	"auth-backend/internal/api"
	"auth-backend/internal/database"
	"auth-backend/internal/middleware"

	"github.com/labstack/echo/v4"
)

// AssignRoleHandler 指派 role 給 service account（重複指派視為成功）
// @Summary     Assign a role to a service account
// @Tags        service-accounts
// @Produce     json
// @Param       id      path string true "service account ID"
// @Param       role_id path string true "role ID"
// @Success     200 {object} api.ServiceAccountResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /service-accounts/{id}/roles/{role_id} [post]
func AssignRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		sa, err := assignRoleToServiceAccount(c.Request().Context(), db, c.Param("id"), c.Param("role_id"), middleware.CallerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewServiceAccountResponse(sa))
	}
}

// RemoveRoleHandler 從 service account 移除 role
// @Summary     Remove a role from a service account
// @Description 未指派的 role 回 400，與帳號不存在（404）區分
// @Tags        service-accounts
// @Produce     json
// @Param       id      path string true "service account ID"
// @Param       role_id path string true "role ID"
// @Success     200 {object} api.ServiceAccountResponse
// @Failure     400 {object} api.ErrorResponse "role 未指派"
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /service-accounts/{id}/roles/{role_id} [delete]
func RemoveRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		sa, err := removeRoleFromServiceAccount(c.Request().Context(), db, c.Param("id"), c.Param("role_id"), middleware.CallerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewServiceAccountResponse(sa))
	}
}
