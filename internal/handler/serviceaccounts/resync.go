// File: internal/handler/serviceaccounts/resync.go
package serviceaccounts

import (
	"net/http"

	"auth-backend/internal/api"
	"auth-backend/internal/database"
	"auth-backend/internal/middleware"
	"auth-backend/internal/service"

	"github.com/labstack/echo/v4"
)

// ResyncHandler 手動修復單一帳號與 Hydra 的 drift
// @Summary     Resync a service account to Hydra
// @Description 遠端不存在就建立，存在就以本地狀態覆寫
// @Tags        service-accounts
// @Produce     json
// @Param       id path string true "service account ID"
// @Success     200 {object} api.ServiceAccountResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /service-accounts/{id}/sync [post]
func ResyncHandler(db database.DB, hc service.RegistryClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		sa, err := resyncServiceAccount(c.Request().Context(), db, hc, c.Param("id"), middleware.CallerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewServiceAccountResponse(sa))
	}
}
