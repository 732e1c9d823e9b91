// File: internal/handler/serviceaccounts/delete.go
package serviceaccounts

import (
	"net/http"

	"auth-backend/internal/database"
	"auth-backend/internal/middleware"
	"auth-backend/internal/service"

	"github.com/labstack/echo/v4"
)

// DeleteHandler 刪除 service account
// @Summary     Delete a service account
// @Description 先嘗試刪除 Hydra client（best-effort），再刪除本地資料列與關聯
// @Tags        service-accounts
// @Param       id path string true "service account ID"
// @Param       sync_to_hydra query bool false "是否同步到 Hydra（預設 true）"
// @Success     204 "deleted"
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /service-accounts/{id} [delete]
func DeleteHandler(db database.DB, hc service.RegistryClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := deleteServiceAccount(c.Request().Context(), db, hc, c.Param("id"), syncToHydra(c), middleware.CallerID(c)); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
