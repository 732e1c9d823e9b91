// File: internal/handler/hydrasync/sync.go
package hydrasync

import (
	"net/http"

	"auth-backend/internal/cache"
	"auth-backend/internal/database"
	"auth-backend/internal/middleware"
	"auth-backend/internal/service"
	"auth-backend/internal/worker"

	"github.com/labstack/echo/v4"
)

var syncAll = service.SyncAll

// SyncHandler 觸發一次完整 reconciliation
// @Summary     Sync all service accounts to Hydra
// @Description 以資料庫為事實來源收斂 Hydra 的 client 集合。單項失敗不中斷，
// @Description 一律回 200，結果裡的 success 與 errors 描述實際狀況
// @Tags        hydra
// @Produce     json
// @Success     200 {object} api.SyncResultResponse
// @Security    ApiKeyAuth
// @Router      /hydra/sync [post]
func SyncHandler(db database.DB, hc service.RegistryClient, wp worker.Pool, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		result := syncAll(c.Request().Context(), db, hc, wp, cch, middleware.CallerID(c))
		return c.JSON(http.StatusOK, result)
	}
}
