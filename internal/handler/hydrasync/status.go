// File: internal/handler/hydrasync/status.go
package hydrasync

import (
	"context"
	"net/http"

	"auth-backend/internal/api"
	"auth-backend/internal/cache"
	"auth-backend/internal/service"

	"github.com/labstack/echo/v4"
)

var lastSyncReport = service.LastSyncReport

// HealthChecker 是 status 端點需要的 Hydra 健康檢查介面
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// StatusHandler 回報 Hydra 連線狀態與最近一次同步報告
// @Summary     Hydra integration status
// @Tags        hydra
// @Produce     json
// @Success     200 {object} api.HydraStatusResponse
// @Security    ApiKeyAuth
// @Router      /hydra/status [get]
func StatusHandler(hc HealthChecker, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		resp := api.HydraStatusResponse{Reachable: hc.HealthCheck(ctx)}

		if last, err := lastSyncReport(ctx, cch); err == nil && last != nil {
			resp.LastSync = &api.SyncResultResponse{
				ClientsCreated: last.ClientsCreated,
				ClientsUpdated: last.ClientsUpdated,
				ClientsDeleted: last.ClientsDeleted,
				ScopesSynced:   last.ScopesSynced,
				Errors:         last.Errors,
				Success:        last.Success,
				SyncedAt:       last.SyncedAt,
			}
		}
		return c.JSON(http.StatusOK, resp)
	}
}
