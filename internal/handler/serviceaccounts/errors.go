// File: internal/handler/serviceaccounts/errors.go
package serviceaccounts

import (
	"errors"
	"net/http"

	"auth-backend/internal/api"
	"auth-backend/internal/hydra"
	"auth-backend/internal/service"
	"auth-backend/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createServiceAccount         = service.CreateServiceAccount
	updateServiceAccount         = service.UpdateServiceAccount
	deleteServiceAccount         = service.DeleteServiceAccount
	assignRoleToServiceAccount   = service.AssignRoleToServiceAccount
	removeRoleFromServiceAccount = service.RemoveRoleFromServiceAccount
	setServiceAccountActive      = service.SetServiceAccountActive
	resyncServiceAccount         = service.ResyncServiceAccount
	getServiceAccountByID        = store.GetServiceAccountByID
	listServiceAccounts          = store.ListServiceAccounts
)

// writeError 把 service/store 層的錯誤轉成對應的 HTTP 回應。
// IntegrationError 一律 503：呼叫端要自行判讀本地是否已變更。
func writeError(c echo.Context, err error) error {
	var ie *hydra.IntegrationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "service account not found"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, api.ErrorResponse{Error: "client_id already exists"})
	case errors.Is(err, store.ErrNotAssigned):
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "role not assigned to service account"})
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
	case errors.As(err, &ie):
		return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	}
}

// syncToHydra 讀取 sync_to_hydra query 參數，預設 true
func syncToHydra(c echo.Context) bool {
	return c.QueryParam("sync_to_hydra") != "false"
}
