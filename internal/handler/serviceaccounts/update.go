// File: internal/handler/serviceaccounts/update.go
package serviceaccounts

import (
	"net/http"

	"auth-backend/internal/api"
	"auth-backend/internal/database"
	"auth-backend/internal/middleware"
	"auth-backend/internal/service"

	"github.com/labstack/echo/v4"
)

// UpdateHandler 部分更新 service account 並推送到 Hydra
// @Summary     Update a service account
// @Description 本地更新先 commit；Hydra 同步失敗回 503，此時「本地已變更、遠端可能過期」，可用 resync 修復
// @Tags        service-accounts
// @Accept      json
// @Produce     json
// @Param       id path string true "service account ID"
// @Param       request body api.UpdateServiceAccountRequest true "變更欄位"
// @Param       sync_to_hydra query bool false "是否同步到 Hydra（預設 true）"
// @Success     200 {object} api.ServiceAccountResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse "本地已更新，Hydra 同步失敗"
// @Security    ApiKeyAuth
// @Router      /service-accounts/{id} [put]
func UpdateHandler(db database.DB, hc service.RegistryClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateServiceAccountRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		}

		update := &service.ServiceAccountUpdate{
			ClientSecret:            req.ClientSecret,
			ClientName:              req.ClientName,
			AccountType:             req.AccountType,
			GrantTypes:              req.GrantTypes,
			ResponseTypes:           req.ResponseTypes,
			TokenEndpointAuthMethod: req.TokenEndpointAuthMethod,
			Audience:                req.Audience,
			RedirectURIs:            req.RedirectURIs,
			PostLogoutRedirectURIs:  req.PostLogoutRedirectURIs,
			AllowedCORSOrigins:      req.AllowedCORSOrigins,
			SkipConsent:             req.SkipConsent,
			IsActive:                req.IsActive,
			Owner:                   req.Owner,
			Description:             req.Description,
			RoleIDs:                 req.RoleIDs,
			ScopeIDs:                req.ScopeIDs,
		}

		updated, err := updateServiceAccount(c.Request().Context(), db, hc, c.Param("id"), update, syncToHydra(c), middleware.CallerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewServiceAccountResponse(updated))
	}
}
