// File: internal/handler/serviceaccounts/create.go
package serviceaccounts

import (
	"net/http"

	"auth-backend/internal/api"
	"auth-backend/internal/database"
	"auth-backend/internal/middleware"
	"auth-backend/internal/model"
	"auth-backend/internal/service"

	"github.com/labstack/echo/v4"
)

// CreateHandler 建立 service account 並註冊到 Hydra
// @Summary     Create a service account
// @Description 建立本地資料列並同步建立 Hydra client；遠端失敗時本地資料列會被回滾
// @Tags        service-accounts
// @Accept      json
// @Produce     json
// @Param       request body api.CreateServiceAccountRequest true "service account"
// @Param       sync_to_hydra query bool false "是否同步到 Hydra（預設 true）"
// @Success     201 {object} api.ServiceAccountResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse "client_id 已存在"
// @Failure     503 {object} api.ErrorResponse "Hydra 無法連線，本地未建立"
// @Security    ApiKeyAuth
// @Router      /service-accounts [post]
func CreateHandler(db database.DB, hc service.RegistryClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateServiceAccountRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		}

		sa := &model.ServiceAccount{
			ClientID:                req.ClientID,
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
			IsActive:                true,
			Owner:                   req.Owner,
			Description:             req.Description,
			CreatedBy:               middleware.CallerID(c),
		}
		if req.ClientSecret != "" {
			sa.ClientSecret = &req.ClientSecret
		}
		if sa.GrantTypes == nil {
			sa.GrantTypes = []string{"client_credentials"}
		}
		if sa.TokenEndpointAuthMethod == "" {
			sa.TokenEndpointAuthMethod = "client_secret_basic"
		}

		created, err := createServiceAccount(c.Request().Context(), db, hc, sa, req.RoleIDs, req.ScopeIDs, syncToHydra(c), middleware.CallerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewServiceAccountResponse(created))
	}
}
