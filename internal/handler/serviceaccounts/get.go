// File: internal/handler/serviceaccounts/get.go
package serviceaccounts

import (
	"net/http"
	"strconv"

	"auth-backend/internal/api"
	"auth-backend/internal/database"

	"github.com/labstack/echo/v4"
)

// GetHandler 取得單一 service account
// @Summary     Get a service account
// @Tags        service-accounts
// @Produce     json
// @Param       id path string true "service account ID"
// @Success     200 {object} api.ServiceAccountResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /service-accounts/{id} [get]
func GetHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		sa, err := getServiceAccountByID(c.Request().Context(), db, c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewServiceAccountResponse(sa))
	}
}

// ListHandler 列出 service accounts
// @Summary     List service accounts
// @Tags        service-accounts
// @Produce     json
// @Param       skip        query int    false "略過筆數"
// @Param       limit       query int    false "回傳上限（預設 100）"
// @Param       active_only query bool   false "只列出啟用中的帳號"
// @Param       search      query string false "模糊搜尋 client_id / client_name / description"
// @Success     200 {array} api.ServiceAccountResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /service-accounts [get]
func ListHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		skip, _ := strconv.Atoi(c.QueryParam("skip"))
		limit, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil || limit <= 0 {
			limit = 100
		}
		activeOnly := c.QueryParam("active_only") == "true"

		accounts, err := listServiceAccounts(c.Request().Context(), db, skip, limit, activeOnly, c.QueryParam("search"))
		if err != nil {
			return writeError(c, err)
		}
		resp := make([]api.ServiceAccountResponse, 0, len(accounts))
		for i := range accounts {
			resp = append(resp, api.NewServiceAccountResponse(&accounts[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}
