// File: internal/handler/scopes/scope.go
package scopes

import (
	"errors"
	"net/http"
	"strconv"

	"auth-backend/internal/api"
	"auth-backend/internal/database"
	"auth-backend/internal/model"
	"auth-backend/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createScope  = store.CreateScope
	getScopeByID = store.GetScopeByID
	listScopes   = store.ListScopes
	updateScope  = store.UpdateScope
	deleteScope  = store.DeleteScope
)

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "scope not found"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, api.ErrorResponse{Error: "scope name already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	}
}

// CreateHandler 建立 scope
// @Summary     Create a scope
// @Description applies_to 限定 "Service-to-service" 或 "Browser"，在 API 邊界驗證
// @Tags        scopes
// @Accept      json
// @Produce     json
// @Param       request body api.CreateScopeRequest true "scope"
// @Success     201 {object} api.ScopeResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /scopes [post]
func CreateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateScopeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		}

		scope := &model.Scope{Name: req.Name, Description: req.Description, IsActive: true}
		scope.SetAppliesToList(req.AppliesTo)
		if req.IsActive != nil {
			scope.IsActive = *req.IsActive
		}
		if err := createScope(c.Request().Context(), db, scope); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewScopeResponse(scope))
	}
}

// GetHandler 取得單一 scope
// @Summary     Get a scope
// @Tags        scopes
// @Produce     json
// @Param       id path string true "scope ID"
// @Success     200 {object} api.ScopeResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /scopes/{id} [get]
func GetHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		scope, err := getScopeByID(c.Request().Context(), db, c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewScopeResponse(scope))
	}
}

// ListHandler 列出 scopes
// @Summary     List scopes
// @Tags        scopes
// @Produce     json
// @Param       skip        query int  false "略過筆數"
// @Param       limit       query int  false "回傳上限（預設 100）"
// @Param       active_only query bool false "只列出啟用中的 scope"
// @Success     200 {array} api.ScopeResponse
// @Security    ApiKeyAuth
// @Router      /scopes [get]
func ListHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		skip, _ := strconv.Atoi(c.QueryParam("skip"))
		limit, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil || limit <= 0 {
			limit = 100
		}
		activeOnly := c.QueryParam("active_only") == "true"
		list, err := listScopes(c.Request().Context(), db, skip, limit, activeOnly)
		if err != nil {
			return writeError(c, err)
		}
		resp := make([]api.ScopeResponse, 0, len(list))
		for i := range list {
			resp = append(resp, api.NewScopeResponse(&list[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// UpdateHandler 更新 scope
// @Summary     Update a scope
// @Tags        scopes
// @Accept      json
// @Produce     json
// @Param       id path string true "scope ID"
// @Param       request body api.UpdateScopeRequest true "變更欄位"
// @Success     200 {object} api.ScopeResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /scopes/{id} [put]
func UpdateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateScopeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		}

		ctx := c.Request().Context()
		scope, err := getScopeByID(ctx, db, c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		if req.Name != nil {
			scope.Name = *req.Name
		}
		if req.Description != nil {
			scope.Description = *req.Description
		}
		if req.AppliesTo != nil {
			scope.SetAppliesToList(req.AppliesTo)
		}
		if req.IsActive != nil {
			scope.IsActive = *req.IsActive
		}
		if err := updateScope(ctx, db, scope); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewScopeResponse(scope))
	}
}

// DeleteHandler 刪除 scope
// @Summary     Delete a scope
// @Tags        scopes
// @Param       id path string true "scope ID"
// @Success     204 "deleted"
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /scopes/{id} [delete]
func DeleteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := deleteScope(c.Request().Context(), db, c.Param("id")); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
