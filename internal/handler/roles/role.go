// File: internal/handler/roles/role.go
package roles

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
	createRole  = store.CreateRole
	getRoleByID = store.GetRoleByID
	listRoles   = store.ListRoles
	updateRole  = store.UpdateRole
	deleteRole  = store.DeleteRole
)

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "role not found"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, api.ErrorResponse{Error: "role name already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	}
}

// CreateHandler 建立 role
// @Summary     Create a role
// @Tags        roles
// @Accept      json
// @Produce     json
// @Param       request body api.CreateRoleRequest true "role"
// @Success     201 {object} api.RoleResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /roles [post]
func CreateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateRoleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		}

		role := &model.Role{Name: req.Name, Description: req.Description}
		if err := createRole(c.Request().Context(), db, role); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewRoleResponse(role))
	}
}

// GetHandler 取得單一 role
// @Summary     Get a role
// @Tags        roles
// @Produce     json
// @Param       id path string true "role ID"
// @Success     200 {object} api.RoleResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /roles/{id} [get]
func GetHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, err := getRoleByID(c.Request().Context(), db, c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewRoleResponse(role))
	}
}

// ListHandler 列出 roles
// @Summary     List roles
// @Tags        roles
// @Produce     json
// @Param       skip  query int false "略過筆數"
// @Param       limit query int false "回傳上限（預設 100）"
// @Success     200 {array} api.RoleResponse
// @Security    ApiKeyAuth
// @Router      /roles [get]
func ListHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		skip, _ := strconv.Atoi(c.QueryParam("skip"))
		limit, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil || limit <= 0 {
			limit = 100
		}
		list, err := listRoles(c.Request().Context(), db, skip, limit)
		if err != nil {
			return writeError(c, err)
		}
		resp := make([]api.RoleResponse, 0, len(list))
		for i := range list {
			resp = append(resp, api.NewRoleResponse(&list[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// UpdateHandler 更新 role
// @Summary     Update a role
// @Tags        roles
// @Accept      json
// @Produce     json
// @Param       id path string true "role ID"
// @Param       request body api.UpdateRoleRequest true "變更欄位"
// @Success     200 {object} api.RoleResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /roles/{id} [put]
func UpdateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateRoleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		}

		ctx := c.Request().Context()
		role, err := getRoleByID(ctx, db, c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		if req.Name != nil {
			role.Name = *req.Name
		}
		if req.Description != nil {
			role.Description = *req.Description
		}
		if err := updateRole(ctx, db, role); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewRoleResponse(role))
	}
}

// DeleteHandler 刪除 role
// @Summary     Delete a role
// @Tags        roles
// @Param       id path string true "role ID"
// @Success     204 "deleted"
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /roles/{id} [delete]
func DeleteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := deleteRole(c.Request().Context(), db, c.Param("id")); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
