// File: internal/handler/users/user.go
package users

import (
	"errors"
	"net/http"
	"strings"

	"auth-backend/internal/api"
	"auth-backend/internal/database"
	"auth-backend/internal/model"
	"auth-backend/internal/service"
	"auth-backend/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword       = service.HashPassword
	createUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	updateUser         = store.UpdateUser
	updateUserPassword = store.UpdateUserPassword
	deleteUser         = store.DeleteUser
)

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already registered"})
	default:
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	}
}

// CreateHandler 建立管理介面使用者
// @Summary     Create a user
// @Description Email 會自動轉為小寫
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.CreateUserRequest true "user"
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [post]
func CreateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to hash password"})
		}

		user := &model.User{
			Name:         req.Name,
			Email:        strings.ToLower(req.Email),
			PasswordHash: &hash,
			IsAdmin:      req.IsAdmin,
			IsActive:     true,
		}
		created, err := createUser(c.Request().Context(), db, user)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewUserResponse(created))
	}
}

// GetHandler 取得單一使用者
// @Summary     Get a user
// @Tags        users
// @Produce     json
// @Param       id path string true "user ID"
// @Success     200 {object} api.UserResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [get]
func GetHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := getUserByID(c.Request().Context(), db, c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// UpdateHandler 更新使用者
// @Summary     Update a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id path string true "user ID"
// @Param       request body api.UpdateUserRequest true "變更欄位"
// @Success     200 {object} api.UserResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [put]
func UpdateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		}

		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Email != nil {
			user.Email = strings.ToLower(*req.Email)
		}
		if req.IsAdmin != nil {
			user.IsAdmin = *req.IsAdmin
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		if err := updateUser(ctx, db, user); err != nil {
			return writeError(c, err)
		}
		if req.Password != nil {
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to hash password"})
			}
			if err := updateUserPassword(ctx, db, user.ID, hash); err != nil {
				return writeError(c, err)
			}
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// DeleteHandler 刪除使用者
// @Summary     Delete a user
// @Tags        users
// @Param       id path string true "user ID"
// @Success     204 "deleted"
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := deleteUser(c.Request().Context(), db, c.Param("id")); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
