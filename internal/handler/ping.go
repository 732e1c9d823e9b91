// File: internal/handler/ping.go
package handler

import (
	"errors"
	"net/http"

	"auth-backend/internal/api"
	"auth-backend/internal/cache"
	"auth-backend/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與快取連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "database unhealthy"})
		}
		if err := cch.Get(ctx, "ping").Err(); err != nil && !errors.Is(err, redis.Nil) {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
