// File: cmd/service/service.go
// @title        Auth Backend API
// @version      1.0
// @description  OAuth2 service account 管理與 Hydra 同步後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"auth-backend/internal/cache"
	"auth-backend/internal/database"
	"auth-backend/internal/hydra"
	"auth-backend/internal/router"
	"auth-backend/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "auth-backend/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

func run() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	hydraURL := os.Getenv("HYDRA_ADMIN_URL")
	if hydraURL == "" {
		return fmt.Errorf("環境變數 HYDRA_ADMIN_URL 未設定")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisIndex := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("無效的 REDIS_DB: %v", err)
		}
		redisIndex = i
	}

	workerCount := 4
	if v := os.Getenv("WORKER_COUNT"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c <= 0 {
			return fmt.Errorf("無效的 WORKER_COUNT: %v", err)
		}
		workerCount = c
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	db, err := newPgxPool(context.Background(), dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	redis, err := newRedisClient(redisAddr, redisPassword, redisIndex)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer redis.Close()

	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	hc := hydra.New(hydraURL, hydra.DefaultTimeout)

	wp := newWorkerPool(workerCount)
	defer wp.Stop()

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	router.Setup(e, db, redis, hc, wp)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, listenAddr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
