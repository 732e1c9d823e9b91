// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"auth-backend/internal/cache"
	"auth-backend/internal/database"
	"auth-backend/internal/handler"
	"auth-backend/internal/handler/auditlogs"
	"auth-backend/internal/handler/auth"
	"auth-backend/internal/handler/hydrasync"
	"auth-backend/internal/handler/roles"
	"auth-backend/internal/handler/scopes"
	"auth-backend/internal/handler/serviceaccounts"
	"auth-backend/internal/handler/users"
	"auth-backend/internal/hydra"
	"auth-backend/internal/middleware"
	"auth-backend/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, hc *hydra.Client, wp worker.Pool) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, cch))

	// OAuth2 login/consent/logout challenge 流程（瀏覽器由 Hydra 導過來）。
	// GET 查詢 challenge（skip 時直接接受），POST 送出決定
	api.GET("/auth/login", auth.LoginChallengeHandler(hc))
	api.POST("/auth/login", auth.LoginHandler(db, hc))
	api.GET("/auth/consent", auth.ConsentChallengeHandler(hc))
	api.POST("/auth/consent", auth.ConsentHandler(hc))
	api.GET("/auth/logout", auth.LogoutHandler(hc))
	api.POST("/auth/logout", auth.LogoutHandler(hc))
	api.POST("/auth/token", auth.TokenLoginHandler(db))

	// Service accounts CRUD 與 Hydra 同步
	apiSA := api.Group("/service-accounts", middleware.RequireAdmin)
	apiSA.POST("", serviceaccounts.CreateHandler(db, hc))
	apiSA.GET("", serviceaccounts.ListHandler(db))
	apiSA.GET("/:id", serviceaccounts.GetHandler(db))
	apiSA.PUT("/:id", serviceaccounts.UpdateHandler(db, hc))
	apiSA.DELETE("/:id", serviceaccounts.DeleteHandler(db, hc))
	apiSA.POST("/:id/roles/:role_id", serviceaccounts.AssignRoleHandler(db))
	apiSA.DELETE("/:id/roles/:role_id", serviceaccounts.RemoveRoleHandler(db))
	apiSA.POST("/:id/activate", serviceaccounts.ActivateHandler(db))
	apiSA.POST("/:id/deactivate", serviceaccounts.DeactivateHandler(db))
	apiSA.POST("/:id/sync", serviceaccounts.ResyncHandler(db, hc))

	// 全量 reconciliation 與整合狀態
	apiHydra := api.Group("/hydra", middleware.RequireAdmin)
	apiHydra.POST("/sync", hydrasync.SyncHandler(db, hc, wp, cch))
	apiHydra.GET("/status", hydrasync.StatusHandler(hc, cch))

	// Roles CRUD
	apiRoles := api.Group("/roles", middleware.RequireAdmin)
	apiRoles.POST("", roles.CreateHandler(db))
	apiRoles.GET("", roles.ListHandler(db))
	apiRoles.GET("/:id", roles.GetHandler(db))
	apiRoles.PUT("/:id", roles.UpdateHandler(db))
	apiRoles.DELETE("/:id", roles.DeleteHandler(db))

	// Scopes CRUD
	apiScopes := api.Group("/scopes", middleware.RequireAdmin)
	apiScopes.POST("", scopes.CreateHandler(db))
	apiScopes.GET("", scopes.ListHandler(db))
	apiScopes.GET("/:id", scopes.GetHandler(db))
	apiScopes.PUT("/:id", scopes.UpdateHandler(db))
	apiScopes.DELETE("/:id", scopes.DeleteHandler(db))

	// 管理員專屬 Users CRUD
	apiUsers := api.Group("/users", middleware.RequireAdmin)
	apiUsers.POST("", users.CreateHandler(db))
	apiUsers.GET("/:id", users.GetHandler(db))
	apiUsers.PUT("/:id", users.UpdateHandler(db))
	apiUsers.DELETE("/:id", users.DeleteHandler(db))

	// 稽核紀錄（唯讀）
	api.GET("/audit-logs", auditlogs.ListHandler(db), middleware.RequireAdmin)
}
