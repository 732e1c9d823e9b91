// File: internal/handler/auditlogs/audit_log.go
package auditlogs

import (
	"net/http"
	"strconv"

	"auth-backend/internal/api"
	"auth-backend/internal/database"
	"auth-backend/internal/store"

	"github.com/labstack/echo/v4"
)

var listAuditLogs = store.ListAuditLogs

// ListHandler 列出稽核紀錄
// @Summary     List audit logs
// @Tags        audit-logs
// @Produce     json
// @Param       resource_type query string false "依 resource type 過濾"
// @Param       resource_id   query string false "依 resource ID 過濾"
// @Param       limit         query int    false "回傳上限（預設 100）"
// @Success     200 {array} api.AuditLogResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /audit-logs [get]
func ListHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil || limit <= 0 {
			limit = 100
		}
		logs, err := listAuditLogs(c.Request().Context(), db, c.QueryParam("resource_type"), c.QueryParam("resource_id"), limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		}
		resp := make([]api.AuditLogResponse, 0, len(logs))
		for i := range logs {
			resp = append(resp, api.NewAuditLogResponse(&logs[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}
