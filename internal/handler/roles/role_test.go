// File: internal/handler/roles/role_test.go
package roles

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"auth-backend/internal/database"
	"auth-backend/internal/model"
	"auth-backend/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func restore() {
	createRole = store.CreateRole
	getRoleByID = store.GetRoleByID
	listRoles = store.ListRoles
	updateRole = store.UpdateRole
	deleteRole = store.DeleteRole
}

func newJSONCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateHandler(t *testing.T) {
	e := echo.New()

	t.Run("duplicate name", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createRole = func(_ context.Context, _ database.DB, _ *model.Role) error {
			return store.ErrConflict
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/roles", `{"name":"admin"}`)
		require.NoError(t, CreateHandler(nil)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("created", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createRole = func(_ context.Context, _ database.DB, r *model.Role) error {
			require.Equal(t, "billing-admin", r.Name)
			r.ID = "r-1"
			return nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/roles", `{"name":"billing-admin"}`)
		require.NoError(t, CreateHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":"r-1"`)
	})
}

func TestGetHandler(t *testing.T) {
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getRoleByID = func(_ context.Context, _ database.DB, _ string) (*model.Role, error) {
			return nil, store.ErrNotFound
		}
		req := httptest.NewRequest(http.MethodGet, "/roles/ghost", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		ctx.SetParamNames("id")
		ctx.SetParamValues("ghost")
		require.NoError(t, GetHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateHandler(t *testing.T) {
	e := echo.New()

	t.Run("only provided fields change", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getRoleByID = func(_ context.Context, _ database.DB, id string) (*model.Role, error) {
			return &model.Role{ID: id, Name: "old", Description: "keep"}, nil
		}
		var saved *model.Role
		updateRole = func(_ context.Context, _ database.DB, r *model.Role) error {
			saved = r
			return nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "/roles/r-1", `{"name":"new"}`)
		ctx.SetParamNames("id")
		ctx.SetParamValues("r-1")
		require.NoError(t, UpdateHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "new", saved.Name)
		require.Equal(t, "keep", saved.Description)
	})
}

func TestDeleteHandler(t *testing.T) {
	e := echo.New()

	t.Run("deleted", func(t *testing.T) {
		t.Cleanup(restore)
		deleteRole = func(_ context.Context, _ database.DB, id string) error {
			require.Equal(t, "r-1", id)
			return nil
		}
		req := httptest.NewRequest(http.MethodDelete, "/roles/r-1", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		ctx.SetParamNames("id")
		ctx.SetParamValues("r-1")
		require.NoError(t, DeleteHandler(nil)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		deleteRole = func(_ context.Context, _ database.DB, _ string) error {
			return store.ErrNotFound
		}
		req := httptest.NewRequest(http.MethodDelete, "/roles/ghost", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		ctx.SetParamNames("id")
		ctx.SetParamValues("ghost")
		require.NoError(t, DeleteHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListHandler(t *testing.T) {
	e := echo.New()

	t.Cleanup(restore)
	listRoles = func(_ context.Context, _ database.DB, skip, limit int) ([]model.Role, error) {
		require.Equal(t, 0, skip)
		require.Equal(t, 100, limit)
		return []model.Role{{ID: "r-1", Name: "billing-admin"}}, nil
	}
	req := httptest.NewRequest(http.MethodGet, "/roles", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ListHandler(nil)(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "billing-admin")
}
