// File: internal/handler/serviceaccounts/serviceaccounts_test.go
package serviceaccounts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"auth-backend/internal/database"
	"auth-backend/internal/hydra"
	"auth-backend/internal/model"
	"auth-backend/internal/service"
	"auth-backend/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func restore() {
	createServiceAccount = service.CreateServiceAccount
	updateServiceAccount = service.UpdateServiceAccount
	deleteServiceAccount = service.DeleteServiceAccount
	assignRoleToServiceAccount = service.AssignRoleToServiceAccount
	removeRoleFromServiceAccount = service.RemoveRoleFromServiceAccount
	setServiceAccountActive = service.SetServiceAccountActive
	resyncServiceAccount = service.ResyncServiceAccount
	getServiceAccountByID = store.GetServiceAccountByID
	listServiceAccounts = store.ListServiceAccounts
}

func newJSONCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newIDCtx(e *echo.Echo, method, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/service-accounts/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/service-accounts/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func account(id, clientID string) *model.ServiceAccount {
	return &model.ServiceAccount{ID: id, ClientID: clientID, ClientName: clientID, IsActive: true}
}

func TestCreateHandler(t *testing.T) {
	e := echo.New()

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/service-accounts", "{")
		require.NoError(t, CreateHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid request body")
	})

	// 欄位驗證失敗是 422，與格式壞掉的 400 區分
	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("client_id required")}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/service-accounts", `{}`)
		require.NoError(t, CreateHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, _ *model.ServiceAccount, _, _ []string, _ bool, _ string) (*model.ServiceAccount, error) {
			return nil, store.ErrConflict
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/service-accounts", `{"client_id":"dup"}`)
		require.NoError(t, CreateHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), "client_id already exists")
	})

	// 領域規則違規（scope 不適用 account type 之類）回 422
	t.Run("domain validation failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, _ *model.ServiceAccount, _, _ []string, _ bool, _ string) (*model.ServiceAccount, error) {
			return nil, fmt.Errorf("scope %q does not apply to Service-to-service accounts: %w", "ui:session", service.ErrValidation)
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/service-accounts", `{"client_id":"x"}`)
		require.NoError(t, CreateHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "does not apply")
	})

	// Hydra 掛掉時回 503，本地已被回滾
	t.Run("hydra unavailable", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, _ *model.ServiceAccount, _, _ []string, _ bool, _ string) (*model.ServiceAccount, error) {
			return nil, &hydra.IntegrationError{Op: "create client", Err: errors.New("refused")}
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/service-accounts", `{"client_id":"x"}`)
		require.NoError(t, CreateHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("success applies defaults", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		var got *model.ServiceAccount
		var gotSync bool
		createServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, sa *model.ServiceAccount, _, _ []string, sync bool, _ string) (*model.ServiceAccount, error) {
			got = sa
			gotSync = sync
			sa.ID = "sa-1"
			return sa, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/service-accounts", `{"client_id":"billing-service"}`)
		require.NoError(t, CreateHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.True(t, gotSync)
		require.True(t, got.IsActive)
		require.Equal(t, []string{"client_credentials"}, got.GrantTypes)
		require.Equal(t, "client_secret_basic", got.TokenEndpointAuthMethod)
		require.Contains(t, rec.Body.String(), `"id":"sa-1"`)
		// secret 不回傳
		require.NotContains(t, rec.Body.String(), "client_secret")
	})

	t.Run("sync_to_hydra=false skips remote", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		var gotSync bool
		createServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, sa *model.ServiceAccount, _, _ []string, sync bool, _ string) (*model.ServiceAccount, error) {
			gotSync = sync
			return sa, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/service-accounts?sync_to_hydra=false", `{"client_id":"x"}`)
		require.NoError(t, CreateHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.False(t, gotSync)
	})
}

func TestGetHandler(t *testing.T) {
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getServiceAccountByID = func(_ context.Context, _ database.DB, _ string) (*model.ServiceAccount, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newIDCtx(e, http.MethodGet, "ghost")
		require.NoError(t, GetHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		t.Cleanup(restore)
		getServiceAccountByID = func(_ context.Context, _ database.DB, id string) (*model.ServiceAccount, error) {
			require.Equal(t, "sa-1", id)
			return account("sa-1", "billing-service"), nil
		}
		ctx, rec := newIDCtx(e, http.MethodGet, "sa-1")
		require.NoError(t, GetHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "billing-service")
	})
}

func TestListHandler(t *testing.T) {
	e := echo.New()

	t.Run("defaults and filters", func(t *testing.T) {
		t.Cleanup(restore)
		listServiceAccounts = func(_ context.Context, _ database.DB, skip, limit int, activeOnly bool, search string) ([]model.ServiceAccount, error) {
			require.Equal(t, 0, skip)
			require.Equal(t, 100, limit)
			require.True(t, activeOnly)
			require.Equal(t, "bill", search)
			return []model.ServiceAccount{*account("sa-1", "billing-service")}, nil
		}
		req := httptest.NewRequest(http.MethodGet, "/service-accounts?active_only=true&search=bill", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, ListHandler(nil)(e.NewContext(req, rec)))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "billing-service")
	})

	t.Run("list error", func(t *testing.T) {
		t.Cleanup(restore)
		listServiceAccounts = func(_ context.Context, _ database.DB, skip, limit int, activeOnly bool, search string) ([]model.ServiceAccount, error) {
			return nil, errors.New("db down")
		}
		req := httptest.NewRequest(http.MethodGet, "/service-accounts", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, ListHandler(nil)(e.NewContext(req, rec)))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestUpdateHandler(t *testing.T) {
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, _ string, _ *service.ServiceAccountUpdate, _ bool, _ string) (*model.ServiceAccount, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "/service-accounts/ghost", `{}`)
		ctx.SetParamNames("id")
		ctx.SetParamValues("ghost")
		require.NoError(t, UpdateHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	// 本地已 commit、遠端同步失敗：回 503，但 service 層不回滾
	t.Run("hydra failure after local commit", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, _ string, _ *service.ServiceAccountUpdate, _ bool, _ string) (*model.ServiceAccount, error) {
			return account("sa-1", "billing-service"), &hydra.IntegrationError{Op: "update client", Err: errors.New("refused")}
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "/service-accounts/sa-1", `{"client_name":"renamed"}`)
		ctx.SetParamNames("id")
		ctx.SetParamValues("sa-1")
		require.NoError(t, UpdateHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("success passes only set fields", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		var got *service.ServiceAccountUpdate
		updateServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, id string, update *service.ServiceAccountUpdate, _ bool, _ string) (*model.ServiceAccount, error) {
			require.Equal(t, "sa-1", id)
			got = update
			return account("sa-1", "billing-service"), nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "/service-accounts/sa-1", `{"client_name":"renamed","role_ids":[]}`)
		ctx.SetParamNames("id")
		ctx.SetParamValues("sa-1")
		require.NoError(t, UpdateHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got.ClientName)
		require.Equal(t, "renamed", *got.ClientName)
		require.Nil(t, got.Description)
		// 空陣列代表清空，與未提供（nil）不同
		require.NotNil(t, got.RoleIDs)
		require.Empty(t, got.RoleIDs)
		require.Nil(t, got.ScopeIDs)
	})
}

func TestDeleteHandler(t *testing.T) {
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		deleteServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, _ string, _ bool, _ string) error {
			return store.ErrNotFound
		}
		ctx, rec := newIDCtx(e, http.MethodDelete, "ghost")
		require.NoError(t, DeleteHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Cleanup(restore)
		deleteServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, id string, _ bool, _ string) error {
			require.Equal(t, "sa-1", id)
			return nil
		}
		ctx, rec := newIDCtx(e, http.MethodDelete, "sa-1")
		require.NoError(t, DeleteHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRoleHandlers(t *testing.T) {
	e := echo.New()

	newRoleCtx := func(method, id, roleID string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(method, "/service-accounts/"+id+"/roles/"+roleID, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/service-accounts/:id/roles/:role_id")
		c.SetParamNames("id", "role_id")
		c.SetParamValues(id, roleID)
		return c, rec
	}

	t.Run("assign", func(t *testing.T) {
		t.Cleanup(restore)
		assignRoleToServiceAccount = func(_ context.Context, _ database.DB, id, roleID, _ string) (*model.ServiceAccount, error) {
			require.Equal(t, "sa-1", id)
			require.Equal(t, "r-1", roleID)
			return account("sa-1", "billing-service"), nil
		}
		ctx, rec := newRoleCtx(http.MethodPost, "sa-1", "r-1")
		require.NoError(t, AssignRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	// 未指派回 400，與帳號不存在的 404 區分
	t.Run("remove not assigned", func(t *testing.T) {
		t.Cleanup(restore)
		removeRoleFromServiceAccount = func(_ context.Context, _ database.DB, _, _, _ string) (*model.ServiceAccount, error) {
			return nil, store.ErrNotAssigned
		}
		ctx, rec := newRoleCtx(http.MethodDelete, "sa-1", "r-1")
		require.NoError(t, RemoveRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "not assigned")
	})

	t.Run("remove from missing account", func(t *testing.T) {
		t.Cleanup(restore)
		removeRoleFromServiceAccount = func(_ context.Context, _ database.DB, _, _, _ string) (*model.ServiceAccount, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newRoleCtx(http.MethodDelete, "ghost", "r-1")
		require.NoError(t, RemoveRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestActiveHandlers(t *testing.T) {
	e := echo.New()

	t.Run("activate", func(t *testing.T) {
		t.Cleanup(restore)
		setServiceAccountActive = func(_ context.Context, _ database.DB, id string, active bool, _ string) (*model.ServiceAccount, error) {
			require.True(t, active)
			return account(id, "billing-service"), nil
		}
		ctx, rec := newIDCtx(e, http.MethodPost, "sa-1")
		require.NoError(t, ActivateHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("deactivate", func(t *testing.T) {
		t.Cleanup(restore)
		setServiceAccountActive = func(_ context.Context, _ database.DB, id string, active bool, _ string) (*model.ServiceAccount, error) {
			require.False(t, active)
			return account(id, "billing-service"), nil
		}
		ctx, rec := newIDCtx(e, http.MethodPost, "sa-1")
		require.NoError(t, DeactivateHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestResyncHandler(t *testing.T) {
	e := echo.New()

	t.Run("resynced", func(t *testing.T) {
		t.Cleanup(restore)
		resyncServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, id, _ string) (*model.ServiceAccount, error) {
			require.Equal(t, "sa-1", id)
			return account("sa-1", "billing-service"), nil
		}
		ctx, rec := newIDCtx(e, http.MethodPost, "sa-1")
		require.NoError(t, ResyncHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("hydra unavailable", func(t *testing.T) {
		t.Cleanup(restore)
		resyncServiceAccount = func(_ context.Context, _ database.DB, _ service.RegistryClient, _, _ string) (*model.ServiceAccount, error) {
			return nil, &hydra.IntegrationError{Op: "get client", Err: errors.New("refused")}
		}
		ctx, rec := newIDCtx(e, http.MethodPost, "sa-1")
		require.NoError(t, ResyncHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
