package hydra

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateClient(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/admin/clients", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var in OAuthClient
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			require.Equal(t, "billing-service", in.ClientID)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(in)
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		created, err := c.CreateClient(context.Background(), &OAuthClient{ClientID: "billing-service"})
		require.NoError(t, err)
		require.Equal(t, "billing-service", created.ClientID)
	})

	t.Run("conflict becomes IntegrationError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"client exists"}`, http.StatusConflict)
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		_, err := c.CreateClient(context.Background(), &OAuthClient{ClientID: "dup"})
		require.Error(t, err)
		var ie *IntegrationError
		require.ErrorAs(t, err, &ie)
		require.Equal(t, http.StatusConflict, ie.StatusCode)
		require.Contains(t, ie.Body, "client exists")
	})

	t.Run("transport failure wraps error", func(t *testing.T) {
		c := New("http://127.0.0.1:1", time.Second)
		_, err := c.CreateClient(context.Background(), &OAuthClient{ClientID: "x"})
		var ie *IntegrationError
		require.ErrorAs(t, err, &ie)
		require.NotNil(t, ie.Err)
		require.ErrorIs(t, err, ie.Err)
	})
}

func TestGetClient(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/admin/clients/svc-a", r.URL.Path)
			json.NewEncoder(w).Encode(OAuthClient{ClientID: "svc-a", ClientName: "Service A"})
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		got, err := c.GetClient(context.Background(), "svc-a")
		require.NoError(t, err)
		require.Equal(t, "Service A", got.ClientName)
	})

	// 404 是「不存在」，不是錯誤
	t.Run("absent returns nil nil", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		got, err := c.GetClient(context.Background(), "ghost")
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		_, err := c.GetClient(context.Background(), "svc-a")
		var ie *IntegrationError
		require.ErrorAs(t, err, &ie)
		require.Equal(t, http.StatusInternalServerError, ie.StatusCode)
	})
}

func TestUpdateClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/clients/svc-a", r.URL.Path)
		var in OAuthClient
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	updated, err := c.UpdateClient(context.Background(), "svc-a", &OAuthClient{ClientID: "svc-a", Scope: "invoices:read"})
	require.NoError(t, err)
	require.Equal(t, "invoices:read", updated.Scope)
}

func TestDeleteClient(t *testing.T) {
	// 204、404 都視為刪除成功
	for name, status := range map[string]int{"deleted": http.StatusNoContent, "already gone": http.StatusNotFound} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				w.WriteHeader(status)
			}))
			defer srv.Close()

			c := New(srv.URL, time.Second)
			require.NoError(t, c.DeleteClient(context.Background(), "svc-a"))
		})
	}

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		require.Error(t, c.DeleteClient(context.Background(), "svc-a"))
	})
}

func TestListClients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "25", r.URL.Query().Get("limit"))
		require.Equal(t, "50", r.URL.Query().Get("offset"))
		json.NewEncoder(w).Encode([]OAuthClient{{ClientID: "a"}, {ClientID: "b"}})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	clients, err := c.ListClients(context.Background(), 25, 50)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	require.Equal(t, "a", clients[0].ClientID)
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health/ready", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	require.True(t, c.HealthCheck(context.Background()))

	down := New("http://127.0.0.1:1", time.Second)
	require.False(t, down.HealthCheck(context.Background()))
}

func TestIntegrationErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &IntegrationError{Op: "op", Err: inner}
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "op")

	statusErr := &IntegrationError{Op: "get client", StatusCode: 500, Body: "oops"}
	require.Contains(t, statusErr.Error(), "status 500")
}
