package hydra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoginChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/oauth2/auth/requests/login":
			require.Equal(t, "abc", r.URL.Query().Get("login_challenge"))
			json.NewEncoder(w).Encode(LoginRequest{Challenge: "abc", RequestedScope: []string{"openid"}})
		case "/admin/oauth2/auth/requests/login/accept":
			var payload AcceptLoginPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			require.Equal(t, "user-1", payload.Subject)
			json.NewEncoder(w).Encode(CompletedRequest{RedirectTo: "https://idp/next"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	lr, err := c.GetLoginRequest(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, []string{"openid"}, lr.RequestedScope)

	completed, err := c.AcceptLoginRequest(context.Background(), "abc", &AcceptLoginPayload{Subject: "user-1"})
	require.NoError(t, err)
	require.Equal(t, "https://idp/next", completed.RedirectTo)
}

func TestConsentChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/oauth2/auth/requests/consent":
			json.NewEncoder(w).Encode(ConsentRequest{Challenge: "c1", RequestedScope: []string{"invoices:read"}})
		case "/admin/oauth2/auth/requests/consent/reject":
			var payload RejectPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			require.Equal(t, "access_denied", payload.Error)
			json.NewEncoder(w).Encode(CompletedRequest{RedirectTo: "https://idp/denied"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	cr, err := c.GetConsentRequest(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, []string{"invoices:read"}, cr.RequestedScope)

	completed, err := c.RejectConsentRequest(context.Background(), "c1", &RejectPayload{Error: "access_denied"})
	require.NoError(t, err)
	require.Equal(t, "https://idp/denied", completed.RedirectTo)
}

func TestLogoutChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/oauth2/auth/requests/logout":
			json.NewEncoder(w).Encode(LogoutRequest{Challenge: "l1", Subject: "user-1"})
		case "/admin/oauth2/auth/requests/logout/accept":
			json.NewEncoder(w).Encode(CompletedRequest{RedirectTo: "https://idp/out"})
		case "/admin/oauth2/auth/requests/logout/reject":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	lr, err := c.GetLogoutRequest(context.Background(), "l1")
	require.NoError(t, err)
	require.Equal(t, "user-1", lr.Subject)

	completed, err := c.AcceptLogoutRequest(context.Background(), "l1")
	require.NoError(t, err)
	require.Equal(t, "https://idp/out", completed.RedirectTo)

	require.NoError(t, c.RejectLogoutRequest(context.Background(), "l1"))
}

func TestChallengeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.GetLoginRequest(context.Background(), "gone")
	var ie *IntegrationError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, http.StatusNotFound, ie.StatusCode)
}
