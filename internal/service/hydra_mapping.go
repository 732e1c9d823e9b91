// File: internal/service/hydra_mapping.go
package service

import (
	"strings"

	"auth-backend/internal/hydra"
	"auth-backend/internal/model"
)

// ServiceAccountToHydraClient derives the remote client object from the local
// row and its scope associations. The database is the source of truth: the
// mapping is one-way, and local-only fields (is_active, created_by, audit
// metadata) never appear in the payload.
func ServiceAccountToHydraClient(sa *model.ServiceAccount) *hydra.OAuthClient {
	client := &hydra.OAuthClient{
		ClientID:                sa.ClientID,
		ClientName:              sa.ClientName,
		GrantTypes:              sa.GrantTypes,
		ResponseTypes:           sa.ResponseTypes,
		Scope:                   strings.Join(sa.ScopeNames(), " "),
		TokenEndpointAuthMethod: sa.TokenEndpointAuthMethod,
		Audience:                sa.Audience,
		RedirectURIs:            sa.RedirectURIs,
		PostLogoutRedirectURIs:  sa.PostLogoutRedirectURIs,
		AllowedCORSOrigins:      sa.AllowedCORSOrigins,
		SkipConsent:             sa.SkipConsent,
		Metadata:                map[string]any{"account_type": sa.AccountType},
	}
	if sa.ClientSecret != nil && sa.TokenEndpointAuthMethod != "none" {
		client.ClientSecret = *sa.ClientSecret
	}
	if sa.Owner != nil {
		client.Owner = *sa.Owner
	}
	return client
}

// NeedsUpdate reports whether the remote object drifted from the local-derived
// payload on any compared field. 列表欄位以集合比較，不比順序。
func NeedsUpdate(local, remote *hydra.OAuthClient) bool {
	if local.ClientName != remote.ClientName {
		return true
	}
	if local.Scope != remote.Scope {
		return true
	}
	if local.TokenEndpointAuthMethod != remote.TokenEndpointAuthMethod {
		return true
	}
	if local.SkipConsent != remote.SkipConsent {
		return true
	}
	for _, pair := range [][2][]string{
		{local.GrantTypes, remote.GrantTypes},
		{local.ResponseTypes, remote.ResponseTypes},
		{local.RedirectURIs, remote.RedirectURIs},
		{local.Audience, remote.Audience},
		{local.AllowedCORSOrigins, remote.AllowedCORSOrigins},
		{local.PostLogoutRedirectURIs, remote.PostLogoutRedirectURIs},
	} {
		if !equalStringSets(pair[0], pair[1]) {
			return true
		}
	}
	return false
}

func equalStringSets(a, b []string) bool {
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, v := range b {
		other[v] = struct{}{}
	}
	if len(seen) != len(other) {
		return false
	}
	for v := range seen {
		if _, ok := other[v]; !ok {
			return false
		}
	}
	return true
}
