// File: internal/service/serviceaccount.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"auth-backend/internal/database"
	"auth-backend/internal/hydra"
	"auth-backend/internal/model"
	"auth-backend/internal/store"
)

// ErrValidation 表示輸入內容違反領域規則（handler 對應 422）
var ErrValidation = errors.New("validation failed")

// RegistryClient 是 lifecycle 管理與 reconciliation 所需的 Hydra admin API 子集。
// *hydra.Client 實作此介面；測試以 fake 取代。
type RegistryClient interface {
	CreateClient(ctx context.Context, client *hydra.OAuthClient) (*hydra.OAuthClient, error)
	GetClient(ctx context.Context, clientID string) (*hydra.OAuthClient, error)
	UpdateClient(ctx context.Context, clientID string, client *hydra.OAuthClient) (*hydra.OAuthClient, error)
	DeleteClient(ctx context.Context, clientID string) error
	ListClients(ctx context.Context, limit, offset int) ([]hydra.OAuthClient, error)
}

var (
	clientIDExists           = store.ClientIDExists
	createServiceAccountRow  = store.CreateServiceAccount
	getServiceAccountByID    = store.GetServiceAccountByID
	updateServiceAccountRow  = store.UpdateServiceAccount
	deleteServiceAccountRow  = store.DeleteServiceAccountWithAssociations
	setServiceAccountActive  = store.SetServiceAccountActive
	replaceRoles             = store.ReplaceServiceAccountRoles
	replaceScopes            = store.ReplaceServiceAccountScopes
	assignRole               = store.AssignServiceAccountRole
	removeRole               = store.RemoveServiceAccountRole
	getRoleByID              = store.GetRoleByID
	getScopeByID             = store.GetScopeByID
	insertAuditLog           = store.InsertAuditLog
	listServiceAccountsStore = store.ListServiceAccounts
)

func containsValue(allowed []string, v string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

// validateClientSettings 檢查 grant types 與 token endpoint 認證方式
// 落在 model 定義的允許集合內
func validateClientSettings(sa *model.ServiceAccount) error {
	for _, gt := range sa.GrantTypes {
		if !containsValue(model.AllowedGrantTypes, gt) {
			return fmt.Errorf("grant type %q not allowed: %w", gt, ErrValidation)
		}
	}
	if sa.TokenEndpointAuthMethod != "" && !containsValue(model.AllowedTokenEndpointAuthMethods, sa.TokenEndpointAuthMethod) {
		return fmt.Errorf("token endpoint auth method %q not allowed: %w", sa.TokenEndpointAuthMethod, ErrValidation)
	}
	return nil
}

// validateScopeAssignment 檢查每個要指派的 scope 的 applies_to
// 是否涵蓋帳號的 account type
func validateScopeAssignment(ctx context.Context, db database.DB, accountType string, scopeIDs []string) error {
	for _, scopeID := range scopeIDs {
		scope, err := getScopeByID(ctx, db, scopeID)
		if err != nil {
			return err
		}
		if !scope.AppliesToAccountType(accountType) {
			return fmt.Errorf("scope %q does not apply to %s accounts: %w", scope.Name, accountType, ErrValidation)
		}
	}
	return nil
}

// recordAudit 寫入稽核紀錄，失敗只記 log，不影響主操作
func recordAudit(ctx context.Context, db database.DB, action, resourceID string, details map[string]any, performedBy string) {
	entry := &model.AuditLog{
		Action:       action,
		ResourceType: "service_account",
		ResourceID:   resourceID,
		Details:      details,
		PerformedBy:  performedBy,
	}
	if err := insertAuditLog(ctx, db, entry); err != nil {
		log.Printf("audit log write failed: %v", err)
	}
}

// CreateServiceAccount 建立 service account 並註冊到 Hydra。
// 遠端註冊失敗時會刪除剛建立的本地資料列（補償動作），避免本地/遠端分裂：
// 一個沒有 registry 對應的半成品 client 沒有任何用處。
func CreateServiceAccount(ctx context.Context, db database.DB, hc RegistryClient, sa *model.ServiceAccount, roleIDs, scopeIDs []string, syncToHydra bool, performedBy string) (*model.ServiceAccount, error) {
	if err := validateClientSettings(sa); err != nil {
		return nil, err
	}
	if err := validateScopeAssignment(ctx, db, sa.AccountType, scopeIDs); err != nil {
		return nil, err
	}

	exists, err := clientIDExists(ctx, db, sa.ClientID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("CreateServiceAccount: client_id %q: %w", sa.ClientID, store.ErrConflict)
	}

	if err := createServiceAccountRow(ctx, db, sa); err != nil {
		return nil, err
	}
	if len(roleIDs) > 0 {
		if err := replaceRoles(ctx, db, sa.ID, roleIDs); err != nil {
			return nil, err
		}
	}
	if len(scopeIDs) > 0 {
		if err := replaceScopes(ctx, db, sa.ID, scopeIDs); err != nil {
			return nil, err
		}
	}

	created, err := getServiceAccountByID(ctx, db, sa.ID)
	if err != nil {
		return nil, err
	}

	if syncToHydra {
		if _, err := hc.CreateClient(ctx, ServiceAccountToHydraClient(created)); err != nil {
			// 補償：移除本地資料列，維持兩邊一致
			if delErr := deleteServiceAccountRow(ctx, db, created.ID); delErr != nil {
				log.Printf("rollback of service account %s failed: %v", created.ID, delErr)
			}
			return nil, err
		}
	}

	recordAudit(ctx, db, "create", created.ID, map[string]any{"client_id": created.ClientID}, performedBy)
	return created, nil
}

// ServiceAccountUpdate 描述一次部分更新；nil 欄位表示不變。
// RoleIDs / ScopeIDs 非 nil 時會「完整取代」現有關聯集合。
type ServiceAccountUpdate struct {
	ClientSecret            *string
	ClientName              *string
	AccountType             *string
	GrantTypes              []string
	ResponseTypes           []string
	TokenEndpointAuthMethod *string
	Audience                []string
	RedirectURIs            []string
	PostLogoutRedirectURIs  []string
	AllowedCORSOrigins      []string
	SkipConsent             *bool
	IsActive                *bool
	Owner                   *string
	Description             *string
	RoleIDs                 []string
	ScopeIDs                []string
}

func (u *ServiceAccountUpdate) apply(sa *model.ServiceAccount) {
	if u.ClientSecret != nil {
		sa.ClientSecret = u.ClientSecret
	}
	if u.ClientName != nil {
		sa.ClientName = *u.ClientName
	}
	if u.AccountType != nil {
		sa.AccountType = *u.AccountType
	}
	if u.GrantTypes != nil {
		sa.GrantTypes = u.GrantTypes
	}
	if u.ResponseTypes != nil {
		sa.ResponseTypes = u.ResponseTypes
	}
	if u.TokenEndpointAuthMethod != nil {
		sa.TokenEndpointAuthMethod = *u.TokenEndpointAuthMethod
	}
	if u.Audience != nil {
		sa.Audience = u.Audience
	}
	if u.RedirectURIs != nil {
		sa.RedirectURIs = u.RedirectURIs
	}
	if u.PostLogoutRedirectURIs != nil {
		sa.PostLogoutRedirectURIs = u.PostLogoutRedirectURIs
	}
	if u.AllowedCORSOrigins != nil {
		sa.AllowedCORSOrigins = u.AllowedCORSOrigins
	}
	if u.SkipConsent != nil {
		sa.SkipConsent = *u.SkipConsent
	}
	if u.IsActive != nil {
		sa.IsActive = *u.IsActive
	}
	if u.Owner != nil {
		sa.Owner = u.Owner
	}
	if u.Description != nil {
		sa.Description = u.Description
	}
}

// UpdateServiceAccount 套用部分更新並推送到 Hydra。
// 本地寫入先 commit；遠端同步失敗「不會」回滾本地變更（資料庫為唯一事實來源，
// 操作者之後可重跑同步）。此時回傳已更新的帳號與 IntegrationError，
// 呼叫端收到 503 必須解讀為「本地已變更、遠端可能過期」。
func UpdateServiceAccount(ctx context.Context, db database.DB, hc RegistryClient, id string, update *ServiceAccountUpdate, syncToHydra bool, performedBy string) (*model.ServiceAccount, error) {
	sa, err := getServiceAccountByID(ctx, db, id)
	if err != nil {
		return nil, err
	}

	// 先套用變更再驗證，scope 的 applies_to 要對「更新後」的 account type 檢查
	update.apply(sa)
	if err := validateClientSettings(sa); err != nil {
		return nil, err
	}
	if update.ScopeIDs != nil {
		if err := validateScopeAssignment(ctx, db, sa.AccountType, update.ScopeIDs); err != nil {
			return nil, err
		}
	}

	if update.RoleIDs != nil {
		if err := replaceRoles(ctx, db, sa.ID, update.RoleIDs); err != nil {
			return nil, err
		}
	}
	if update.ScopeIDs != nil {
		if err := replaceScopes(ctx, db, sa.ID, update.ScopeIDs); err != nil {
			return nil, err
		}
	}

	if err := updateServiceAccountRow(ctx, db, sa); err != nil {
		return nil, err
	}

	updated, err := getServiceAccountByID(ctx, db, sa.ID)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, db, "update", updated.ID, map[string]any{"client_id": updated.ClientID}, performedBy)

	if syncToHydra {
		if _, err := hc.UpdateClient(ctx, updated.ClientID, ServiceAccountToHydraClient(updated)); err != nil {
			return updated, err
		}
	}
	return updated, nil
}

// DeleteServiceAccount 刪除 service account。
// 遠端刪除是 best-effort：失敗僅記 log，永不阻擋本地刪除（操作者的刪除
// 意圖不應被連不上的遠端系統擋下）。本地刪除連同關聯在同一交易完成。
func DeleteServiceAccount(ctx context.Context, db database.DB, hc RegistryClient, id string, syncToHydra bool, performedBy string) error {
	sa, err := getServiceAccountByID(ctx, db, id)
	if err != nil {
		return err
	}

	if syncToHydra {
		if err := hc.DeleteClient(ctx, sa.ClientID); err != nil {
			log.Printf("hydra delete of client %s failed, continuing with local delete: %v", sa.ClientID, err)
		}
	}

	if err := deleteServiceAccountRow(ctx, db, sa.ID); err != nil {
		return err
	}
	recordAudit(ctx, db, "delete", sa.ID, map[string]any{"client_id": sa.ClientID}, performedBy)
	return nil
}

// AssignRoleToServiceAccount 指派 role；重複指派視為成功
func AssignRoleToServiceAccount(ctx context.Context, db database.DB, id, roleID, performedBy string) (*model.ServiceAccount, error) {
	if _, err := getServiceAccountByID(ctx, db, id); err != nil {
		return nil, err
	}
	if _, err := getRoleByID(ctx, db, roleID); err != nil {
		return nil, err
	}
	if err := assignRole(ctx, db, id, roleID); err != nil {
		return nil, err
	}
	recordAudit(ctx, db, "assign_role", id, map[string]any{"role_id": roleID}, performedBy)
	return getServiceAccountByID(ctx, db, id)
}

// RemoveRoleFromServiceAccount 移除 role；未指派時回傳 store.ErrNotAssigned，
// 與帳號不存在（store.ErrNotFound）區分。
func RemoveRoleFromServiceAccount(ctx context.Context, db database.DB, id, roleID, performedBy string) (*model.ServiceAccount, error) {
	if _, err := getServiceAccountByID(ctx, db, id); err != nil {
		return nil, err
	}
	if err := removeRole(ctx, db, id, roleID); err != nil {
		return nil, err
	}
	recordAudit(ctx, db, "remove_role", id, map[string]any{"role_id": roleID}, performedBy)
	return getServiceAccountByID(ctx, db, id)
}

// SetServiceAccountActive 啟用/停用帳號（is_active 僅存在本地，不觸發遠端同步）
func SetServiceAccountActive(ctx context.Context, db database.DB, id string, active bool, performedBy string) (*model.ServiceAccount, error) {
	if err := setServiceAccountActive(ctx, db, id, active); err != nil {
		return nil, err
	}
	action := "deactivate"
	if active {
		action = "activate"
	}
	recordAudit(ctx, db, action, id, nil, performedBy)
	return getServiceAccountByID(ctx, db, id)
}

// ResyncServiceAccount 手動修復單一帳號的 drift：
// 遠端不存在就建立，存在就以本地狀態覆寫。
func ResyncServiceAccount(ctx context.Context, db database.DB, hc RegistryClient, id, performedBy string) (*model.ServiceAccount, error) {
	sa, err := getServiceAccountByID(ctx, db, id)
	if err != nil {
		return nil, err
	}

	payload := ServiceAccountToHydraClient(sa)
	remote, err := hc.GetClient(ctx, sa.ClientID)
	if err != nil {
		return nil, err
	}
	if remote == nil {
		if _, err := hc.CreateClient(ctx, payload); err != nil {
			return nil, err
		}
	} else {
		if _, err := hc.UpdateClient(ctx, sa.ClientID, payload); err != nil {
			return nil, err
		}
	}

	recordAudit(ctx, db, "resync", sa.ID, map[string]any{"client_id": sa.ClientID}, performedBy)
	return sa, nil
}
