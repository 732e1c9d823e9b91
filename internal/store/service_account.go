// File: internal/store/service_account.go
package store

import (
	"context"
	"fmt"

	"auth-backend/internal/database"
	"auth-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const serviceAccountColumns = `id, client_id, client_secret, client_name, account_type,
       grant_types, response_types, token_endpoint_auth_method, audience,
       redirect_uris, post_logout_redirect_uris, allowed_cors_origins,
       skip_consent, is_active, owner, description, created_by, last_used_at,
       created_at, updated_at`

func scanServiceAccount(row pgx.Row, sa *model.ServiceAccount) error {
	return row.Scan(
		&sa.ID,
		&sa.ClientID,
		&sa.ClientSecret,
		&sa.ClientName,
		&sa.AccountType,
		&sa.GrantTypes,
		&sa.ResponseTypes,
		&sa.TokenEndpointAuthMethod,
		&sa.Audience,
		&sa.RedirectURIs,
		&sa.PostLogoutRedirectURIs,
		&sa.AllowedCORSOrigins,
		&sa.SkipConsent,
		&sa.IsActive,
		&sa.Owner,
		&sa.Description,
		&sa.CreatedBy,
		&sa.LastUsedAt,
		&sa.CreatedAt,
		&sa.UpdatedAt,
	)
}

// CreateServiceAccount 新增一筆 service account，回填 id 與時間戳
func CreateServiceAccount(ctx context.Context, db database.DB, sa *model.ServiceAccount) error {
	if sa.ID == "" {
		sa.ID = uuid.NewString()
	}
	row := db.QueryRow(ctx, `
        INSERT INTO service_accounts
            (id, client_id, client_secret, client_name, account_type,
             grant_types, response_types, token_endpoint_auth_method, audience,
             redirect_uris, post_logout_redirect_uris, allowed_cors_origins,
             skip_consent, is_active, owner, description, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING created_at, updated_at
    `,
		sa.ID,
		sa.ClientID,
		sa.ClientSecret,
		sa.ClientName,
		sa.AccountType,
		sa.GrantTypes,
		sa.ResponseTypes,
		sa.TokenEndpointAuthMethod,
		sa.Audience,
		sa.RedirectURIs,
		sa.PostLogoutRedirectURIs,
		sa.AllowedCORSOrigins,
		sa.SkipConsent,
		sa.IsActive,
		sa.Owner,
		sa.Description,
		sa.CreatedBy,
	)
	if err := row.Scan(&sa.CreatedAt, &sa.UpdatedAt); err != nil {
		return wrapErr("CreateServiceAccount", err)
	}
	return nil
}

// GetServiceAccountByID 取得 service account，並載入 roles 與 scopes
func GetServiceAccountByID(ctx context.Context, db database.DB, id string) (*model.ServiceAccount, error) {
	sa := &model.ServiceAccount{}
	row := db.QueryRow(ctx,
		`SELECT `+serviceAccountColumns+` FROM service_accounts WHERE id = $1`, id)
	if err := scanServiceAccount(row, sa); err != nil {
		return nil, wrapErr("GetServiceAccountByID", err)
	}
	if err := loadServiceAccountAssociations(ctx, db, sa); err != nil {
		return nil, err
	}
	return sa, nil
}

// GetServiceAccountByClientID 以 client_id 取得 service account
func GetServiceAccountByClientID(ctx context.Context, db database.DB, clientID string) (*model.ServiceAccount, error) {
	sa := &model.ServiceAccount{}
	row := db.QueryRow(ctx,
		`SELECT `+serviceAccountColumns+` FROM service_accounts WHERE client_id = $1`, clientID)
	if err := scanServiceAccount(row, sa); err != nil {
		return nil, wrapErr("GetServiceAccountByClientID", err)
	}
	if err := loadServiceAccountAssociations(ctx, db, sa); err != nil {
		return nil, err
	}
	return sa, nil
}

// ClientIDExists 檢查 client_id 是否已被使用
func ClientIDExists(ctx context.Context, db database.DB, clientID string) (bool, error) {
	var exists bool
	row := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM service_accounts WHERE client_id = $1)`, clientID)
	if err := row.Scan(&exists); err != nil {
		return false, wrapErr("ClientIDExists", err)
	}
	return exists, nil
}

// ListServiceAccounts 分頁列出 service accounts。
// search 針對 client_id、client_name、description 做不分大小寫子字串比對；
// activeOnly 時只回傳啟用中的帳號。每筆皆載入 roles 與 scopes。
func ListServiceAccounts(ctx context.Context, db database.DB, skip, limit int, activeOnly bool, search string) ([]model.ServiceAccount, error) {
	query := `SELECT ` + serviceAccountColumns + ` FROM service_accounts`
	args := []any{}
	where := ""
	if activeOnly {
		where = ` WHERE is_active`
	}
	if search != "" {
		if where == "" {
			where = ` WHERE `
		} else {
			where += ` AND `
		}
		args = append(args, "%"+search+"%")
		p := fmt.Sprintf("$%d", len(args))
		where += `(client_id ILIKE ` + p + ` OR client_name ILIKE ` + p + ` OR description ILIKE ` + p + `)`
	}
	args = append(args, limit, skip)
	query += where + fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("ListServiceAccounts", err)
	}
	defer rows.Close()

	var accounts []model.ServiceAccount
	for rows.Next() {
		var sa model.ServiceAccount
		if err := scanServiceAccount(rows, &sa); err != nil {
			return nil, wrapErr("ListServiceAccounts", err)
		}
		accounts = append(accounts, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListServiceAccounts", err)
	}
	for i := range accounts {
		if err := loadServiceAccountAssociations(ctx, db, &accounts[i]); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}

// UpdateServiceAccount 覆寫可變欄位並更新 updated_at
func UpdateServiceAccount(ctx context.Context, db database.DB, sa *model.ServiceAccount) error {
	row := db.QueryRow(ctx, `
        UPDATE service_accounts SET
            client_secret = $1,
            client_name = $2,
            account_type = $3,
            grant_types = $4,
            response_types = $5,
            token_endpoint_auth_method = $6,
            audience = $7,
            redirect_uris = $8,
            post_logout_redirect_uris = $9,
            allowed_cors_origins = $10,
            skip_consent = $11,
            is_active = $12,
            owner = $13,
            description = $14,
            updated_at = now()
        WHERE id = $15
        RETURNING updated_at
    `,
		sa.ClientSecret,
		sa.ClientName,
		sa.AccountType,
		sa.GrantTypes,
		sa.ResponseTypes,
		sa.TokenEndpointAuthMethod,
		sa.Audience,
		sa.RedirectURIs,
		sa.PostLogoutRedirectURIs,
		sa.AllowedCORSOrigins,
		sa.SkipConsent,
		sa.IsActive,
		sa.Owner,
		sa.Description,
		sa.ID,
	)
	if err := row.Scan(&sa.UpdatedAt); err != nil {
		return wrapErr("UpdateServiceAccount", err)
	}
	return nil
}

// SetServiceAccountActive 啟用或停用帳號
func SetServiceAccountActive(ctx context.Context, db database.DB, id string, active bool) error {
	tag, err := db.Exec(ctx,
		`UPDATE service_accounts SET is_active = $1, updated_at = now() WHERE id = $2`,
		active, id)
	if err != nil {
		return wrapErr("SetServiceAccountActive", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("SetServiceAccountActive: %w", ErrNotFound)
	}
	return nil
}

// TouchServiceAccountLastUsed 更新 last_used_at
func TouchServiceAccountLastUsed(ctx context.Context, db database.DB, clientID string) error {
	tag, err := db.Exec(ctx,
		`UPDATE service_accounts SET last_used_at = now() WHERE client_id = $1`, clientID)
	if err != nil {
		return wrapErr("TouchServiceAccountLastUsed", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("TouchServiceAccountLastUsed: %w", ErrNotFound)
	}
	return nil
}

// AssignServiceAccountRole 指派 role，重複指派視為成功（idempotent）
func AssignServiceAccountRole(ctx context.Context, db database.DB, serviceAccountID, roleID string) error {
	_, err := db.Exec(ctx, `
        INSERT INTO service_account_roles (service_account_id, role_id)
        VALUES ($1, $2) ON CONFLICT DO NOTHING
    `, serviceAccountID, roleID)
	if err != nil {
		return wrapErr("AssignServiceAccountRole", err)
	}
	return nil
}

// RemoveServiceAccountRole 移除 role，未指派時回傳 ErrNotAssigned
func RemoveServiceAccountRole(ctx context.Context, db database.DB, serviceAccountID, roleID string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM service_account_roles WHERE service_account_id = $1 AND role_id = $2`,
		serviceAccountID, roleID)
	if err != nil {
		return wrapErr("RemoveServiceAccountRole", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("RemoveServiceAccountRole: %w", ErrNotAssigned)
	}
	return nil
}

// AssignServiceAccountScope 指派 scope（idempotent）
func AssignServiceAccountScope(ctx context.Context, db database.DB, serviceAccountID, scopeID string) error {
	_, err := db.Exec(ctx, `
        INSERT INTO service_account_scopes (service_account_id, scope_id)
        VALUES ($1, $2) ON CONFLICT DO NOTHING
    `, serviceAccountID, scopeID)
	if err != nil {
		return wrapErr("AssignServiceAccountScope", err)
	}
	return nil
}

// RemoveServiceAccountScope 移除 scope，未指派時回傳 ErrNotAssigned
func RemoveServiceAccountScope(ctx context.Context, db database.DB, serviceAccountID, scopeID string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM service_account_scopes WHERE service_account_id = $1 AND scope_id = $2`,
		serviceAccountID, scopeID)
	if err != nil {
		return wrapErr("RemoveServiceAccountScope", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("RemoveServiceAccountScope: %w", ErrNotAssigned)
	}
	return nil
}

// ReplaceServiceAccountRoles 以提供的集合完整取代 role 關聯（單一交易）
func ReplaceServiceAccountRoles(ctx context.Context, db database.DB, serviceAccountID string, roleIDs []string) error {
	return replaceAssociations(ctx, db, "ReplaceServiceAccountRoles",
		`DELETE FROM service_account_roles WHERE service_account_id = $1`,
		`INSERT INTO service_account_roles (service_account_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		serviceAccountID, roleIDs)
}

// ReplaceServiceAccountScopes 以提供的集合完整取代 scope 關聯（單一交易）
func ReplaceServiceAccountScopes(ctx context.Context, db database.DB, serviceAccountID string, scopeIDs []string) error {
	return replaceAssociations(ctx, db, "ReplaceServiceAccountScopes",
		`DELETE FROM service_account_scopes WHERE service_account_id = $1`,
		`INSERT INTO service_account_scopes (service_account_id, scope_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		serviceAccountID, scopeIDs)
}

func replaceAssociations(ctx context.Context, db database.DB, op, deleteSQL, insertSQL, ownerID string, ids []string) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return wrapErr(op, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteSQL, ownerID); err != nil {
		return wrapErr(op, err)
	}
	for _, id := range ids {
		if _, err := tx.Exec(ctx, insertSQL, ownerID, id); err != nil {
			return wrapErr(op, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr(op, err)
	}
	return nil
}

// DeleteServiceAccountWithAssociations 先清除所有 role/scope 關聯再刪除本體，
// 全部在同一交易內，避免殘留孤兒關聯。
func DeleteServiceAccountWithAssociations(ctx context.Context, db database.DB, id string) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return wrapErr("DeleteServiceAccountWithAssociations", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM service_account_roles WHERE service_account_id = $1`, id); err != nil {
		return wrapErr("DeleteServiceAccountWithAssociations", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM service_account_scopes WHERE service_account_id = $1`, id); err != nil {
		return wrapErr("DeleteServiceAccountWithAssociations", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM service_accounts WHERE id = $1`, id)
	if err != nil {
		return wrapErr("DeleteServiceAccountWithAssociations", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteServiceAccountWithAssociations: %w", ErrNotFound)
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("DeleteServiceAccountWithAssociations", err)
	}
	return nil
}

func loadServiceAccountAssociations(ctx context.Context, db database.DB, sa *model.ServiceAccount) error {
	roles, err := rolesForServiceAccount(ctx, db, sa.ID)
	if err != nil {
		return err
	}
	scopes, err := scopesForServiceAccount(ctx, db, sa.ID)
	if err != nil {
		return err
	}
	sa.Roles = roles
	sa.Scopes = scopes
	return nil
}

func rolesForServiceAccount(ctx context.Context, db database.DB, serviceAccountID string) ([]model.Role, error) {
	rows, err := db.Query(ctx, `
        SELECT r.id, r.name, r.description, r.created_at, r.updated_at
        FROM roles r
        JOIN service_account_roles sar ON sar.role_id = r.id
        WHERE sar.service_account_id = $1
        ORDER BY r.name
    `, serviceAccountID)
	if err != nil {
		return nil, wrapErr("rolesForServiceAccount", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var r model.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, wrapErr("rolesForServiceAccount", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("rolesForServiceAccount", err)
	}
	return roles, nil
}

func scopesForServiceAccount(ctx context.Context, db database.DB, serviceAccountID string) ([]model.Scope, error) {
	rows, err := db.Query(ctx, `
        SELECT s.id, s.name, s.description, s.applies_to, s.is_active, s.created_at, s.updated_at
        FROM scopes s
        JOIN service_account_scopes sas ON sas.scope_id = s.id
        WHERE sas.service_account_id = $1
        ORDER BY s.name
    `, serviceAccountID)
	if err != nil {
		return nil, wrapErr("scopesForServiceAccount", err)
	}
	defer rows.Close()

	var scopes []model.Scope
	for rows.Next() {
		var s model.Scope
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.AppliesTo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, wrapErr("scopesForServiceAccount", err)
		}
		scopes = append(scopes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("scopesForServiceAccount", err)
	}
	return scopes, nil
}
