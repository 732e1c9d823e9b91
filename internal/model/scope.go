// File: internal/model/scope.go
package model

import (
	"strings"
	"time"
)

// Scope 代表一個 OAuth2 scope。
// applies_to 以逗號分隔儲存（"Service-to-service"、"Browser" 或兩者），
// 對外以列表呈現。
type Scope struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	AppliesTo   string    `db:"applies_to" json:"-"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// AppliesToList 將逗號分隔的 applies_to 轉為列表
func (s *Scope) AppliesToList() []string {
	if s.AppliesTo == "" {
		return nil
	}
	parts := strings.Split(s.AppliesTo, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SetAppliesToList 以列表設定 applies_to
func (s *Scope) SetAppliesToList(values []string) {
	s.AppliesTo = strings.Join(values, ",")
}

// AppliesToAccountType 檢查 scope 是否適用於指定的 account type
func (s *Scope) AppliesToAccountType(accountType string) bool {
	for _, v := range s.AppliesToList() {
		if v == accountType {
			return true
		}
	}
	return false
}
