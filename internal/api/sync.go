// File: internal/api/sync.go
package api

// swagger:model api.SyncResultResponse
type SyncResultResponse struct {
	ClientsCreated []string `json:"clients_created"`
	ClientsUpdated []string `json:"clients_updated"`
	ClientsDeleted []string `json:"clients_deleted"`
	ScopesSynced   []string `json:"scopes_synced"`
	Errors         []string `json:"errors"`
	Success        bool     `json:"success"`
	SyncedAt       string   `json:"synced_at,omitempty"`
}

// swagger:model api.HydraStatusResponse
type HydraStatusResponse struct {
	Reachable bool                `json:"reachable"`
	LastSync  *SyncResultResponse `json:"last_sync,omitempty"`
}
