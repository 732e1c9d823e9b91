// File: internal/service/sync.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"auth-backend/internal/cache"
	"auth-backend/internal/database"
	"auth-backend/internal/hydra"
	"auth-backend/internal/model"
	"auth-backend/internal/worker"
)

const (
	// syncListCap 是一次 reconciliation 兩邊各自列舉的上限
	syncListCap = 1000

	// lastSyncKey 是存放最近一次同步報告的 Redis key
	lastSyncKey = "hydra:last_sync"

	lastSyncTTL = 24 * time.Hour
)

// SyncResult 彙總一次 reconciliation 的成果。切片一律初始化為非 nil，
// JSON 序列化後是 [] 而非 null。
type SyncResult struct {
	ClientsCreated []string `json:"clients_created"`
	ClientsUpdated []string `json:"clients_updated"`
	ClientsDeleted []string `json:"clients_deleted"`
	ScopesSynced   []string `json:"scopes_synced"`
	Errors         []string `json:"errors"`
	Success        bool     `json:"success"`
	SyncedAt       string   `json:"synced_at"`
}

func newSyncResult() *SyncResult {
	return &SyncResult{
		ClientsCreated: []string{},
		ClientsUpdated: []string{},
		ClientsDeleted: []string{},
		ScopesSynced:   []string{},
		Errors:         []string{},
		Success:        true,
	}
}

func (r *SyncResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Success = false
}

// SyncPlan 是 diff 階段的輸出：每個 client_id 只會出現在其中一個集合
type SyncPlan struct {
	Creates []string
	Updates []string
	Deletes []string
}

// BuildSyncPlan 以 client_id 為唯一 join key 比對本地與遠端集合。
// 本地有、遠端沒有的進 Creates；兩邊都有且欄位 drift 的進 Updates；
// 遠端有、本地沒有的（孤兒）進 Deletes。輸出排序後結果可重現。
func BuildSyncPlan(local map[string]*model.ServiceAccount, remote map[string]*hydra.OAuthClient) SyncPlan {
	plan := SyncPlan{}
	for clientID, sa := range local {
		rc, ok := remote[clientID]
		if !ok {
			plan.Creates = append(plan.Creates, clientID)
			continue
		}
		if NeedsUpdate(ServiceAccountToHydraClient(sa), rc) {
			plan.Updates = append(plan.Updates, clientID)
		}
	}
	for clientID := range remote {
		if _, ok := local[clientID]; !ok {
			plan.Deletes = append(plan.Deletes, clientID)
		}
	}
	sort.Strings(plan.Creates)
	sort.Strings(plan.Updates)
	sort.Strings(plan.Deletes)
	return plan
}

// runPhase 把一個 phase 的所有項目丟進 worker pool 平行處理，
// 等全部完成才回傳。apply 內部自行透過 mutex 更新 result。
func runPhase(wp worker.Pool, ids []string, apply func(id string)) {
	var wg sync.WaitGroup
	for _, id := range ids {
		id := id
		wg.Add(1)
		wp.Submit(func() {
			defer wg.Done()
			apply(id)
		})
	}
	wg.Wait()
}

// SyncAll 執行一次完整的 reconciliation：以資料庫為事實來源，
// 把 Hydra 上的 client 集合收斂到與本地一致。
//
// 三個 phase 依序執行（create、update、delete），phase 內部項目平行處理。
// 單一項目失敗只記入 Errors，不中斷其餘項目：一次同步永遠跑完全部。
// 只有列舉（local 或 remote list）失敗才會提前結束。
func SyncAll(ctx context.Context, db database.DB, hc RegistryClient, wp worker.Pool, cch cache.Cache, performedBy string) *SyncResult {
	result := newSyncResult()

	accounts, err := listServiceAccountsStore(ctx, db, 0, syncListCap, false, "")
	if err != nil {
		result.addError("list local service accounts: %v", err)
		finishSync(ctx, db, cch, result, performedBy)
		return result
	}
	remoteClients, err := hc.ListClients(ctx, syncListCap, 0)
	if err != nil {
		result.addError("list hydra clients: %v", err)
		finishSync(ctx, db, cch, result, performedBy)
		return result
	}

	local := make(map[string]*model.ServiceAccount, len(accounts))
	for i := range accounts {
		local[accounts[i].ClientID] = &accounts[i]
	}
	remote := make(map[string]*hydra.OAuthClient, len(remoteClients))
	for i := range remoteClients {
		remote[remoteClients[i].ClientID] = &remoteClients[i]
	}

	plan := BuildSyncPlan(local, remote)

	// scope 已包含在 create/update 的 client payload 裡；
	// 報告另外記下每個本地帳號帶了哪些 scope 名稱
	for _, sa := range local {
		for _, s := range sa.Scopes {
			result.ScopesSynced = append(result.ScopesSynced, s.Name)
		}
	}
	sort.Strings(result.ScopesSynced)

	var mu sync.Mutex

	runPhase(wp, plan.Creates, func(clientID string) {
		_, err := hc.CreateClient(ctx, ServiceAccountToHydraClient(local[clientID]))
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.addError("create client %s: %v", clientID, err)
			return
		}
		result.ClientsCreated = append(result.ClientsCreated, clientID)
	})

	runPhase(wp, plan.Updates, func(clientID string) {
		_, err := hc.UpdateClient(ctx, clientID, ServiceAccountToHydraClient(local[clientID]))
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.addError("update client %s: %v", clientID, err)
			return
		}
		result.ClientsUpdated = append(result.ClientsUpdated, clientID)
	})

	runPhase(wp, plan.Deletes, func(clientID string) {
		err := hc.DeleteClient(ctx, clientID)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.addError("delete client %s: %v", clientID, err)
			return
		}
		result.ClientsDeleted = append(result.ClientsDeleted, clientID)
	})

	sort.Strings(result.ClientsCreated)
	sort.Strings(result.ClientsUpdated)
	sort.Strings(result.ClientsDeleted)

	finishSync(ctx, db, cch, result, performedBy)
	return result
}

// finishSync 記錄同步報告：寫入 Redis 供 /hydra/status 查詢，並留稽核紀錄。
// 兩者都是 best-effort，失敗不影響同步結果。
func finishSync(ctx context.Context, db database.DB, cch cache.Cache, result *SyncResult, performedBy string) {
	result.SyncedAt = time.Now().UTC().Format(time.RFC3339)

	if payload, err := json.Marshal(result); err == nil {
		if err := cch.Set(ctx, lastSyncKey, payload, lastSyncTTL).Err(); err != nil {
			log.Printf("cache last sync report failed: %v", err)
		}
	}

	entry := &model.AuditLog{
		Action:       "hydra_sync",
		ResourceType: "hydra",
		ResourceID:   "sync",
		Details: map[string]any{
			"created": len(result.ClientsCreated),
			"updated": len(result.ClientsUpdated),
			"deleted": len(result.ClientsDeleted),
			"errors":  len(result.Errors),
			"success": result.Success,
		},
		PerformedBy: performedBy,
	}
	if err := insertAuditLog(ctx, db, entry); err != nil {
		log.Printf("audit log write failed: %v", err)
	}
}

// LastSyncReport 讀出最近一次同步報告，沒有紀錄時回傳 (nil, nil)
func LastSyncReport(ctx context.Context, cch cache.Cache) (*SyncResult, error) {
	raw, err := cch.Get(ctx, lastSyncKey).Bytes()
	if err != nil {
		return nil, nil
	}
	var result SyncResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("LastSyncReport: %w", err)
	}
	return &result, nil
}
