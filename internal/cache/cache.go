// File: internal/cache/cache.go
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 是本服務用到的 Redis 操作子集：存放最近一次 Hydra
// reconciliation 報告，以及 /ping 的連線檢查。
// *redis.Client 直接滿足此介面。ttl <= 0 表示不設過期。
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Close() error
}

// FakeCache 供測試注入。Get/Set 沒設定 stub 就被呼叫時 panic，
// 讓測試抓到沒預期的快取存取。
type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	CloseFn func() error
}

func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

func (f *FakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, ttl)
	}
	panic("unexpected Set")
}

// Close 未設定 stub 時是 no-op，teardown 不需要每個測試都接手
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
