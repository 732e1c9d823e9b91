// File: internal/cache/redis.go
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// 啟動時的連線檢查不跟著預設的無限等待
const pingTimeout = 5 * time.Second

// redisClient 是 NewRedisClient 內部需要的能力，測試以 fake 替換
type redisClient interface {
	Cache
	Ping(ctx context.Context) *redis.StatusCmd
}

var redisNewClient = func(opt *redis.Options) redisClient {
	return redis.NewClient(opt)
}

// NewRedisClient 建立 Redis 連線並以 PING 驗證可達。
// 同步報告的快取不可用時服務不該啟動，狀態端點會回報不出東西。
func NewRedisClient(addr string, password string, db int) (Cache, error) {
	client := redisNewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
