package repository

import (
	"context"
	"time"
)

// StateStore 按用户隔离的键值存储，替代原先的浏览器本地存储。
// 同一个键后写覆盖先写；ttl 为 0 表示不过期；不存在或已过期时返回 util.ErrStateNotFound
type StateStore interface {
	Get(ctx context.Context, owner, key string) ([]byte, error)
	Set(ctx context.Context, owner, key string, value []byte, ttl time.Duration) error
	// SetNX 只在键不存在（或已过期）时写入，返回是否写入成功
	SetNX(ctx context.Context, owner, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, owner, key string) error
	Clear(ctx context.Context, owner string) error
}

// Purger 需要定期清理过期数据的存储实现（redis 自带过期，不需要）
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func expiresAt(now time.Time, ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	t := now.Add(ttl)
	return &t
}
