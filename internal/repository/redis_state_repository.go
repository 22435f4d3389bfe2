package repository

import (
	"context"
	"errors"
	"fmt"
	"skillpath_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStateRepository 多实例部署时使用，过期交给 redis 处理
type RedisStateRepository struct {
	Redis  *redis.Client
	prefix string
}

func NewRedisStateRepository(rdb *redis.Client) *RedisStateRepository {
	return &RedisStateRepository{Redis: rdb, prefix: "state"}
}

func (r *RedisStateRepository) key(owner, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, owner, key)
}

func (r *RedisStateRepository) Get(ctx context.Context, owner, key string) ([]byte, error) {
	val, err := r.Redis.Get(ctx, r.key(owner, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrStateNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *RedisStateRepository) Set(ctx context.Context, owner, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.Redis.Set(ctx, r.key(owner, key), value, ttl).Err()
}

func (r *RedisStateRepository) SetNX(ctx context.Context, owner, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	return r.Redis.SetNX(ctx, r.key(owner, key), value, ttl).Result()
}

func (r *RedisStateRepository) Delete(ctx context.Context, owner, key string) error {
	return r.Redis.Del(ctx, r.key(owner, key)).Err()
}

// Clear 用 SCAN 找出该用户的全部键再删除
func (r *RedisStateRepository) Clear(ctx context.Context, owner string) error {
	pattern := r.key(owner, "*")
	var cursor uint64
	for {
		keys, next, err := r.Redis.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.Redis.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
