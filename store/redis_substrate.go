package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "hotelbook:"

// RedisSubstrate lưu mỗi collection thành một string key trên Redis
type RedisSubstrate struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisSubstrate(rdb *redis.Client, prefix string) *RedisSubstrate {
	return &RedisSubstrate{rdb: rdb, prefix: prefix}
}

func (r *RedisSubstrate) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *RedisSubstrate) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisSubstrate) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.prefix+key).Err()
}

func (r *RedisSubstrate) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisSubstrate) Close() error {
	return r.rdb.Close()
}
