package config

import (
	"context"
	"fmt"

	"hotelbook/store"
)

// OpenSubstrate tạo nơi lưu cho collection store chính theo STORE_DRIVER
func OpenSubstrate(ctx context.Context, cfg Config) (store.Substrate, error) {
	switch cfg.StoreDriver {
	case "", "memory":
		return store.NewMemorySubstrate(), nil
	case "redis":
		rdb, err := ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return store.NewRedisSubstrate(rdb, cfg.RedisPrefix), nil
	case "postgres", "mysql", "sqlite":
		db, err := OpenDB(cfg.StoreDriver, cfg)
		if err != nil {
			return nil, err
		}
		return store.NewGormSubstrate(db)
	}
	return nil, fmt.Errorf("unknown store driver: %s", cfg.StoreDriver)
}

// OpenLocalSubstrate tạo nơi lưu cục bộ cho session và hàng đợi đồng bộ
func OpenLocalSubstrate(cfg Config) (store.Substrate, error) {
	switch cfg.QueueDriver {
	case "", "memory":
		return store.NewMemorySubstrate(), nil
	case "sqlite":
		db, err := OpenQueueDB(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewGormSubstrate(db)
	}
	return nil, fmt.Errorf("unknown queue driver: %s", cfg.QueueDriver)
}
