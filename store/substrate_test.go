package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func exerciseSubstrate(t *testing.T, sub Substrate) {
	ctx := context.Background()

	_, ok, err := sub.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, sub.Set(ctx, "users", []byte(`[{"id":1}]`)))
	require.NoError(t, sub.Set(ctx, "users", []byte(`[{"id":2}]`)))
	got, ok, err := sub.Get(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":2}]`, string(got))

	require.NoError(t, sub.Delete(ctx, "users"))
	_, ok, err = sub.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, sub.Ping(ctx))
}

func TestMemorySubstrate(t *testing.T) {
	exerciseSubstrate(t, NewMemorySubstrate())
}

func TestRedisSubstrate(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sub := NewRedisSubstrate(rdb, DefaultRedisPrefix)
	defer sub.Close()

	exerciseSubstrate(t, sub)

	require.NoError(t, sub.Set(context.Background(), "hotels", []byte(`[]`)))
	assert.True(t, mr.Exists(DefaultRedisPrefix+"hotels"))
}

func TestGormSubstrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	sub, err := NewGormSubstrate(db)
	require.NoError(t, err)
	defer sub.Close()

	exerciseSubstrate(t, sub)
}

func TestStoreOverRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := New(Options{Substrate: NewRedisSubstrate(rdb, "t:")})
	c := NewCollection[item](s, "items")

	ctx := context.Background()
	_, err := c.Insert(ctx, item{ID: 1, Name: "x"})
	require.NoError(t, err)

	mr.Close()
	_, err = c.All(ctx)
	assert.Error(t, err)
}
