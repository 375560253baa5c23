package store

import (
	"context"
	"testing"

	"hotelbook/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (i item) EntityID() int64 { return i.ID }

func newTestStore() (*Store, *MemorySubstrate) {
	sub := NewMemorySubstrate()
	return New(Options{Substrate: sub}), sub
}

func TestReadMissingKeyReturnsDefault(t *testing.T) {
	s, _ := newTestStore()
	got, err := Read(context.Background(), s, "nothing", []item{{ID: 7}})
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 7}}, got)
}

func TestWriteOverwrites(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	require.NoError(t, Write(ctx, s, "k", []item{{ID: 1, Name: "a"}}))
	require.NoError(t, Write(ctx, s, "k", []item{{ID: 2, Name: "b"}}))

	got, err := Read(ctx, s, "k", []item{})
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 2, Name: "b"}}, got)
}

func TestReadCorruptValue(t *testing.T) {
	ctx := context.Background()
	s, sub := newTestStore()
	require.NoError(t, sub.Set(ctx, "k", []byte("{not json")))

	_, err := Read(ctx, s, "k", []item{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat))
}

func TestMutateErrorLeavesValue(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	require.NoError(t, Write(ctx, s, "k", []item{{ID: 1}}))

	_, err := Mutate(ctx, s, "k", []item{}, func(items []item) ([]item, error) {
		return nil, errors.NotFound("item")
	})
	require.Error(t, err)

	got, err := Read(ctx, s, "k", []item{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestInitializeIfEmptyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	seeds := []Seed{{Key: "a", Value: []item{{ID: 1}}}, {Key: "b", Value: []item{}}}
	require.NoError(t, s.InitializeIfEmpty(ctx, seeds))

	require.NoError(t, Write(ctx, s, "a", []item{{ID: 1}, {ID: 2}}))
	require.NoError(t, s.InitializeIfEmpty(ctx, seeds))

	got, err := Read(ctx, s, "a", []item{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestOfflineSubstrateSurfacesUnavailable(t *testing.T) {
	ctx := context.Background()
	s, sub := newTestStore()
	sub.SetOffline(true)

	_, err := Read(ctx, s, "k", []item{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeStoreUnavailable))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Error(t, s.Ping(ctx))

	sub.SetOffline(false)
	assert.NoError(t, s.Ping(ctx))
}
