package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertThenFindRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	c := NewCollection[item](s, "items")

	created, err := c.Insert(ctx, item{ID: s.NextID(), Name: "Sunrise"})
	require.NoError(t, err)

	found, ok, err := c.Find(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created, found)
}

func TestFindMissing(t *testing.T) {
	s, _ := newTestStore()
	c := NewCollection[item](s, "items")
	_, ok, err := c.Find(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	s, sub := newTestStore()
	c := NewCollection[item](s, "items")
	for i := int64(1); i <= 3; i++ {
		_, err := c.Insert(ctx, item{ID: i, Name: "n"})
		require.NoError(t, err)
	}
	before, _, _ := sub.Get(ctx, "items")

	removed, err := c.Delete(ctx, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	all, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 1, Name: "n"}, {ID: 3, Name: "n"}}, all)
	after, _, _ := sub.Get(ctx, "items")
	assert.Less(t, len(after), len(before))
}

func TestDeleteMissingStillSucceeds(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	c := NewCollection[item](s, "items")
	_, err := c.Insert(ctx, item{ID: 1})
	require.NoError(t, err)

	removed, err := c.Delete(ctx, 99)
	require.NoError(t, err)
	assert.False(t, removed)

	all, err := c.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	c := NewCollection[item](s, "items")
	_, err := c.Insert(ctx, item{ID: 1, Name: "old"})
	require.NoError(t, err)

	got, ok, err := c.Update(ctx, 1, func(it *item) error {
		it.Name = "new"
		return nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", got.Name)

	_, ok, err = c.Update(ctx, 5, func(it *item) error { return nil })
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	c := NewCollection[item](s, "items")
	for _, n := range []string{"a", "b", "a"} {
		_, err := c.Insert(ctx, item{ID: s.NextID(), Name: n})
		require.NoError(t, err)
	}
	got, err := c.Filter(ctx, func(it item) bool { return it.Name == "a" })
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
