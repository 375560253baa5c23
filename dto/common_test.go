package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, items, Paginate(items, PageQuery{}))
	assert.Equal(t, []int{1, 2}, Paginate(items, PageQuery{Page: 0, Limit: 2}))
	assert.Equal(t, []int{5}, Paginate(items, PageQuery{Page: 2, Limit: 2}))
	assert.Empty(t, Paginate(items, PageQuery{Page: 3, Limit: 2}))
}

func TestRoomRequestDefaultsAvailable(t *testing.T) {
	room := RoomRequest{Type: "Twin", Price: 90, Capacity: 2}.ToModel()
	assert.True(t, room.Available)

	off := false
	room = RoomRequest{Type: "Twin", Price: 90, Capacity: 2, Available: &off}.ToModel()
	assert.False(t, room.Available)
}
