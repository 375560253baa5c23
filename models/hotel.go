package models

import "time"

type Hotel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`      // Giá tham khảo mỗi đêm
	PriceRange  string    `json:"priceRange"` // Chuỗi hiển thị, ví dụ "$100 - $250"
	Rating      float64   `json:"rating"`
	Image       string    `json:"image"`
	ManagerID   *int64    `json:"managerId,omitempty"`
	Rooms       []Room    `json:"rooms"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (h Hotel) EntityID() int64 { return h.ID }

// FindRoom trả về vị trí của room trong danh sách, -1 nếu không có
func (h *Hotel) FindRoom(roomID int64) int {
	for i := range h.Rooms {
		if h.Rooms[i].ID == roomID {
			return i
		}
	}
	return -1
}

// ManagedBy kiểm tra hotel có được giao cho manager này không
func (h *Hotel) ManagedBy(userID int64) bool {
	return h.ManagerID != nil && *h.ManagerID == userID
}
