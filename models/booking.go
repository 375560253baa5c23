package models

import (
	"time"

	"hotelbook/constants"
)

type Booking struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	HotelID    int64     `json:"hotelId"`
	RoomID     int64     `json:"roomId"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	TotalPrice float64   `json:"totalPrice"` // Giá do client tính
	Status     string    `json:"status"`
	GuestName  string    `json:"guestName,omitempty"`
	GuestEmail string    `json:"guestEmail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (b Booking) EntityID() int64 { return b.ID }

// Active là booking còn giữ phòng
func (b Booking) Active() bool {
	return b.Status != constants.BookingStatusCancelled
}

// Overlaps kiểm tra hai khoảng [checkIn, checkOut) có giao nhau không.
// Ngày ở định dạng YYYY-MM-DD nên so sánh chuỗi là đủ.
func (b Booking) Overlaps(checkIn, checkOut string) bool {
	return b.CheckIn < checkOut && checkIn < b.CheckOut
}
