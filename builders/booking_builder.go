package builders

import (
	"time"

	"hotelbook/constants"
	"hotelbook/models"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder tạo builder với trạng thái mặc định confirmed
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{Status: constants.BookingStatusConfirmed},
	}
}

func (b *BookingBuilder) WithID(id int64) *BookingBuilder {
	b.booking.ID = id
	return b
}

func (b *BookingBuilder) WithUser(userID int64) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

func (b *BookingBuilder) WithRoom(hotelID, roomID int64) *BookingBuilder {
	b.booking.HotelID = hotelID
	b.booking.RoomID = roomID
	return b
}

func (b *BookingBuilder) WithGuestInfo(guestName, guestEmail string) *BookingBuilder {
	b.booking.GuestName = guestName
	b.booking.GuestEmail = guestEmail
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut string) *BookingBuilder {
	b.booking.CheckIn = checkIn
	b.booking.CheckOut = checkOut
	return b
}

// WithTotalPrice lưu nguyên giá client gửi lên
func (b *BookingBuilder) WithTotalPrice(totalPrice float64) *BookingBuilder {
	b.booking.TotalPrice = totalPrice
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.booking.Status = status
	return b
}

func (b *BookingBuilder) Build() models.Booking {
	now := time.Now()
	if b.booking.CreatedAt.IsZero() {
		b.booking.CreatedAt = now
	}
	b.booking.UpdatedAt = now
	return *b.booking
}
