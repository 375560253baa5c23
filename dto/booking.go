package dto

import "hotelbook/services"

type CreateBookingRequest struct {
	HotelID    int64   `json:"hotelId" binding:"required"`
	RoomID     int64   `json:"roomId" binding:"required"`
	CheckIn    string  `json:"checkIn" binding:"required"`
	CheckOut   string  `json:"checkOut" binding:"required"`
	TotalPrice float64 `json:"totalPrice"`
	GuestName  string  `json:"guestName"`
	GuestEmail string  `json:"guestEmail" binding:"omitempty,email"`
}

func (r CreateBookingRequest) ToInput() services.CreateBookingInput {
	return services.CreateBookingInput{
		HotelID:    r.HotelID,
		RoomID:     r.RoomID,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		TotalPrice: r.TotalPrice,
		GuestName:  r.GuestName,
		GuestEmail: r.GuestEmail,
	}
}
