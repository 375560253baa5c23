package models

import (
	"fmt"

	"hotelbook/constants"
)

// BookingState định nghĩa interface cho các trạng thái booking
type BookingState interface {
	Cancel(booking *Booking) error
	Complete(booking *Booking) error
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Cancel(booking *Booking) error {
	booking.Status = constants.BookingStatusCancelled
	return nil
}

func (s *ConfirmedState) Complete(booking *Booking) error {
	booking.Status = constants.BookingStatusCompleted
	return nil
}

// CompletedState trạng thái hoàn thành
type CompletedState struct{}

func (s *CompletedState) Cancel(booking *Booking) error {
	return fmt.Errorf("cannot cancel completed booking")
}

func (s *CompletedState) Complete(booking *Booking) error {
	return fmt.Errorf("booking already completed")
}

// CancelledState trạng thái đã hủy
type CancelledState struct{}

func (s *CancelledState) Cancel(booking *Booking) error {
	return fmt.Errorf("booking already cancelled")
}

func (s *CancelledState) Complete(booking *Booking) error {
	return fmt.Errorf("cannot complete cancelled booking")
}

// GetBookingState trả về state tương ứng với trạng thái booking.
// Trạng thái lạ được coi như confirmed vì đó là giá trị mặc định khi tạo.
func GetBookingState(status string) BookingState {
	switch status {
	case constants.BookingStatusCompleted:
		return &CompletedState{}
	case constants.BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &ConfirmedState{}
	}
}
