package constants

// Collection keys
const (
	KeyUsers     = "users"
	KeyHotels    = "hotels"
	KeyBookings  = "bookings"
	KeyToken     = "token"
	KeySyncQueue = "syncQueue"
)

// User role
const (
	RoleGuest   = "guest"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Booking status
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Sync action types
const (
	ActionBookingCreate = "booking.create"
	ActionBookingCancel = "booking.cancel"
	ActionHotelUpdate   = "hotel.update"
	ActionRoomUpdate    = "room.update"
	ActionUserUpdate    = "user.update"
)

// DateLayout là định dạng ngày check-in/check-out
const DateLayout = "2006-01-02"
