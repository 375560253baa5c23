package services

import (
	"context"
	"math"
	"time"

	"hotelbook/builders"
	"hotelbook/constants"
	"hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/services/notification"
	"hotelbook/store"
	"hotelbook/validator"
)

// BookingPolicy bật các kiểm tra mà mặc định không có: trùng lịch phòng
// và đối chiếu tổng giá với giá phòng.
type BookingPolicy struct {
	PreventOverlap bool
	VerifyPrice    bool
}

type BookingService struct {
	store    *store.Store
	bookings *store.Collection[models.Booking]
	hotels   *HotelService
	auth     *AuthService
	queue    *SyncQueue
	conn     Connectivity
	notifier notification.Service
	policy   BookingPolicy
	logger   logger.Logger
}

type BookingServiceOptions struct {
	Store        *store.Store
	Hotels       *HotelService
	Auth         *AuthService
	Queue        *SyncQueue
	Connectivity Connectivity
	Notifier     notification.Service
	Policy       BookingPolicy
	Logger       logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notification.NopService{}
	}
	return &BookingService{
		store:    opts.Store,
		bookings: store.NewCollection[models.Booking](opts.Store, constants.KeyBookings),
		hotels:   opts.Hotels,
		auth:     opts.Auth,
		queue:    opts.Queue,
		conn:     opts.Connectivity,
		notifier: notifier,
		policy:   opts.Policy,
		logger:   opts.Logger,
	}
}

type CreateBookingInput struct {
	HotelID    int64
	RoomID     int64
	CheckIn    string
	CheckOut   string
	TotalPrice float64
	GuestName  string
	GuestEmail string
}

// BookingResult là booking vừa tạo/đổi trạng thái; Queued = true khi thao
// tác đang nằm trong hàng đợi đồng bộ.
type BookingResult struct {
	Booking models.Booking `json:"booking"`
	Queued  bool           `json:"queued"`
}

// BookingCancelPayload là payload của action booking.cancel
type BookingCancelPayload struct {
	BookingID int64 `json:"bookingId"`
}

func (s *BookingService) online() bool {
	return s.conn == nil || s.conn.Online()
}

// Create tạo booking cho user đang đăng nhập. Tổng giá được lưu nguyên
// như client gửi trừ khi bật VerifyPrice. Khi offline, booking được đưa
// vào hàng đợi và danh tính lấy từ token.
func (s *BookingService) Create(ctx context.Context, sess Session, in CreateBookingInput) (*BookingResult, error) {
	var actor *models.User
	if s.online() {
		user, err := s.auth.CurrentUser(ctx, sess)
		if err != nil {
			return nil, unauthorized(err)
		}
		actor = user
	} else {
		info, err := s.auth.Identity(ctx, sess)
		if err != nil {
			return nil, unauthorized(err)
		}
		actor = &models.User{ID: info.UserId, Role: info.Role}
	}

	if in.HotelID == 0 || in.RoomID == 0 {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "hotel and room are required", nil)
	}
	if in.CheckIn == "" || in.CheckOut == "" {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "check-in and check-out are required", nil)
	}

	booking := builders.NewBookingBuilder().
		WithID(s.store.NextID()).
		WithUser(actor.ID).
		WithRoom(in.HotelID, in.RoomID).
		WithStay(in.CheckIn, in.CheckOut).
		WithTotalPrice(in.TotalPrice).
		WithGuestInfo(in.GuestName, in.GuestEmail).
		Build()

	if !s.online() {
		if _, err := s.queue.Enqueue(ctx, actor, constants.ActionBookingCreate, booking); err != nil {
			return nil, err
		}
		return &BookingResult{Booking: booking, Queued: true}, nil
	}

	saved, err := s.Insert(ctx, booking)
	if err != nil {
		return nil, err
	}
	return &BookingResult{Booking: *saved}, nil
}

// Insert lưu booking đã dựng sẵn. Gọi lại với cùng id sẽ không tạo bản ghi
// thứ hai, nên an toàn khi replay từ hàng đợi.
func (s *BookingService) Insert(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	if err := s.checkPolicy(ctx, booking); err != nil {
		return nil, err
	}

	duplicate := false
	_, err := store.Mutate(ctx, s.store, constants.KeyBookings, []models.Booking{}, func(items []models.Booking) ([]models.Booking, error) {
		for _, existing := range items {
			if existing.ID == booking.ID {
				duplicate = true
				return items, nil
			}
		}
		if s.policy.PreventOverlap {
			if err := checkOverlap(items, booking); err != nil {
				return nil, err
			}
		}
		return append(items, booking), nil
	})
	if err != nil {
		return nil, err
	}
	s.store.ObserveID(booking.ID)
	if duplicate {
		s.logger.Debug("Booking %d đã tồn tại, bỏ qua", booking.ID)
		return &booking, nil
	}

	s.logger.Info("Đã tạo booking %d cho user %d", booking.ID, booking.UserID)
	s.notify(notification.EventBookingCreated, booking)
	return &booking, nil
}

func (s *BookingService) checkPolicy(ctx context.Context, booking models.Booking) error {
	if !s.policy.PreventOverlap && !s.policy.VerifyPrice {
		return nil
	}
	nights, err := validator.ParseStayDates(booking.CheckIn, booking.CheckOut)
	if err != nil {
		return err
	}
	_, room, err := s.hotels.FindRoom(ctx, booking.HotelID, booking.RoomID)
	if err != nil {
		return err
	}
	if s.policy.PreventOverlap && !room.Available {
		return errors.NewAppError(errors.ErrCodeRoomUnavailable, "room is not available", nil)
	}
	if s.policy.VerifyPrice {
		expected := room.Price * float64(nights)
		if math.Abs(expected-booking.TotalPrice) > 0.005 {
			return errors.NewAppError(errors.ErrCodePriceMismatch, "total price does not match room price", nil)
		}
	}
	return nil
}

func checkOverlap(items []models.Booking, booking models.Booking) error {
	for _, existing := range items {
		if existing.HotelID != booking.HotelID || existing.RoomID != booking.RoomID || !existing.Active() {
			continue
		}
		if existing.Overlaps(booking.CheckIn, booking.CheckOut) {
			return errors.NewAppError(errors.ErrCodeRoomUnavailable, "room already booked for these dates", nil)
		}
	}
	return nil
}

func (s *BookingService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	booking, ok, err := s.bookings.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFound("booking")
	}
	return &booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.All(ctx)
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.bookings.Filter(ctx, func(b models.Booking) bool { return b.UserID == userID })
}

func (s *BookingService) ListByHotel(ctx context.Context, hotelID int64) ([]models.Booking, error) {
	return s.bookings.Filter(ctx, func(b models.Booking) bool { return b.HotelID == hotelID })
}

// CanView: chủ booking, admin hoặc manager của hotel
func (s *BookingService) CanView(ctx context.Context, actor *models.User, booking *models.Booking) bool {
	if actor.IsAdmin() || booking.UserID == actor.ID {
		return true
	}
	if actor.IsManager() {
		if _, err := s.hotels.Authorize(ctx, actor, booking.HotelID); err == nil {
			return true
		}
	}
	return false
}

// Cancel hủy booking. Khi offline thao tác được đưa vào hàng đợi, quyền
// của actor được kiểm tra lại lúc replay.
func (s *BookingService) Cancel(ctx context.Context, actor *models.User, id int64) (*BookingResult, error) {
	if !s.online() {
		if _, err := s.queue.Enqueue(ctx, actor, constants.ActionBookingCancel, BookingCancelPayload{BookingID: id}); err != nil {
			return nil, err
		}
		return &BookingResult{Booking: models.Booking{ID: id, Status: constants.BookingStatusCancelled}, Queued: true}, nil
	}
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.CanView(ctx, actor, booking) {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "cannot cancel this booking", nil)
	}
	updated, err := s.Transition(ctx, id, constants.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	return &BookingResult{Booking: *updated}, nil
}

// Complete đánh dấu booking đã hoàn thành (manager của hotel hoặc admin)
func (s *BookingService) Complete(ctx context.Context, actor *models.User, id int64) (*models.Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.hotels.Authorize(ctx, actor, booking.HotelID); err != nil {
		return nil, err
	}
	return s.Transition(ctx, id, constants.BookingStatusCompleted)
}

// Transition chuyển trạng thái qua state machine, không kiểm tra quyền
func (s *BookingService) Transition(ctx context.Context, id int64, target string) (*models.Booking, error) {
	updated, ok, err := s.bookings.Update(ctx, id, func(b *models.Booking) error {
		state := models.GetBookingState(b.Status)
		var err error
		switch target {
		case constants.BookingStatusCancelled:
			err = state.Cancel(b)
		case constants.BookingStatusCompleted:
			err = state.Complete(b)
		default:
			err = errors.NewAppError(errors.ErrCodeInvalidStatus, "unsupported status "+target, nil)
		}
		if err != nil {
			if errors.IsAppError(err) {
				return err
			}
			return errors.NewAppError(errors.ErrCodeInvalidStatus, err.Error(), nil)
		}
		b.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFound("booking")
	}

	event := notification.EventBookingCancelled
	if target == constants.BookingStatusCompleted {
		event = notification.EventBookingCompleted
	}
	s.notify(event, updated)
	return &updated, nil
}

func (s *BookingService) notify(event string, booking models.Booking) {
	msg := notification.NewMessageBuilder(event).WithBooking(booking).Build()
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Error("Gửi thông báo %s lỗi: %v", event, err)
	}
}

func unauthorized(err error) error {
	if appErr := errors.GetAppError(err); appErr != nil && appErr.Code == errors.ErrCodeStoreUnavailable {
		return err
	}
	return errors.NewAppError(errors.ErrCodeUnauthorized, "login required", err)
}
