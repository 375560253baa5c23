package commands

import (
	"context"

	"hotelbook/constants"
	"hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services"

	"github.com/goccy/go-json"
)

// SyncCommand là một thao tác ghi được dựng lại từ hàng đợi đồng bộ.
// Execute luôn gọi Authorize trước khi ghi.
type SyncCommand interface {
	Authorize(ctx context.Context) error
	Execute(ctx context.Context) error
	// Payload là dữ liệu được lưu vào hàng đợi cho command này
	Payload() interface{}
}

func forbidden(message string) error {
	return errors.NewAppError(errors.ErrCodeForbidden, message, nil)
}

func requireAdmin(actor *models.User) error {
	if actor == nil || !actor.IsAdmin() {
		return forbidden("admin role required")
	}
	return nil
}

// CreateBookingCommand lưu booking đã tạo lúc offline
type CreateBookingCommand struct {
	actor    *models.User
	booking  models.Booking
	bookings *services.BookingService
}

func NewCreateBookingCommand(actor *models.User, booking models.Booking, bookings *services.BookingService) *CreateBookingCommand {
	return &CreateBookingCommand{actor: actor, booking: booking, bookings: bookings}
}

// Authorize: chỉ chủ booking (hoặc admin) được đặt
func (c *CreateBookingCommand) Authorize(ctx context.Context) error {
	if c.actor == nil || (!c.actor.IsAdmin() && c.booking.UserID != c.actor.ID) {
		return forbidden("cannot create a booking for another user")
	}
	return nil
}

func (c *CreateBookingCommand) Execute(ctx context.Context) error {
	if err := c.Authorize(ctx); err != nil {
		return err
	}
	_, err := c.bookings.Insert(ctx, c.booking)
	return err
}

func (c *CreateBookingCommand) Payload() interface{} { return c.booking }

// CancelBookingCommand hủy booking
type CancelBookingCommand struct {
	actor     *models.User
	bookingID int64
	bookings  *services.BookingService
}

func NewCancelBookingCommand(actor *models.User, bookingID int64, bookings *services.BookingService) *CancelBookingCommand {
	return &CancelBookingCommand{actor: actor, bookingID: bookingID, bookings: bookings}
}

func (c *CancelBookingCommand) load(ctx context.Context) (*models.Booking, error) {
	if c.actor == nil {
		return nil, forbidden("cannot cancel this booking")
	}
	booking, err := c.bookings.Get(ctx, c.bookingID)
	if err != nil {
		return nil, err
	}
	if !c.bookings.CanView(ctx, c.actor, booking) {
		return nil, forbidden("cannot cancel this booking")
	}
	return booking, nil
}

func (c *CancelBookingCommand) Authorize(ctx context.Context) error {
	_, err := c.load(ctx)
	return err
}

func (c *CancelBookingCommand) Execute(ctx context.Context) error {
	booking, err := c.load(ctx)
	if err != nil {
		return err
	}
	if booking.Status == constants.BookingStatusCancelled {
		return nil
	}
	_, err = c.bookings.Transition(ctx, c.bookingID, constants.BookingStatusCancelled)
	return err
}

func (c *CancelBookingCommand) Payload() interface{} {
	return services.BookingCancelPayload{BookingID: c.bookingID}
}

type HotelUpdatePayload struct {
	HotelID int64             `json:"hotelId"`
	Patch   models.HotelPatch `json:"patch"`
}

// UpdateHotelCommand áp patch lên hotel, chỉ admin
type UpdateHotelCommand struct {
	actor   *models.User
	payload HotelUpdatePayload
	hotels  *services.HotelService
}

func NewUpdateHotelCommand(actor *models.User, payload HotelUpdatePayload, hotels *services.HotelService) *UpdateHotelCommand {
	return &UpdateHotelCommand{actor: actor, payload: payload, hotels: hotels}
}

func (c *UpdateHotelCommand) Authorize(ctx context.Context) error {
	return requireAdmin(c.actor)
}

func (c *UpdateHotelCommand) Execute(ctx context.Context) error {
	if err := c.Authorize(ctx); err != nil {
		return err
	}
	_, err := c.hotels.Update(ctx, c.payload.HotelID, c.payload.Patch)
	return err
}

func (c *UpdateHotelCommand) Payload() interface{} { return c.payload }

type RoomUpdatePayload struct {
	HotelID int64            `json:"hotelId"`
	RoomID  int64            `json:"roomId"`
	Patch   models.RoomPatch `json:"patch"`
}

// UpdateRoomCommand sửa phòng: admin hoặc manager được giao hotel
type UpdateRoomCommand struct {
	actor   *models.User
	payload RoomUpdatePayload
	hotels  *services.HotelService
}

func NewUpdateRoomCommand(actor *models.User, payload RoomUpdatePayload, hotels *services.HotelService) *UpdateRoomCommand {
	return &UpdateRoomCommand{actor: actor, payload: payload, hotels: hotels}
}

// Authorize kiểm tra role trước, sau đó mới tra hotel trong store
func (c *UpdateRoomCommand) Authorize(ctx context.Context) error {
	if c.actor == nil || (!c.actor.IsAdmin() && !c.actor.IsManager()) {
		return forbidden("manager or admin role required")
	}
	_, err := c.hotels.Authorize(ctx, c.actor, c.payload.HotelID)
	return err
}

func (c *UpdateRoomCommand) Execute(ctx context.Context) error {
	if err := c.Authorize(ctx); err != nil {
		return err
	}
	_, err := c.hotels.UpdateRoom(ctx, c.payload.HotelID, c.payload.RoomID, c.payload.Patch)
	return err
}

func (c *UpdateRoomCommand) Payload() interface{} { return c.payload }

type UserUpdatePayload struct {
	UserID int64            `json:"userId"`
	Patch  models.UserPatch `json:"patch"`
}

// UpdateUserCommand sửa user, chỉ admin. Mật khẩu trong payload được
// hash ngay khi dựng command nên không nằm dạng rõ trong hàng đợi.
type UpdateUserCommand struct {
	actor   *models.User
	payload UserUpdatePayload
	users   *services.UserService
}

func NewUpdateUserCommand(actor *models.User, payload UserUpdatePayload, users *services.UserService) (*UpdateUserCommand, error) {
	patch, err := users.PreparePatch(payload.Patch)
	if err != nil {
		return nil, err
	}
	payload.Patch = patch
	return &UpdateUserCommand{actor: actor, payload: payload, users: users}, nil
}

func (c *UpdateUserCommand) Authorize(ctx context.Context) error {
	return requireAdmin(c.actor)
}

func (c *UpdateUserCommand) Execute(ctx context.Context) error {
	if err := c.Authorize(ctx); err != nil {
		return err
	}
	_, err := c.users.Update(ctx, c.payload.UserID, c.payload.Patch)
	return err
}

func (c *UpdateUserCommand) Payload() interface{} { return c.payload }

// Registry dựng SyncCommand từ type + payload của một action
type Registry struct {
	bookings *services.BookingService
	hotels   *services.HotelService
	users    *services.UserService
}

func NewRegistry(bookings *services.BookingService, hotels *services.HotelService, users *services.UserService) *Registry {
	return &Registry{bookings: bookings, hotels: hotels, users: users}
}

// Types liệt kê các loại action có thể replay
func (r *Registry) Types() []string {
	return []string{
		constants.ActionBookingCreate,
		constants.ActionBookingCancel,
		constants.ActionHotelUpdate,
		constants.ActionRoomUpdate,
		constants.ActionUserUpdate,
	}
}

// Build dựng command cho actor từ type + payload của một action
func (r *Registry) Build(actor *models.User, actionType string, payload json.RawMessage) (SyncCommand, error) {
	switch actionType {
	case constants.ActionBookingCreate:
		var booking models.Booking
		if err := decode(payload, &booking); err != nil {
			return nil, err
		}
		return NewCreateBookingCommand(actor, booking, r.bookings), nil
	case constants.ActionBookingCancel:
		var p services.BookingCancelPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return NewCancelBookingCommand(actor, p.BookingID, r.bookings), nil
	case constants.ActionHotelUpdate:
		var p HotelUpdatePayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return NewUpdateHotelCommand(actor, p, r.hotels), nil
	case constants.ActionRoomUpdate:
		var p RoomUpdatePayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return NewUpdateRoomCommand(actor, p, r.hotels), nil
	case constants.ActionUserUpdate:
		var p UserUpdatePayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		cmd, err := NewUpdateUserCommand(actor, p, r.users)
		if err != nil {
			return nil, err
		}
		return cmd, nil
	}
	return nil, errors.NewAppError(errors.ErrCodeUnknownAction, "unknown action "+actionType, nil)
}

// actor tra lại user đã gửi action. Role lấy theo bản ghi hiện tại nên
// user bị hạ quyền sau khi gửi sẽ không replay được thao tác cũ.
func (r *Registry) actor(ctx context.Context, action models.SyncAction) (*models.User, error) {
	if action.ActorID == 0 {
		return nil, forbidden("action has no actor")
	}
	user, err := r.users.Get(ctx, action.ActorID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, forbidden("actor no longer exists")
		}
		return nil, err
	}
	return user, nil
}

// Bind đăng ký replay cho mọi loại action vào hàng đợi
func (r *Registry) Bind(q *services.SyncQueue) {
	for _, t := range r.Types() {
		actionType := t
		q.Register(actionType, func(ctx context.Context, action models.SyncAction) error {
			actor, err := r.actor(ctx, action)
			if err != nil {
				return err
			}
			cmd, err := r.Build(actor, actionType, action.Payload)
			if err != nil {
				return err
			}
			return cmd.Execute(ctx)
		})
	}
}

func decode(payload json.RawMessage, target interface{}) error {
	if err := json.Unmarshal(payload, target); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid action payload", err)
	}
	return nil
}
