package services

import (
	"context"
	"time"

	"hotelbook/constants"
	"hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/store"
	"hotelbook/validator"
)

type HotelService struct {
	store  *store.Store
	hotels *store.Collection[models.Hotel]
	users  *UserService
	logger logger.Logger
}

type HotelServiceOptions struct {
	Store  *store.Store
	Users  *UserService
	Logger logger.Logger
}

func NewHotelService(opts HotelServiceOptions) *HotelService {
	return &HotelService{
		store:  opts.Store,
		hotels: store.NewCollection[models.Hotel](opts.Store, constants.KeyHotels),
		users:  opts.Users,
		logger: opts.Logger,
	}
}

func (s *HotelService) List(ctx context.Context) ([]models.Hotel, error) {
	return s.hotels.All(ctx)
}

func (s *HotelService) Get(ctx context.Context, id int64) (*models.Hotel, error) {
	hotel, ok, err := s.hotels.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFound("hotel")
	}
	return &hotel, nil
}

func (s *HotelService) ListByManager(ctx context.Context, managerID int64) ([]models.Hotel, error) {
	return s.hotels.Filter(ctx, func(h models.Hotel) bool { return h.ManagedBy(managerID) })
}

// Create gán id cho hotel và các room đi kèm rồi lưu
func (s *HotelService) Create(ctx context.Context, hotel models.Hotel) (*models.Hotel, error) {
	if err := validator.ValidateHotel(&hotel); err != nil {
		return nil, err
	}
	now := time.Now()
	hotel.ID = s.store.NextID()
	hotel.CreatedAt = now
	hotel.UpdatedAt = now
	if hotel.Rooms == nil {
		hotel.Rooms = []models.Room{}
	}
	for i := range hotel.Rooms {
		hotel.Rooms[i].ID = s.store.NextID()
	}
	created, err := s.hotels.Insert(ctx, hotel)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Đã tạo hotel %d (%s)", created.ID, created.Name)
	return &created, nil
}

func (s *HotelService) Update(ctx context.Context, id int64, patch models.HotelPatch) (*models.Hotel, error) {
	if err := validator.Struct(patch); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(h *models.Hotel) error {
		patch.Apply(h)
		return nil
	})
}

func (s *HotelService) Delete(ctx context.Context, id int64) error {
	removed, err := s.hotels.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		s.logger.Debug("Xóa hotel %d: không có trong collection", id)
	}
	return nil
}

// AssignManager giao hotel cho một user có role manager
func (s *HotelService) AssignManager(ctx context.Context, hotelID, managerID int64) (*models.Hotel, error) {
	manager, err := s.users.Get(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if !manager.IsManager() {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRole, "user is not a manager", nil)
	}
	return s.update(ctx, hotelID, func(h *models.Hotel) error {
		h.ManagerID = &manager.ID
		h.UpdatedAt = time.Now()
		return nil
	})
}

func (s *HotelService) SetImage(ctx context.Context, hotelID int64, url string) (*models.Hotel, error) {
	return s.update(ctx, hotelID, func(h *models.Hotel) error {
		h.Image = url
		h.UpdatedAt = time.Now()
		return nil
	})
}

func (s *HotelService) AddRoom(ctx context.Context, hotelID int64, room models.Room) (*models.Room, error) {
	if err := validator.ValidateRoom(&room); err != nil {
		return nil, err
	}
	room.ID = s.store.NextID()
	if _, err := s.update(ctx, hotelID, func(h *models.Hotel) error {
		h.Rooms = append(h.Rooms, room)
		h.UpdatedAt = time.Now()
		return nil
	}); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *HotelService) UpdateRoom(ctx context.Context, hotelID, roomID int64, patch models.RoomPatch) (*models.Room, error) {
	if err := validator.Struct(patch); err != nil {
		return nil, err
	}
	var room models.Room
	_, err := s.update(ctx, hotelID, func(h *models.Hotel) error {
		idx := h.FindRoom(roomID)
		if idx < 0 {
			return errors.NotFound("room")
		}
		patch.Apply(&h.Rooms[idx])
		room = h.Rooms[idx]
		h.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *HotelService) DeleteRoom(ctx context.Context, hotelID, roomID int64) error {
	_, err := s.update(ctx, hotelID, func(h *models.Hotel) error {
		idx := h.FindRoom(roomID)
		if idx < 0 {
			s.logger.Debug("Xóa room %d: không có trong hotel %d", roomID, hotelID)
			return nil
		}
		h.Rooms = append(h.Rooms[:idx], h.Rooms[idx+1:]...)
		h.UpdatedAt = time.Now()
		return nil
	})
	return err
}

// FindRoom trả về hotel và room tương ứng
func (s *HotelService) FindRoom(ctx context.Context, hotelID, roomID int64) (*models.Hotel, *models.Room, error) {
	hotel, err := s.Get(ctx, hotelID)
	if err != nil {
		return nil, nil, err
	}
	idx := hotel.FindRoom(roomID)
	if idx < 0 {
		return nil, nil, errors.NotFound("room")
	}
	return hotel, &hotel.Rooms[idx], nil
}

// Authorize kiểm tra user có quyền quản lý hotel không: admin hoặc manager được giao
func (s *HotelService) Authorize(ctx context.Context, user *models.User, hotelID int64) (*models.Hotel, error) {
	hotel, err := s.Get(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() || hotel.ManagedBy(user.ID) {
		return hotel, nil
	}
	return nil, errors.NewAppError(errors.ErrCodeForbidden, "hotel is not managed by this user", nil)
}

func (s *HotelService) update(ctx context.Context, id int64, fn func(*models.Hotel) error) (*models.Hotel, error) {
	hotel, ok, err := s.hotels.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFound("hotel")
	}
	return &hotel, nil
}
