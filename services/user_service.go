package services

import (
	"context"
	"strings"
	"time"

	"hotelbook/constants"
	"hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/store"
	"hotelbook/validator"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	store    *store.Store
	users    *store.Collection[models.User]
	hashCost int
	logger   logger.Logger
}

type UserServiceOptions struct {
	Store    *store.Store
	HashCost int
	Logger   logger.Logger
}

func NewUserService(opts UserServiceOptions) *UserService {
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{
		store:    opts.Store,
		users:    store.NewCollection[models.User](opts.Store, constants.KeyUsers),
		hashCost: cost,
		logger:   opts.Logger,
	}
}

func (s *UserService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) List(ctx context.Context, role string) ([]models.User, error) {
	if role == "" {
		return s.users.All(ctx)
	}
	return s.users.Filter(ctx, func(u models.User) bool { return u.Role == role })
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, ok, err := s.users.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFound("user")
	}
	return &user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = normalizeEmail(email)
	matches, err := s.users.Filter(ctx, func(u models.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errors.NotFound("user")
	}
	return &matches[0], nil
}

// Create tạo user mới với mật khẩu đã hash. Email bị trùng trả về USER_EXISTS.
func (s *UserService) Create(ctx context.Context, input models.User) (*models.User, error) {
	input.Email = normalizeEmail(input.Email)
	if input.Role == "" {
		input.Role = constants.RoleGuest
	}
	if err := validator.ValidateUser(&input); err != nil {
		return nil, err
	}
	hashed, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "cannot hash password", err)
	}

	now := time.Now()
	user := models.User{
		ID:        s.store.NextID(),
		Email:     input.Email,
		Password:  hashed,
		Name:      strings.TrimSpace(input.Name),
		Role:      input.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.Name == "" {
		user.Name = strings.Split(user.Email, "@")[0]
	}

	_, err = store.Mutate(ctx, s.store, constants.KeyUsers, []models.User{}, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == user.Email {
				return nil, errors.NewAppError(errors.ErrCodeUserExists, "email "+user.Email+" already in use", nil)
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}
	s.store.ObserveID(user.ID)
	s.logger.Info("Đã tạo user %d (%s)", user.ID, user.Role)
	return &user, nil
}

// PreparePatch validate patch, chuẩn hóa email và thay mật khẩu bằng
// bcrypt hash. Patch đã chuẩn bị (ví dụ lấy lại từ hàng đợi đồng bộ) đi
// qua lần nữa không bị hash lại.
func (s *UserService) PreparePatch(patch models.UserPatch) (models.UserPatch, error) {
	if err := validator.Struct(patch); err != nil {
		return patch, err
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
	}
	if patch.Password == nil {
		return patch, nil
	}
	if _, err := bcrypt.Cost([]byte(*patch.Password)); err == nil {
		return patch, nil
	}
	hashed, err := s.HashPassword(*patch.Password)
	if err != nil {
		return patch, errors.NewAppError(errors.ErrCodeValidation, "cannot hash password", err)
	}
	patch.Password = &hashed
	return patch, nil
}

// Update áp patch lên user
func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	patch, err := s.PreparePatch(patch)
	if err != nil {
		return nil, err
	}

	var updated models.User
	found := false
	_, err = store.Mutate(ctx, s.store, constants.KeyUsers, []models.User{}, func(users []models.User) ([]models.User, error) {
		idx := -1
		for i := range users {
			if users[i].ID == id {
				idx = i
			} else if patch.Email != nil && users[i].Email == *patch.Email {
				return nil, errors.NewAppError(errors.ErrCodeUserExists, "email "+*patch.Email+" already in use", nil)
			}
		}
		if idx < 0 {
			return nil, errors.NotFound("user")
		}
		patch.Apply(&users[idx])
		updated = users[idx]
		found = true
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NotFound("user")
	}
	return &updated, nil
}

// Delete xóa user; booking của user vẫn giữ nguyên
func (s *UserService) Delete(ctx context.Context, id int64) error {
	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		s.logger.Debug("Xóa user %d: không có trong collection", id)
	}
	return nil
}
