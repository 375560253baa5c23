package services

import (
	"context"

	"hotelbook/constants"
	"hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users  *UserService
	tokens *TokenService
	logger logger.Logger
}

type AuthServiceOptions struct {
	Users  *UserService
	Tokens *TokenService
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		users:  opts.Users,
		tokens: opts.Tokens,
		logger: opts.Logger,
	}
}

type LoginResult struct {
	Token string
	User  models.User
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register tạo tài khoản guest
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	return s.users.Create(ctx, models.User{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Role:     constants.RoleGuest,
	})
}

// Login kiểm tra email/mật khẩu, cấp token và lưu vào session
func (s *AuthService) Login(ctx context.Context, sess Session, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeInvalidCredentials, errors.ErrInvalidCredentials.Error(), nil)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidCredentials, errors.ErrInvalidCredentials.Error(), nil)
	}

	token, err := s.tokens.Generate(UserInfo{UserId: user.ID, Role: user.Role})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "cannot issue token", err)
	}
	if err := sess.Save(ctx, token); err != nil {
		return nil, err
	}
	s.logger.Info("User %d đăng nhập", user.ID)
	return &LoginResult{Token: token, User: *user}, nil
}

// Identity giải mã token trong session mà không tra lại user.
// Dùng khi store chính không truy cập được.
func (s *AuthService) Identity(ctx context.Context, sess Session) (*UserInfo, error) {
	token, err := sess.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized, errors.ErrNoSession.Error(), nil)
	}
	return s.tokens.Parse(token)
}

// CurrentUser giải mã token trong session rồi tra lại user theo id
func (s *AuthService) CurrentUser(ctx context.Context, sess Session) (*models.User, error) {
	info, err := s.Identity(ctx, sess)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, info.UserId)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeUnauthorized, "session user no longer exists", err)
		}
		return nil, err
	}
	return user, nil
}

// Logout xóa token khỏi session
func (s *AuthService) Logout(ctx context.Context, sess Session) error {
	return sess.Clear(ctx)
}
