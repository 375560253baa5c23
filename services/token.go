package services

import (
	"fmt"
	"time"

	"hotelbook/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId int64  `json:"userid"`
	Role   string `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenService ký và giải mã access token chứa {userid, role}
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService tạo TokenService. ttl = 0 nghĩa là token không hết hạn.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (t *TokenService) Generate(info UserInfo) (string, error) {
	claims := &Claims{UserInfo: info}
	now := time.Now()
	claims.IssuedAt = now.Unix()
	if t.ttl != 0 {
		claims.ExpiresAt = now.Add(t.ttl).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse kiểm tra chữ ký, hạn dùng và trả về thông tin user trong token
func (t *TokenService) Parse(tokenString string) (*UserInfo, error) {
	if tokenString == "" {
		return nil, errors.NewAppError(errors.ErrCodeMissingToken, "missing token", nil)
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "invalid token", err)
	}
	if claims.UserInfo.UserId == 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "token has no user", nil)
	}
	return &claims.UserInfo, nil
}
