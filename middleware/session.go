package middleware

import (
	"hotelbook/services"
	"hotelbook/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	sessionIDKey  = "sessionId"
)

// SessionMiddleware tạo sessionId nếu chưa có và gán vào context
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionId := c.GetHeader(SessionHeader)
		if sessionId == "" {
			sessionId = uuid.NewString()
		}

		c.Set(sessionIDKey, sessionId)

		// Trả lại header để client dùng cho các request sau
		c.Writer.Header().Set(SessionHeader, sessionId)

		c.Next()
	}
}

// SessionID lấy sessionId đã gán bởi SessionMiddleware
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// Session trả về session lưu token của client hiện tại
func Session(c *gin.Context, s *store.Store) *services.StoreSession {
	return services.NewStoreSession(s, SessionID(c))
}
