package middleware

import (
	"strings"

	"hotelbook/errors"
	"hotelbook/models"
	"hotelbook/response"
	"hotelbook/services"
	"hotelbook/store"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// AuthMiddleware xác thực request theo token đã lưu trong session.
// Nếu client gửi kèm Authorization thì token đó phải trùng với token của session.
func AuthMiddleware(auth *services.AuthService, sessions *store.Store, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sess := Session(c, sessions)

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			stored, err := sess.Token(ctx)
			if err != nil {
				response.FromError(c, err)
				c.Abort()
				return
			}
			if strings.TrimPrefix(authHeader, "Bearer ") != stored {
				response.Unauthorized(c)
				c.Abort()
				return
			}
		}

		user, err := auth.CurrentUser(ctx, sess)
		if errors.HasCode(err, errors.ErrCodeStoreUnavailable) {
			// Store chính mất kết nối: tin vào claims của token
			var info *services.UserInfo
			info, err = auth.Identity(ctx, sess)
			if err == nil {
				user = &models.User{ID: info.UserId, Role: info.Role}
			}
		}
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(user.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Set("userID", user.ID)
		c.Set("userRole", user.Role)
		c.Next()
	}
}

// RoleMiddleware kiểm tra role của user
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if !hasRole(userRole.(string), roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser trả về user đã được AuthMiddleware gán vào context
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ErrorHandler xử lý lỗi
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
