package controllers

import (
	"strconv"

	"hotelbook/errors"
	"hotelbook/middleware"
	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

// parseID đọc path param dạng số
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid "+name, err)
	}
	return id, nil
}

// bindJSON bind body và chuyển lỗi binding thành VALIDATION_ERROR
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "invalid request body: "+err.Error(), err)
	}
	return nil
}

func bindQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "invalid query: "+err.Error(), err)
	}
	return nil
}

// fail gắn lỗi vào context để ErrorHandler trả response
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// deferred đưa thao tác ghi vào hàng đợi khi store chính offline, kèm
// user hiện tại làm actor. Trả về true nếu request đã được xử lý.
type deferred struct {
	queue *services.SyncQueue
	conn  services.Connectivity
}

func (d deferred) enqueueIfOffline(c *gin.Context, actionType string, payload interface{}) bool {
	if d.conn == nil || d.conn.Online() {
		return false
	}
	action, err := d.queue.Enqueue(c.Request.Context(), middleware.CurrentUser(c), actionType, payload)
	if err != nil {
		fail(c, err)
		return true
	}
	response.Accepted(c, action)
	return true
}
