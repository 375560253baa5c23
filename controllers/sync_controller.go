package controllers

import (
	"hotelbook/commands"
	"hotelbook/dto"
	"hotelbook/errors"
	"hotelbook/middleware"
	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

type SyncController struct {
	queue    *services.SyncQueue
	monitor  *services.ConnectivityMonitor
	registry *commands.Registry
}

func NewSyncController(queue *services.SyncQueue, monitor *services.ConnectivityMonitor, registry *commands.Registry) SyncController {
	return SyncController{queue: queue, monitor: monitor, registry: registry}
}

func (s SyncController) Pending(c *gin.Context) {
	pending, err := s.queue.Pending(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithTotal(c, pending, len(pending))
}

// Enqueue cho phép client offline đẩy thẳng một action vào hàng đợi.
// Payload phải dựng được thành command và user hiện tại phải có quyền với
// command đó. Phần kiểm tra cần store chính được để lại cho lúc replay
// nếu store đang offline.
func (s SyncController) Enqueue(c *gin.Context) {
	var req dto.EnqueueActionRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()
	actor := middleware.CurrentUser(c)
	cmd, err := s.registry.Build(actor, req.Type, req.Payload)
	if err != nil {
		fail(c, err)
		return
	}
	if err := cmd.Authorize(ctx); err != nil && !errors.HasCode(err, errors.ErrCodeStoreUnavailable) {
		fail(c, err)
		return
	}
	action, err := s.queue.Enqueue(ctx, actor, req.Type, cmd.Payload())
	if err != nil {
		fail(c, err)
		return
	}
	response.Accepted(c, action)
}

func (s SyncController) Drain(c *gin.Context) {
	report, err := s.queue.Drain(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, report)
}

func (s SyncController) Connectivity(c *gin.Context) {
	s.respondConnectivity(c, false)
}

// SetConnectivity cho operator ép trạng thái online/offline.
// Chuyển sang online sẽ kích hoạt drain qua OnRestore.
func (s SyncController) SetConnectivity(c *gin.Context) {
	var req dto.ConnectivityRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	restored := s.monitor.SetOnline(c.Request.Context(), *req.Online)
	s.respondConnectivity(c, restored)
}

func (s SyncController) respondConnectivity(c *gin.Context, restored bool) {
	pending, err := s.queue.Pending(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ConnectivityResponse{
		Online:   s.monitor.Online(),
		Restored: restored,
		Pending:  len(pending),
	})
}
