package controllers

import (
	"hotelbook/commands"
	"hotelbook/constants"
	"hotelbook/dto"
	"hotelbook/errors"
	"hotelbook/middleware"
	"hotelbook/models"
	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	hotels *services.HotelService
	images *services.ImageService
	deferred
}

func NewHotelController(hotels *services.HotelService, images *services.ImageService, queue *services.SyncQueue, conn services.Connectivity) HotelController {
	return HotelController{
		hotels:   hotels,
		images:   images,
		deferred: deferred{queue: queue, conn: conn},
	}
}

func (h HotelController) List(c *gin.Context) {
	var q dto.PageQuery
	if err := bindQuery(c, &q); err != nil {
		fail(c, err)
		return
	}
	hotels, err := h.hotels.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if q.Limit > 0 {
		response.SuccessWithPagination(c, dto.Paginate(hotels, q), q.Page, q.Limit, len(hotels))
		return
	}
	response.SuccessWithTotal(c, hotels, len(hotels))
}

func (h HotelController) Search(c *gin.Context) {
	var q dto.HotelSearchQuery
	if err := bindQuery(c, &q); err != nil {
		fail(c, err)
		return
	}
	results, err := h.hotels.Search(c.Request.Context(), q.Q)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithTotal(c, results, len(results))
}

func (h HotelController) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	hotel, err := h.hotels.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, hotel)
}

// Create tạo hotel; nếu có managerId thì giao luôn cho manager đó.
// Hai bước không có rollback: hotel vẫn tồn tại khi bước giao lỗi.
func (h HotelController) Create(c *gin.Context) {
	var req dto.CreateHotelRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()
	hotel, err := h.hotels.Create(ctx, req.ToModel())
	if err != nil {
		fail(c, err)
		return
	}
	if req.ManagerID != nil {
		hotel, err = h.hotels.AssignManager(ctx, hotel.ID, *req.ManagerID)
		if err != nil {
			fail(c, err)
			return
		}
	}
	response.Created(c, hotel)
}

func (h HotelController) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	var patch models.HotelPatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, err)
		return
	}
	if h.enqueueIfOffline(c, constants.ActionHotelUpdate, commands.HotelUpdatePayload{HotelID: id, Patch: patch}) {
		return
	}
	hotel, err := h.hotels.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, hotel)
}

func (h HotelController) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.hotels.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

func (h HotelController) AssignManager(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	var req dto.AssignManagerRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	hotel, err := h.hotels.AssignManager(c.Request.Context(), id, req.ManagerID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, hotel)
}

func (h HotelController) UploadImage(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		fail(c, errors.NewAppError(errors.ErrCodeRequiredField, "image file is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		fail(c, errors.NewAppError(errors.ErrCodeInvalidFormat, "cannot read image", err))
		return
	}
	defer file.Close()

	hotel, err := h.images.UploadHotelImage(c.Request.Context(), id, file)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, hotel)
}

// ListManaged trả về các hotel của manager đang đăng nhập (admin thấy tất cả)
func (h HotelController) ListManaged(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()
	var (
		hotels []models.Hotel
		err    error
	)
	if user.IsAdmin() {
		hotels, err = h.hotels.List(ctx)
	} else {
		hotels, err = h.hotels.ListByManager(ctx, user.ID)
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithTotal(c, hotels, len(hotels))
}

func (h HotelController) AddRoom(c *gin.Context) {
	hotelID, ok := h.authorize(c)
	if !ok {
		return
	}
	var req dto.RoomRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	room, err := h.hotels.AddRoom(c.Request.Context(), hotelID, req.ToModel())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, room)
}

func (h HotelController) UpdateRoom(c *gin.Context) {
	hotelID, ok := h.authorize(c)
	if !ok {
		return
	}
	roomID, err := parseID(c, "roomId")
	if err != nil {
		fail(c, err)
		return
	}
	var patch models.RoomPatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, err)
		return
	}
	if h.enqueueIfOffline(c, constants.ActionRoomUpdate, commands.RoomUpdatePayload{HotelID: hotelID, RoomID: roomID, Patch: patch}) {
		return
	}
	room, err := h.hotels.UpdateRoom(c.Request.Context(), hotelID, roomID, patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, room)
}

func (h HotelController) DeleteRoom(c *gin.Context) {
	hotelID, ok := h.authorize(c)
	if !ok {
		return
	}
	roomID, err := parseID(c, "roomId")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.hotels.DeleteRoom(c.Request.Context(), hotelID, roomID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// authorize kiểm tra user hiện tại quản lý hotel trong path.
// Khi offline không tra được hotel nên chỉ admin/manager theo token được đi tiếp.
func (h HotelController) authorize(c *gin.Context) (int64, bool) {
	hotelID, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return 0, false
	}
	user := middleware.CurrentUser(c)
	if _, err := h.hotels.Authorize(c.Request.Context(), user, hotelID); err != nil {
		if errors.HasCode(err, errors.ErrCodeStoreUnavailable) && (user.IsAdmin() || user.IsManager()) {
			return hotelID, true
		}
		fail(c, err)
		return 0, false
	}
	return hotelID, true
}
