package controllers

import (
	"hotelbook/dto"
	"hotelbook/errors"
	"hotelbook/middleware"
	"hotelbook/response"
	"hotelbook/services"
	"hotelbook/store"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookings *services.BookingService
	hotels   *services.HotelService
	sessions *store.Store
}

func NewBookingController(bookings *services.BookingService, hotels *services.HotelService, sessions *store.Store) BookingController {
	return BookingController{bookings: bookings, hotels: hotels, sessions: sessions}
}

func (b BookingController) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	result, err := b.bookings.Create(c.Request.Context(), middleware.Session(c, b.sessions), req.ToInput())
	if err != nil {
		fail(c, err)
		return
	}
	if result.Queued {
		response.Accepted(c, result)
		return
	}
	response.Created(c, result)
}

func (b BookingController) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)
	bookings, err := b.bookings.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithTotal(c, bookings, len(bookings))
}

func (b BookingController) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()
	booking, err := b.bookings.Get(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	if !b.bookings.CanView(ctx, middleware.CurrentUser(c), booking) {
		fail(c, errors.NewAppError(errors.ErrCodeForbidden, "cannot view this booking", nil))
		return
	}
	response.Success(c, booking)
}

func (b BookingController) Cancel(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	result, err := b.bookings.Cancel(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	if result.Queued {
		response.Accepted(c, result)
		return
	}
	response.Success(c, result)
}

func (b BookingController) Complete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	booking, err := b.bookings.Complete(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, booking)
}

// ListByHotel: booking của một hotel, chỉ manager được giao hoặc admin
func (b BookingController) ListByHotel(c *gin.Context) {
	hotelID, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := b.hotels.Authorize(ctx, middleware.CurrentUser(c), hotelID); err != nil {
		fail(c, err)
		return
	}
	bookings, err := b.bookings.ListByHotel(ctx, hotelID)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithTotal(c, bookings, len(bookings))
}

func (b BookingController) ListAll(c *gin.Context) {
	var q dto.PageQuery
	if err := bindQuery(c, &q); err != nil {
		fail(c, err)
		return
	}
	bookings, err := b.bookings.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.Paginate(bookings, q), q.Page, q.Limit, len(bookings))
}
