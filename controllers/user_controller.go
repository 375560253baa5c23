package controllers

import (
	"hotelbook/commands"
	"hotelbook/constants"
	"hotelbook/dto"
	"hotelbook/middleware"
	"hotelbook/models"
	"hotelbook/response"
	"hotelbook/services"

	"github.com/gin-gonic/gin"
)

// UserController gồm các thao tác quản lý user dành cho admin
type UserController struct {
	users *services.UserService
	deferred
}

func NewUserController(users *services.UserService, queue *services.SyncQueue, conn services.Connectivity) UserController {
	return UserController{users: users, deferred: deferred{queue: queue, conn: conn}}
}

func (u UserController) List(c *gin.Context) {
	var q dto.PageQuery
	if err := bindQuery(c, &q); err != nil {
		fail(c, err)
		return
	}
	users, err := u.users.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.ToUserResponses(dto.Paginate(users, q)), q.Page, q.Limit, len(users))
}

func (u UserController) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	user, err := u.users.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(*user))
}

func (u UserController) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	user, err := u.users.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.ToUserResponse(*user))
}

func (u UserController) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	var patch models.UserPatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, err)
		return
	}
	// Hash mật khẩu trước để hàng đợi không giữ mật khẩu dạng rõ
	patch, err = u.users.PreparePatch(patch)
	if err != nil {
		fail(c, err)
		return
	}
	if u.enqueueIfOffline(c, constants.ActionUserUpdate, commands.UserUpdatePayload{UserID: id, Patch: patch}) {
		return
	}
	user, err := u.users.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(*user))
}

func (u UserController) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	if current := middleware.CurrentUser(c); current != nil && current.ID == id {
		response.BadRequest(c, "Không thể tự xóa tài khoản của mình")
		return
	}
	if err := u.users.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}
